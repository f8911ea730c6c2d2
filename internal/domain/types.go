package domain

var BotNames = map[string]string{
	"easy":   "Alice",
	"medium": "Bob",
	"hard":   "Charles",
}

func GetBotName(difficulty string) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

// Piece is the content of a single cell.
type Piece int8

const (
	Empty      Piece = 0
	PlayerDisc Piece = 1 // the human
	AiDisc     Piece = 2 // the computer
)

func (p Piece) Valid() bool {
	return p == Empty || p == PlayerDisc || p == AiDisc
}

// Opponent returns the other side's disc. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case PlayerDisc:
		return AiDisc
	case AiDisc:
		return PlayerDisc
	}
	return Empty
}

func (p Piece) String() string {
	switch p {
	case PlayerDisc:
		return "player"
	case AiDisc:
		return "ai"
	case Empty:
		return "empty"
	}
	return "unknown"
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4

	CenterColumn = Columns / 2
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn Error = "column out of range"
	ErrColumnFull    Error = "column is full"
	ErrInvalidBoard  Error = "invalid board"
	ErrGameOver      Error = "game is over"
	ErrNotYourTurn   Error = "not your turn"
)
