package domain

// LastMove is the most recent disc placed on the board.
type LastMove struct {
	Row    int   `json:"row"`
	Column int   `json:"column"`
	Piece  Piece `json:"player"`
}

// GameState is one human-vs-computer game. It is owned by a single
// presentation session and mutated in place.
type GameState struct {
	Board     Board      `json:"board"`
	Turn      Piece      `json:"currentTurn"`
	Status    GameStatus `json:"status"`
	Winner    Piece      `json:"winner"`
	MoveCount int        `json:"moveCount"`
	Last      *LastMove  `json:"lastMove,omitempty"`
}

// NewGameState starts an empty game with first to move.
func NewGameState(first Piece) *GameState {
	if first != AiDisc {
		first = PlayerDisc
	}
	return &GameState{
		Board:  NewBoard(),
		Turn:   first,
		Status: StatusActive,
		Winner: Empty,
	}
}

// Play drops the side-to-move's disc into column, then updates the winner
// and status and hands the turn over.
func (g *GameState) Play(column int) (int, error) {
	if g.IsFinished() {
		return -1, ErrGameOver
	}

	if column < 0 || column >= Columns {
		return -1, ErrInvalidColumn
	}
	if !IsValidMove(g.Board, column) {
		return -1, ErrColumnFull
	}

	piece := g.Turn
	row, err := g.Board.Drop(column, piece)
	if err != nil {
		return -1, err
	}

	g.MoveCount++
	g.Last = &LastMove{Row: row, Column: column, Piece: piece}

	if IsWin(g.Board, piece) {
		g.Status = StatusWon
		g.Winner = piece
		return row, nil
	}

	if len(LegalMoves(g.Board)) == 0 {
		g.Status = StatusDraw
		return row, nil
	}

	g.Turn = piece.Opponent()
	return row, nil
}

// PlayAs is Play with a turn check for the acting side.
func (g *GameState) PlayAs(piece Piece, column int) (int, error) {
	if g.IsFinished() {
		return -1, ErrGameOver
	}
	if g.Turn != piece {
		return -1, ErrNotYourTurn
	}
	return g.Play(column)
}

// Resign ends the game in favour of the other side.
func (g *GameState) Resign(piece Piece) error {
	if g.IsFinished() {
		return ErrGameOver
	}
	g.Status = StatusWon
	g.Winner = piece.Opponent()
	return nil
}

func (g *GameState) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// Snapshot returns a copy that shares nothing with g.
func (g *GameState) Snapshot() GameState {
	s := *g
	if g.Last != nil {
		last := *g.Last
		s.Last = &last
	}
	return s
}
