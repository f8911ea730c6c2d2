package domain

// ClientMessage is anything a browser sends over the websocket.
type ClientMessage struct {
	Type       string `json:"type"`
	Token      string `json:"token,omitempty"`
	Column     *int   `json:"column,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type ServerMessage struct {
	Type        string     `json:"type"`
	Message     string     `json:"message,omitempty"`
	GameID      string     `json:"gameId,omitempty"`
	Opponent    string     `json:"opponent,omitempty"`
	YourPlayer  int        `json:"yourPlayer,omitempty"`
	CurrentTurn int        `json:"currentTurn,omitempty"`
	Column      *int       `json:"column,omitempty"`
	Row         *int       `json:"row,omitempty"`
	Player      int        `json:"player,omitempty"`
	Board       *Board     `json:"board,omitempty"`
	Winner      string     `json:"winner,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Status      GameStatus `json:"status,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
