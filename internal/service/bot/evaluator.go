package bot

import (
	"github.com/iamasit07/connect4-minimax/internal/domain"
)

const (
	// Window scores
	SCORE_FOUR         = 100 // four of the scored piece
	SCORE_THREE_OPEN   = 5   // three of the scored piece and one gap
	SCORE_TWO_OPEN     = 2   // two of the scored piece and two gaps
	SCORE_HUMAN_THREAT = -4  // three human discs and one gap
	SCORE_CENTER       = 3   // per disc in the center column
)

// Heuristic scores a non-terminal board from piece's point of view.
type Heuristic func(board domain.Board, piece domain.Piece) int

// Evaluate is the reference heuristic. The threat penalty always looks at
// the human's discs, whichever side is being scored.
func Evaluate(board domain.Board, piece domain.Piece) int {
	return evaluateWith(board, piece, domain.PlayerDisc)
}

// EvaluateSymmetric penalises the opponent of piece instead of the human.
func EvaluateSymmetric(board domain.Board, piece domain.Piece) int {
	return evaluateWith(board, piece, piece.Opponent())
}

func evaluateWith(board domain.Board, piece, threat domain.Piece) int {
	score := 0

	// Center column preference
	for row := 0; row < domain.Rows; row++ {
		if board[row][domain.CenterColumn] == piece {
			score += SCORE_CENTER
		}
	}

	domain.EachWindow(board, func(w domain.Window) bool {
		score += windowScore(w, piece, threat)
		return true
	})

	return score
}

func windowScore(w domain.Window, piece, threat domain.Piece) int {
	score := 0
	mine := w.Count(piece)
	empty := w.Count(domain.Empty)

	switch {
	case mine == 4:
		score += SCORE_FOUR
	case mine == 3 && empty == 1:
		score += SCORE_THREE_OPEN
	case mine == 2 && empty == 2:
		score += SCORE_TWO_OPEN
	}

	if w.Count(threat) == 3 && empty == 1 {
		score += SCORE_HUMAN_THREAT
	}

	return score
}

// HeuristicByName maps a config value to a heuristic. Unknown names fall
// back to the reference one.
func HeuristicByName(name string) Heuristic {
	if name == "symmetric" {
		return EvaluateSymmetric
	}
	return Evaluate
}
