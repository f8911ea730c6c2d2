package bot

import (
	"context"
	"math"

	"github.com/iamasit07/connect4-minimax/internal/domain"
)

// NoColumn is reported for nodes where no move is made.
const NoColumn = -1

// Move is the outcome of a search: the column to play and its minimax value.
// The value is +Inf for a forced computer win and -Inf for a forced loss.
type Move struct {
	Column int     `json:"column"`
	Score  float64 `json:"score"`
	Nodes  int     `json:"nodes"`
}

type search struct {
	ctx       context.Context
	heuristic Heuristic
	nodes     int
}

// terminalScore values a finished board: the computer maximises, the human
// minimises.
func terminalScore(board domain.Board) float64 {
	switch {
	case domain.IsWin(board, domain.AiDisc):
		return math.Inf(1)
	case domain.IsWin(board, domain.PlayerDisc):
		return math.Inf(-1)
	}
	return 0
}

// minimax implements the minimax algorithm with alpha-beta pruning. Every
// child is explored on its own copy of the board.
func (s *search) minimax(board domain.Board, depth int, alpha, beta float64, isMaximizing bool) (int, float64, error) {
	s.nodes++
	select {
	case <-s.ctx.Done():
		return NoColumn, 0, s.ctx.Err()
	default:
	}

	validColumns := domain.LegalMoves(board)

	// Terminal conditions
	if domain.IsTerminal(board) {
		return NoColumn, terminalScore(board), nil
	}
	if depth == 0 {
		return validColumns[0], float64(s.heuristic(board, domain.AiDisc)), nil
	}

	bestCol := validColumns[0]

	if isMaximizing {
		maxEval := math.Inf(-1)
		for _, col := range validColumns {
			child := board
			if _, err := child.Drop(col, domain.AiDisc); err != nil {
				return NoColumn, 0, err
			}

			_, eval, err := s.minimax(child, depth-1, alpha, beta, false)
			if err != nil {
				return NoColumn, 0, err
			}
			if eval > maxEval {
				maxEval = eval
				bestCol = col
			}
			alpha = math.Max(alpha, maxEval)

			if beta <= alpha {
				break // Beta cutoff
			}
		}
		return bestCol, maxEval, nil
	}

	minEval := math.Inf(1)
	for _, col := range validColumns {
		child := board
		if _, err := child.Drop(col, domain.PlayerDisc); err != nil {
			return NoColumn, 0, err
		}

		_, eval, err := s.minimax(child, depth-1, alpha, beta, true)
		if err != nil {
			return NoColumn, 0, err
		}
		if eval < minEval {
			minEval = eval
			bestCol = col
		}
		beta = math.Min(beta, minEval)

		if beta <= alpha {
			break // Alpha cutoff
		}
	}
	return bestCol, minEval, nil
}
