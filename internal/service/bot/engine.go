package bot

import (
	"context"
	"math"

	"github.com/iamasit07/connect4-minimax/internal/domain"
)

const DefaultDepth = 2

const (
	ErrTerminalBoard domain.Error = "board is already decided"
	ErrInvalidDepth  domain.Error = "search depth must not be negative"
)

var difficultyDepth = map[string]int{
	"easy":   1,
	"medium": DefaultDepth,
	"hard":   4,
}

// DepthForDifficulty returns the lookahead for a difficulty name, or
// fallback when the name is unknown.
func DepthForDifficulty(difficulty string, fallback int) int {
	if depth, ok := difficultyDepth[difficulty]; ok {
		return depth
	}
	return fallback
}

// Engine picks the computer's move. It is stateless between calls and safe
// to share.
type Engine struct {
	Depth     int
	Heuristic Heuristic
}

func NewEngine(depth int, heuristic Heuristic) *Engine {
	if heuristic == nil {
		heuristic = Evaluate
	}
	if depth < 0 {
		depth = DefaultDepth
	}
	return &Engine{Depth: depth, Heuristic: heuristic}
}

// SelectMove runs a minimax search with alpha-beta pruning from board. The
// computer is the maximizing side. board is never modified.
//
// A board that is already won or full has no move to choose: the terminal
// value is returned together with ErrTerminalBoard. Cancelling ctx aborts the
// search with ctx.Err().
func (e *Engine) SelectMove(ctx context.Context, board domain.Board, depth int, alpha, beta float64, maximizing bool) (Move, error) {
	if depth < 0 {
		return Move{Column: NoColumn}, ErrInvalidDepth
	}
	if domain.IsTerminal(board) {
		return Move{Column: NoColumn, Score: terminalScore(board)}, ErrTerminalBoard
	}

	heuristic := e.Heuristic
	if heuristic == nil {
		heuristic = Evaluate
	}

	s := &search{ctx: ctx, heuristic: heuristic}
	col, score, err := s.minimax(board, depth, alpha, beta, maximizing)
	if err != nil {
		return Move{Column: NoColumn, Nodes: s.nodes}, err
	}
	return Move{Column: col, Score: score, Nodes: s.nodes}, nil
}

// BestMove searches a full window at the engine's depth for the computer.
func (e *Engine) BestMove(ctx context.Context, board domain.Board) (Move, error) {
	return e.SelectMove(ctx, board, e.Depth, math.Inf(-1), math.Inf(1), true)
}
