package game

import (
	"context"
	"errors"
	"math"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
)

// fallbackDepth is used when the configured search runs out of time.
const fallbackDepth = 1

// TurnResult describes a computer move that was applied to a game.
type TurnResult struct {
	Move     bot.Move
	Row      int
	TimedOut bool
}

// PlayComputerTurn asks engine for the computer's move and applies it to g.
// If ctx expires mid-search the move comes from a one-ply search instead, so
// the computer always moves while the game is still open.
func PlayComputerTurn(ctx context.Context, engine *bot.Engine, g *domain.GameState) (TurnResult, error) {
	if g.IsFinished() {
		return TurnResult{}, domain.ErrGameOver
	}
	if g.Turn != domain.AiDisc {
		return TurnResult{}, domain.ErrNotYourTurn
	}

	result := TurnResult{}
	move, err := engine.BestMove(ctx, g.Board)
	if errors.Is(err, context.DeadlineExceeded) {
		result.TimedOut = true
		move, err = engine.SelectMove(context.Background(), g.Board, fallbackDepth, math.Inf(-1), math.Inf(1), true)
	}
	if err != nil {
		return result, err
	}

	row, err := g.PlayAs(domain.AiDisc, move.Column)
	if err != nil {
		return result, err
	}

	result.Move = move
	result.Row = row
	return result, nil
}
