package bot

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/iamasit07/connect4-minimax/internal/domain"
)

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

func contains(cols []int, col int) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}

func TestSelectMoveEmptyBoardPrefersCenter(t *testing.T) {
	e := NewEngine(DefaultDepth, Evaluate)

	for _, depth := range []int{1, 2} {
		move, err := e.SelectMove(context.Background(), domain.NewBoard(), depth, negInf, posInf, true)
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if move.Column != 3 || move.Score != 3 {
			t.Fatalf("depth %d: expected column 3 with score 3, got %+v", depth, move)
		}
	}
}

func TestSelectMoveDepthZeroIsStaticEvaluation(t *testing.T) {
	e := NewEngine(DefaultDepth, Evaluate)
	boards := [][]string{
		nil,
		{"OOO...."},
		{"X......", "X......", "XO.O..."},
		{"..O....", ".OX....", "XXXO..."},
	}

	for _, rows := range boards {
		b := mustParse(t, rows...)
		move, err := e.SelectMove(context.Background(), b, 0, negInf, posInf, true)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if want := float64(Evaluate(b, domain.AiDisc)); move.Score != want {
			t.Fatalf("score %v, want %v\n%s", move.Score, want, b)
		}
		if !contains(domain.LegalMoves(b), move.Column) {
			t.Fatalf("column %d is not legal\n%s", move.Column, b)
		}
	}
}

func TestSelectMoveTakesTheWin(t *testing.T) {
	e := NewEngine(DefaultDepth, Evaluate)
	b := mustParse(t, "OOO....")

	for _, depth := range []int{1, 2, 3} {
		move, err := e.SelectMove(context.Background(), b, depth, negInf, posInf, true)
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if move.Column != 3 || !math.IsInf(move.Score, 1) {
			t.Fatalf("depth %d: expected winning column 3 at +Inf, got %+v", depth, move)
		}
	}

	// a static look sees the open three but not the win
	move, err := e.SelectMove(context.Background(), b, 0, negInf, posInf, true)
	if err != nil {
		t.Fatal(err)
	}
	if move.Score != 7 {
		t.Fatalf("expected static score 7, got %v", move.Score)
	}
}

func TestSelectMoveBlocksTheHuman(t *testing.T) {
	e := NewEngine(DefaultDepth, Evaluate)

	tests := []struct {
		name string
		rows []string
		want int
	}{
		{name: "horizontal threat", rows: []string{"O......", "O......", "XXX...."}, want: 3},
		{name: "vertical threat", rows: []string{"X......", "X......", "X......"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.rows...)
			move, err := e.BestMove(context.Background(), b)
			if err != nil {
				t.Fatal(err)
			}
			if move.Column != tt.want {
				t.Fatalf("expected block at %d, got %+v", tt.want, move)
			}
			if math.IsInf(move.Score, -1) {
				t.Fatalf("blocking move should not be a forced loss, got %+v", move)
			}
		})
	}
}

func TestSelectMoveOnTerminalBoard(t *testing.T) {
	e := NewEngine(DefaultDepth, Evaluate)

	full := mustParse(t,
		"XOXOXOX",
		"OXOXOXO",
		"OXOXOXO",
		"XOXOXOX",
		"XOXOXOX",
		"XOXOXOX",
	)
	move, err := e.SelectMove(context.Background(), full, 2, negInf, posInf, true)
	if !errors.Is(err, ErrTerminalBoard) {
		t.Fatalf("expected ErrTerminalBoard, got %v", err)
	}
	if move.Score != 0 || move.Column != NoColumn {
		t.Fatalf("expected drawn score 0 and no column, got %+v", move)
	}

	won := mustParse(t, "X......", "X......", "X......", "XOOO...")
	move, err = e.SelectMove(context.Background(), won, 2, negInf, posInf, true)
	if !errors.Is(err, ErrTerminalBoard) {
		t.Fatalf("expected ErrTerminalBoard, got %v", err)
	}
	if !math.IsInf(move.Score, -1) {
		t.Fatalf("human win should score -Inf, got %v", move.Score)
	}
}

func TestSelectMoveRejectsNegativeDepth(t *testing.T) {
	e := NewEngine(DefaultDepth, Evaluate)
	if _, err := e.SelectMove(context.Background(), domain.NewBoard(), -1, negInf, posInf, true); !errors.Is(err, ErrInvalidDepth) {
		t.Fatalf("expected ErrInvalidDepth, got %v", err)
	}
}

func TestSelectMoveHonoursCancellation(t *testing.T) {
	e := NewEngine(6, Evaluate)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	move, err := e.BestMove(ctx, domain.NewBoard())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if move.Column != NoColumn {
		t.Fatalf("cancelled search should not pick a column, got %+v", move)
	}
}

func TestSelectMoveLeavesBoardUntouched(t *testing.T) {
	e := NewEngine(4, Evaluate)
	b := mustParse(t, "...O...", "..XXO..")
	before := b

	if _, err := e.BestMove(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	if b != before {
		t.Fatalf("search modified the board:\n%s", b)
	}
}

func TestAlphaBetaPrunes(t *testing.T) {
	e := NewEngine(4, Evaluate)
	move, err := e.BestMove(context.Background(), domain.NewBoard())
	if err != nil {
		t.Fatal(err)
	}

	// 1 + 7 + 49 + 343 + 2401 nodes without pruning
	if move.Nodes >= 2801 {
		t.Fatalf("expected pruning to skip nodes, visited %d", move.Nodes)
	}
}

// plainMinimax is minimax without pruning, used as an oracle.
func plainMinimax(b domain.Board, depth int, maximizing bool) (int, float64) {
	moves := domain.LegalMoves(b)
	if domain.IsTerminal(b) {
		return NoColumn, terminalScore(b)
	}
	if depth == 0 {
		return moves[0], float64(Evaluate(b, domain.AiDisc))
	}

	best := moves[0]
	if maximizing {
		value := math.Inf(-1)
		for _, col := range moves {
			child := b
			child.Drop(col, domain.AiDisc)
			if _, s := plainMinimax(child, depth-1, false); s > value {
				value, best = s, col
			}
		}
		return best, value
	}

	value := math.Inf(1)
	for _, col := range moves {
		child := b
		child.Drop(col, domain.PlayerDisc)
		if _, s := plainMinimax(child, depth-1, true); s < value {
			value, best = s, col
		}
	}
	return best, value
}

func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := NewEngine(3, Evaluate)

	for i := 0; i < 40; i++ {
		b := domain.NewBoard()
		piece := domain.PlayerDisc
		for n := rng.Intn(16); n > 0; n-- {
			moves := domain.LegalMoves(b)
			b.Drop(moves[rng.Intn(len(moves))], piece)
			piece = piece.Opponent()
		}
		if domain.IsTerminal(b) {
			continue
		}

		for _, maximizing := range []bool{true, false} {
			move, err := e.SelectMove(context.Background(), b, 3, negInf, posInf, maximizing)
			if err != nil {
				t.Fatal(err)
			}
			col, score := plainMinimax(b, 3, maximizing)
			if move.Column != col || move.Score != score {
				t.Fatalf("maximizing=%v: alpha-beta (%d, %v) != minimax (%d, %v)\n%s",
					maximizing, move.Column, move.Score, col, score, b)
			}
			if !contains(domain.LegalMoves(b), move.Column) {
				t.Fatalf("column %d is not legal\n%s", move.Column, b)
			}
		}
	}
}

func TestDepthForDifficulty(t *testing.T) {
	tests := map[string]int{"easy": 1, "medium": 2, "hard": 4, "": 5, "unknown": 5}
	for name, want := range tests {
		if got := DepthForDifficulty(name, 5); got != want {
			t.Fatalf("DepthForDifficulty(%q) = %d, want %d", name, got, want)
		}
	}
}
