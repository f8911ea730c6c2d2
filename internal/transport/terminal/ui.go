// Package terminal plays a game against the computer in a text terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
)

// Board layout on screen.
const (
	originX   = 2
	originY   = 2
	cellWidth = 4
)

var (
	styleDefault = tcell.StyleDefault
	styleFrame   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleHuman   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBot     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

type Options struct {
	BotName       string
	BotMoveDelay  time.Duration
	SearchTimeout time.Duration
}

// UI owns one game and the screen it is drawn on. All game state is touched
// only from the Run loop; computer moves are computed on a snapshot and
// posted back as events.
type UI struct {
	screen tcell.Screen
	engine *bot.Engine
	opts   Options
	log    *zap.SugaredLogger

	game     *domain.GameState
	gen      int
	thinking bool
	status   string

	rng       *rand.Rand
	pickFirst func() domain.Piece
}

// computerMoveEvent carries a finished search back to the Run loop.
type computerMoveEvent struct {
	tcell.EventTime
	gen    int
	result game.TurnResult
	err    error
}

func NewUI(screen tcell.Screen, engine *bot.Engine, opts Options, log *zap.SugaredLogger) *UI {
	if opts.BotName == "" {
		opts.BotName = domain.GetBotName("")
	}
	u := &UI{
		screen: screen,
		engine: engine,
		opts:   opts,
		log:    log,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	u.pickFirst = func() domain.Piece {
		if u.rng.Intn(2) == 0 {
			return domain.PlayerDisc
		}
		return domain.AiDisc
	}
	return u
}

// Run starts a game and processes input until the player quits. The screen
// must already be initialised; Run does not finalise it.
func (u *UI) Run() error {
	u.screen.EnableMouse()
	u.newGame()

	for {
		u.Draw()
		u.screen.Show()

		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := u.handleEvent(ev); quit {
			return nil
		}
	}
}

func (u *UI) newGame() {
	u.gen++
	u.thinking = false
	u.game = domain.NewGameState(u.pickFirst())
	u.log.Infow("new game", "first", u.game.Turn.String())

	if u.game.Turn == domain.AiDisc {
		u.status = u.opts.BotName + " moves first."
		u.requestComputerMove()
		return
	}
	u.status = "You move first. Click a column or press 1-7."
}

// handleEvent applies one event and reports whether the player quit.
func (u *UI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()

	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune:
			r := ev.Rune()
			switch {
			case r == 'q' || r == 'Q':
				return true
			case r == 'n' || r == 'N':
				u.newGame()
			case r >= '1' && r <= '0'+domain.Columns:
				u.humanMove(int(r - '1'))
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			if col := ColumnAt(x, y); col >= 0 {
				u.humanMove(col)
			}
		}

	case *computerMoveEvent:
		u.applyComputerMove(ev)
	}
	return false
}

// humanMove plays the human's disc. Illegal input leaves the game untouched.
func (u *UI) humanMove(column int) {
	if u.thinking {
		return
	}
	if _, err := u.game.PlayAs(domain.PlayerDisc, column); err != nil {
		switch {
		case errors.Is(err, domain.ErrGameOver):
			u.status = "Game over. Press n for a new game."
		case errors.Is(err, domain.ErrColumnFull):
			u.status = fmt.Sprintf("Column %d is full.", column+1)
		default:
			u.status = err.Error()
		}
		return
	}

	if u.updateStatus() {
		return
	}
	u.requestComputerMove()
}

func (u *UI) requestComputerMove() {
	u.thinking = true
	u.status = u.opts.BotName + " is thinking..."

	gen := u.gen
	snapshot := u.game.Snapshot()
	go func() {
		time.Sleep(u.opts.BotMoveDelay)
		ev := u.computeMove(gen, &snapshot)
		if err := u.screen.PostEvent(ev); err != nil {
			u.log.Warnw("dropped computer move", "error", err)
		}
	}()
}

// computeMove searches on a private copy of the game.
func (u *UI) computeMove(gen int, g *domain.GameState) *computerMoveEvent {
	ctx := context.Background()
	if u.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.opts.SearchTimeout)
		defer cancel()
	}

	result, err := game.PlayComputerTurn(ctx, u.engine, g)
	ev := &computerMoveEvent{gen: gen, result: result, err: err}
	ev.SetEventNow()
	return ev
}

func (u *UI) applyComputerMove(ev *computerMoveEvent) {
	// a move computed for an abandoned game
	if ev.gen != u.gen {
		return
	}
	u.thinking = false

	if ev.err != nil {
		u.log.Errorw("computer move failed", "error", ev.err)
		u.status = "The computer could not move: " + ev.err.Error()
		return
	}
	if _, err := u.game.PlayAs(domain.AiDisc, ev.result.Move.Column); err != nil {
		u.log.Errorw("computer move rejected", "column", ev.result.Move.Column, "error", err)
		u.status = "The computer could not move: " + err.Error()
		return
	}
	u.log.Debugw("computer moved",
		"column", ev.result.Move.Column,
		"score", ev.result.Move.Score,
		"nodes", ev.result.Move.Nodes,
		"timed_out", ev.result.TimedOut)

	if !u.updateStatus() {
		u.status = fmt.Sprintf("%s played column %d. Your move.", u.opts.BotName, ev.result.Move.Column+1)
	}
}

// updateStatus sets the end-of-game message and reports whether the game is over.
func (u *UI) updateStatus() bool {
	switch u.game.Status {
	case domain.StatusWon:
		if u.game.Winner == domain.PlayerDisc {
			u.status = "You win! Press n for a new game or q to quit."
		} else {
			u.status = u.opts.BotName + " wins. Press n for a new game or q to quit."
		}
		return true
	case domain.StatusDraw:
		u.status = "Draw. Press n for a new game or q to quit."
		return true
	}
	return false
}

// ColumnAt maps a screen cell to the board column drawn there, or -1.
func ColumnAt(x, y int) int {
	if y < originY-1 || y >= originY+domain.Rows {
		return -1
	}
	if x < originX || x >= originX+domain.Columns*cellWidth {
		return -1
	}
	return (x - originX) / cellWidth
}

// Draw renders the current game without showing it.
func (u *UI) Draw() {
	s := u.screen
	s.Clear()

	drawText(s, 0, 0, styleDefault, "Connect Four vs "+u.opts.BotName)

	for c := 0; c < domain.Columns; c++ {
		drawText(s, originX+c*cellWidth+1, originY-1, styleFrame, fmt.Sprintf("%d", c+1))
	}

	for r := 0; r < domain.Rows; r++ {
		y := originY + domain.Rows - 1 - r
		for c := 0; c < domain.Columns; c++ {
			x := originX + c*cellWidth
			s.SetContent(x, y, '[', nil, styleFrame)
			s.SetContent(x+2, y, ']', nil, styleFrame)

			piece := u.game.Board[r][c]
			style := styleDefault
			ch := ' '
			switch piece {
			case domain.PlayerDisc:
				ch, style = 'X', styleHuman
			case domain.AiDisc:
				ch, style = 'O', styleBot
			}
			if last := u.game.Last; last != nil && last.Row == r && last.Column == c {
				style = style.Reverse(true)
			}
			s.SetContent(x+1, y, ch, nil, style)
		}
	}

	drawText(s, 0, originY+domain.Rows+1, styleDefault, u.status)
	drawText(s, 0, originY+domain.Rows+2, styleFrame, "1-7/click: drop  n: new game  q: quit")
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
