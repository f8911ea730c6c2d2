package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
	"github.com/iamasit07/connect4-minimax/pkg/uid"
)

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
	ReasonResign      = "resign"
)

// Notifier delivers server messages to a connected guest.
type Notifier interface {
	SendMessage(guestID string, message domain.ServerMessage) error
}

// Options tunes how the computer plays.
type Options struct {
	DefaultDepth  int
	Heuristic     bot.Heuristic
	SearchTimeout time.Duration
	BotMoveDelay  time.Duration
}

// GameSession is one guest's game against the computer.
type GameSession struct {
	GameID     string
	GuestID    string
	Difficulty string
	BotName    string
	Game       *domain.GameState
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt time.Time
	engine     *bot.Engine
	mu         sync.Mutex

	// abandoned is set once the session has left the manager, so a bot
	// turn scheduled before that never plays into it.
	abandoned bool
}

// SessionView is a read-only copy of a session for handlers.
type SessionView struct {
	GameID     string           `json:"gameId"`
	Difficulty string           `json:"difficulty"`
	Opponent   string           `json:"opponent"`
	Reason     string           `json:"reason,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	State      domain.GameState `json:"state"`
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*GameSession // guestID → GameSession
	mu       sync.RWMutex
	opts     Options
	log      *zap.SugaredLogger

	rngMu sync.Mutex
	rng   *rand.Rand

	// schedule runs f after d; replaced in tests to run bot turns inline
	schedule  func(d time.Duration, f func())
	pickFirst func() domain.Piece
}

func NewSessionManager(opts Options, log *zap.SugaredLogger) *SessionManager {
	if opts.Heuristic == nil {
		opts.Heuristic = bot.Evaluate
	}
	sm := &SessionManager{
		sessions: make(map[string]*GameSession),
		opts:     opts,
		log:      log,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		schedule: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	sm.pickFirst = sm.coinFlip
	return sm
}

func (sm *SessionManager) coinFlip() domain.Piece {
	sm.rngMu.Lock()
	defer sm.rngMu.Unlock()
	if sm.rng.Intn(2) == 0 {
		return domain.PlayerDisc
	}
	return domain.AiDisc
}

// StartGame replaces any game the guest has with a fresh one. The side to
// move first is picked at random; when it is the computer its move is
// scheduled right away.
func (sm *SessionManager) StartGame(guestID, difficulty string, conn Notifier) *GameSession {
	depth := bot.DepthForDifficulty(difficulty, sm.opts.DefaultDepth)
	if _, ok := domain.BotNames[difficulty]; !ok {
		difficulty = ""
	}

	now := time.Now()
	session := &GameSession{
		GameID:     uid.GenerateGameID(),
		GuestID:    guestID,
		Difficulty: difficulty,
		BotName:    domain.GetBotName(difficulty),
		Game:       domain.NewGameState(sm.pickFirst()),
		CreatedAt:  now,
		UpdatedAt:  now,
		engine:     bot.NewEngine(depth, sm.opts.Heuristic),
	}

	sm.mu.Lock()
	old := sm.sessions[guestID]
	sm.sessions[guestID] = session
	sm.mu.Unlock()

	if old != nil {
		old.mu.Lock()
		old.abandoned = true
		old.mu.Unlock()
	}

	sm.log.Infow("game started",
		"game_id", session.GameID,
		"guest_id", guestID,
		"depth", depth,
		"first", session.Game.Turn.String())

	board := session.Game.Board
	conn.SendMessage(guestID, domain.ServerMessage{
		Type:        "game_start",
		GameID:      session.GameID,
		Opponent:    session.BotName,
		YourPlayer:  int(domain.PlayerDisc),
		CurrentTurn: int(session.Game.Turn),
		Board:       &board,
		Status:      session.Game.Status,
	})

	if session.Game.Turn == domain.AiDisc {
		sm.scheduleBotTurn(session, conn)
	}
	return session
}

func (sm *SessionManager) GetSession(guestID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[guestID]
	return session, exists
}

// View returns a snapshot of the guest's current game.
func (sm *SessionManager) View(guestID string) (SessionView, bool) {
	session, exists := sm.GetSession(guestID)
	if !exists {
		return SessionView{}, false
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return SessionView{
		GameID:     session.GameID,
		Difficulty: session.Difficulty,
		Opponent:   session.BotName,
		Reason:     session.Reason,
		CreatedAt:  session.CreatedAt,
		State:      session.Game.Snapshot(),
	}, true
}

func (sm *SessionManager) ActiveCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupOldSessions drops sessions that have not changed for longer than ttl.
func (sm *SessionManager) CleanupOldSessions(ttl time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()
	for guestID, session := range sm.sessions {
		session.mu.Lock()
		stale := now.Sub(session.UpdatedAt) > ttl
		if stale {
			session.abandoned = true
		}
		session.mu.Unlock()

		if stale {
			delete(sm.sessions, guestID)
			count++
		}
	}

	if count > 0 {
		sm.log.Infow("removed stale game sessions", "count", count)
	}
	return count
}

// HandleMove plays the guest's disc in column. On success the move is
// broadcast and, if the game goes on, the computer's reply is scheduled.
func (sm *SessionManager) HandleMove(guestID string, column int, conn Notifier) error {
	session, exists := sm.GetSession(guestID)
	if !exists {
		return fmt.Errorf("game not found")
	}

	finished, err := session.applyHumanMove(column, conn)
	if err != nil {
		return err
	}
	if !finished {
		sm.scheduleBotTurn(session, conn)
	}
	return nil
}

func (gs *GameSession) applyHumanMove(column int, conn Notifier) (bool, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	row, err := gs.Game.PlayAs(domain.PlayerDisc, column)
	if err != nil {
		return false, err
	}

	gs.UpdatedAt = time.Now()
	gs.announceMove(column, row, domain.PlayerDisc, conn)
	return gs.Game.IsFinished(), nil
}

// Resign ends the guest's game as a loss.
func (sm *SessionManager) Resign(guestID string, conn Notifier) error {
	session, exists := sm.GetSession(guestID)
	if !exists {
		return fmt.Errorf("game not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.Game.Resign(domain.PlayerDisc); err != nil {
		return err
	}
	session.finish(ReasonResign, conn)
	return nil
}

func (sm *SessionManager) scheduleBotTurn(session *GameSession, conn Notifier) {
	sm.schedule(sm.opts.BotMoveDelay, func() {
		if err := sm.HandleBotMove(session, conn); err != nil {
			sm.log.Warnw("bot move failed", "game_id", session.GameID, "error", err)
		}
	})
}

// HandleBotMove lets the computer move if it is its turn.
func (sm *SessionManager) HandleBotMove(gs *GameSession, conn Notifier) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	// the game may have been resigned or replaced while the move was pending
	if gs.abandoned || gs.Game.IsFinished() || gs.Game.Turn != domain.AiDisc {
		return nil
	}

	ctx := context.Background()
	if sm.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sm.opts.SearchTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := PlayComputerTurn(ctx, gs.engine, gs.Game)
	if err != nil {
		return err
	}

	sm.log.Debugw("bot moved",
		"game_id", gs.GameID,
		"column", result.Move.Column,
		"score", result.Move.Score,
		"nodes", result.Move.Nodes,
		"timed_out", result.TimedOut,
		"took", time.Since(start))

	gs.UpdatedAt = time.Now()
	gs.announceMove(result.Move.Column, result.Row, domain.AiDisc, conn)
	return nil
}

// announceMove sends move_made and, when the move ended the game, game_over.
// Caller must hold gs.mu.
func (gs *GameSession) announceMove(column, row int, piece domain.Piece, conn Notifier) {
	board := gs.Game.Board
	conn.SendMessage(gs.GuestID, domain.ServerMessage{
		Type:        "move_made",
		GameID:      gs.GameID,
		Column:      &column,
		Row:         &row,
		Player:      int(piece),
		Board:       &board,
		CurrentTurn: int(gs.Game.Turn),
		Status:      gs.Game.Status,
	})

	switch gs.Game.Status {
	case domain.StatusWon:
		gs.finish(ReasonConnectFour, conn)
	case domain.StatusDraw:
		gs.finish(ReasonDraw, conn)
	}
}

// finish records the end of the game and sends game_over. Caller must hold gs.mu.
func (gs *GameSession) finish(reason string, conn Notifier) {
	gs.Reason = reason
	gs.FinishedAt = time.Now()
	gs.UpdatedAt = gs.FinishedAt

	winner := "draw"
	switch gs.Game.Winner {
	case domain.PlayerDisc:
		winner = "you"
	case domain.AiDisc:
		winner = gs.BotName
	}

	board := gs.Game.Board
	conn.SendMessage(gs.GuestID, domain.ServerMessage{
		Type:   "game_over",
		GameID: gs.GameID,
		Winner: winner,
		Reason: reason,
		Board:  &board,
		Status: gs.Game.Status,
	})
}
