package http

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
)

// AnalyzeHandler runs the engine on a caller-supplied position.
type AnalyzeHandler struct {
	Engine   *bot.Engine
	MaxDepth int
	Timeout  time.Duration
	log      *zap.SugaredLogger
}

func NewAnalyzeHandler(engine *bot.Engine, maxDepth int, timeout time.Duration, log *zap.SugaredLogger) *AnalyzeHandler {
	return &AnalyzeHandler{Engine: engine, MaxDepth: maxDepth, Timeout: timeout, log: log}
}

type analyzeRequest struct {
	Board      [][]domain.Piece `json:"board"`
	Depth      *int         `json:"depth"`
	Maximizing *bool        `json:"maximizing"`
}

type analyzeResponse struct {
	Column int `json:"column"`
	// Score is omitted when the position is forced; Outcome says which way.
	Score   *float64 `json:"score,omitempty"`
	Outcome string   `json:"outcome"`
	Depth   int      `json:"depth"`
	Nodes   int      `json:"nodes"`
}

// outcome names a score from the computer's side.
func outcome(score float64) string {
	switch {
	case math.IsInf(score, 1):
		return "win"
	case math.IsInf(score, -1):
		return "loss"
	default:
		return "open"
	}
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	board, err := domain.BoardFromRows(req.Board)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	depth := h.Engine.Depth
	if req.Depth != nil {
		depth = *req.Depth
	}
	if depth < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": bot.ErrInvalidDepth.Error()})
		return
	}
	if h.MaxDepth > 0 && depth > h.MaxDepth {
		depth = h.MaxDepth
	}
	maximizing := true
	if req.Maximizing != nil {
		maximizing = *req.Maximizing
	}

	ctx := c.Request.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	move, err := h.Engine.SelectMove(ctx, board, depth, math.Inf(-1), math.Inf(1), maximizing)
	switch {
	case errors.Is(err, bot.ErrTerminalBoard):
		result := outcome(move.Score)
		if result == "open" {
			result = "draw"
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "outcome": result})
		return
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search timed out"})
		return
	case err != nil:
		h.log.Warnw("analysis failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	resp := analyzeResponse{
		Column:  move.Column,
		Outcome: outcome(move.Score),
		Depth:   depth,
		Nodes:   move.Nodes,
	}
	if !math.IsInf(move.Score, 0) {
		score := move.Score
		resp.Score = &score
	}
	c.JSON(http.StatusOK, resp)
}
