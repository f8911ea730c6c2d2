package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-minimax/internal/service/game"
	"github.com/iamasit07/connect4-minimax/internal/transport/http/middleware"
)

type GameHandler struct {
	SessionManager *game.SessionManager
}

func NewGameHandler(sm *game.SessionManager) *GameHandler {
	return &GameHandler{SessionManager: sm}
}

// GetCurrentGame returns the authenticated guest's game.
func (h *GameHandler) GetCurrentGame(c *gin.Context) {
	guestID := c.GetString(middleware.GuestIDKey)

	view, exists := h.SessionManager.View(guestID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "No game in progress"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// Health reports liveness and the number of games held in memory.
func (h *GameHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"activeGames": h.SessionManager.ActiveCount(),
	})
}
