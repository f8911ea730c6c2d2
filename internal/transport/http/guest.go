package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-minimax/pkg/auth"
	"github.com/iamasit07/connect4-minimax/pkg/httputil"
	"github.com/iamasit07/connect4-minimax/pkg/uid"
)

type GuestHandler struct {
	Tokens       *auth.TokenIssuer
	TTL          time.Duration
	SecureCookie bool
	log          *zap.SugaredLogger
}

func NewGuestHandler(tokens *auth.TokenIssuer, ttl time.Duration, secureCookie bool, log *zap.SugaredLogger) *GuestHandler {
	return &GuestHandler{Tokens: tokens, TTL: ttl, SecureCookie: secureCookie, log: log}
}

// CreateGuest issues a new guest identity and sets it as a cookie.
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	guestID := uid.GenerateGuestID()

	token, err := h.Tokens.GenerateGuestToken(guestID)
	if err != nil {
		h.log.Errorw("failed to sign guest token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
		return
	}

	httputil.SetGuestCookie(c.Writer, token, h.TTL, h.SecureCookie)
	h.log.Infow("guest created", "guest_id", guestID)

	c.JSON(http.StatusCreated, gin.H{
		"guest_id": guestID,
		"token":    token,
	})
}
