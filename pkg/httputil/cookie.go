package httputil

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const GuestCookieName = "guest_token"

func SetGuestCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	cookie := &http.Cookie{
		Name:     GuestCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if secure {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

// GetTokenFromRequest reads the guest token from the cookie, falling back to
// the Authorization header.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(GuestCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return token, nil
		}
		return authHeader, nil
	}

	return "", errors.New("no guest token found in cookie or header")
}
