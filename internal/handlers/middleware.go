package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"homepanel/internal/config"
	"homepanel/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey = "user"

	basicChallenge = `Basic realm="Login Required"`
	loginRequired  = "Login required."
)

// authRequired admits a request carrying a valid session cookie, bearer
// token or basic credentials, in that order.
func (h *Handler) authRequired(c *gin.Context) {
	if user, ok := h.authenticate(c); ok {
		c.Set(ctxUserKey, user)
		c.Next()
		return
	}

	if h.opts.AuthMode == config.AuthModeSession {
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
		return
	}
	c.Header("WWW-Authenticate", basicChallenge)
	c.String(http.StatusUnauthorized, loginRequired)
	c.Abort()
}

func (h *Handler) authenticate(c *gin.Context) (string, bool) {
	if value, err := c.Cookie(service.SessionCookieName); err == nil && h.services.ValidSession(value) {
		return "session", true
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		user, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			if h.log != nil {
				h.log.Debugw("auth_bearer_rejected", "err", err)
			}
			return "", false
		}
		return user, true
	}

	if username, password, ok := c.Request.BasicAuth(); ok && h.services.CheckCredentials(username, password) {
		return username, true
	}
	return "", false
}
