package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"homepanel/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	loginTemplate   = "login.html"
	errBadLogin     = "Invalid username or password."
	errInvalidCreds = "invalid credentials"
)

// TokenRequest is the credentials payload for POST /auth/token.
type TokenRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// safeNext returns next when it is a same-site relative path, else "/".
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.SessionCookieName, value, maxAge, "/", "", h.opts.SecureCookie, true)
}

func (h *Handler) loginPage(c *gin.Context) {
	next := safeNext(c.Query("next"))
	if value, err := c.Cookie(service.SessionCookieName); err == nil && h.services.ValidSession(value) {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.HTML(http.StatusOK, loginTemplate, gin.H{"Next": next})
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := safeNext(c.PostForm("next"))

	if !h.services.CheckCredentials(username, password) {
		if h.log != nil {
			h.log.Infow("login_failed", "username", username, "remote", c.ClientIP())
		}
		c.HTML(http.StatusUnauthorized, loginTemplate, gin.H{"Error": errBadLogin, "Next": next})
		return
	}

	value, err := h.services.IssueSession()
	if err != nil {
		if h.log != nil {
			h.log.Errorw("session_issue_failed", "err", err)
		}
		c.HTML(http.StatusInternalServerError, loginTemplate, gin.H{"Error": "Could not start a session.", "Next": next})
		return
	}
	h.setSessionCookie(c, value, int(service.SessionTTL.Seconds()))
	c.Redirect(http.StatusFound, next)
}

func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/login")
}

// @Summary      Issue bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      TokenRequest  true  "Credentials"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/token [post]
func (h *Handler) issueToken(c *gin.Context) {
	var input TokenRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCreds})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
