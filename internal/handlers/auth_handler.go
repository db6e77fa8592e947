package handler

import (
	"net/http"
	"strings"
	"time"

	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	bridge *auth.Bridge
}

func NewAuthHandler(b *auth.Bridge) *AuthHandler {
	return &AuthHandler{bridge: b}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "login", "callbackUrl": c.Query("callbackUrl")})
}

// Login signs the user in with the posted credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	form := postedForm(c)
	attempt := h.bridge.Authenticate(c.Request.Context(), form)

	switch attempt.Outcome {
	case auth.SignedIn:
		maxAge := int(time.Until(attempt.Session.ExpiresAt).Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, attempt.Session.Token, maxAge, "/", "", c.Request.TLS != nil, true)
		c.Redirect(http.StatusSeeOther, redirectTarget(form.Get("redirectTo"), form.Get("callbackUrl")))
	case auth.Rejected:
		c.JSON(http.StatusUnauthorized, gin.H{"message": attempt.Message})
	default:
		_ = c.Error(attempt.Err)
		c.Abort()
	}
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// redirectTarget picks the first local path among candidates.
func redirectTarget(candidates ...string) string {
	for _, target := range candidates {
		if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") && !strings.HasPrefix(target, "/\\") {
			return target
		}
	}
	return middleware.DashboardPath
}
