package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"invoice-dashboard-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	LoginPath     = "/login"
	DashboardPath = "/dashboard"

	claimsKey = "claims"
)

// Authorized gates the dashboard behind a session and sends signed-in users
// away from every other page to the dashboard. API routes, framework
// assets and png images pass through untouched.
func Authorized(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipAuth(path) {
			c.Next()
			return
		}

		claims := sessionClaims(c, tokens)
		loggedIn := claims != nil
		if loggedIn {
			c.Set(claimsKey, claims)
		}

		onDashboard := path == DashboardPath || strings.HasPrefix(path, DashboardPath+"/")
		switch {
		case onDashboard && !loggedIn:
			target := LoginPath + "?callbackUrl=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		case !onDashboard && loggedIn && c.Request.Method == http.MethodGet:
			c.Redirect(http.StatusSeeOther, DashboardPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Claims returns the session of the current request, if any.
func Claims(c *gin.Context) (*auth.Claims, bool) {
	val, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := val.(*auth.Claims)
	return claims, ok
}

func sessionClaims(c *gin.Context, tokens *auth.Tokens) *auth.Claims {
	raw, err := c.Cookie(SessionCookie)
	if err != nil || raw == "" {
		return nil
	}
	claims, err := tokens.Parse(raw)
	if err != nil {
		return nil
	}
	return claims
}

func skipAuth(path string) bool {
	return path == "/api" ||
		strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/_next/static") ||
		strings.HasPrefix(path, "/_next/image") ||
		strings.HasSuffix(path, ".png")
}
