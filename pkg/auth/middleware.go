package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const contextKeyClaims = "auth.claims"

// RequireLogin lets requests with a valid session through and redirects everything else to the
// login page, remembering where the user was going.
func RequireLogin(sm *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			token = c.GetHeader("Authorization")
		}

		claims, err := sm.Parse(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(contextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

func SetSessionCookie(c *gin.Context, sm *SessionManager, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(sm.TTL().Seconds()), "/", "", c.Request.TLS != nil, true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", c.Request.TLS != nil, true)
}

// SafeNext only allows local redirect targets after login.
func SafeNext(next string) string {
	if next == "" || next[0] != '/' || (len(next) > 1 && (next[1] == '/' || next[1] == '\\')) {
		return "/dashboard"
	}
	return next
}
