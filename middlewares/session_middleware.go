package middlewares

import (
	"log"
	"lost-found/constants"
	"lost-found/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie writes and reads the session cookie.
type SessionCookie struct {
	Secure bool
}

func (c SessionCookie) Read(ctx *gin.Context) string {
	token, err := ctx.Cookie(constants.SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}

func (c SessionCookie) Set(ctx *gin.Context, token string, ttl time.Duration) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(constants.SessionCookieName, token, int(ttl.Seconds()), "/", "", c.Secure, true)
}

func (c SessionCookie) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(constants.SessionCookieName, "", -1, "/", "", c.Secure, true)
}

// SessionMiddleware resolves the principal for the request from the session
// cookie. Any failure leaves the request anonymous; a session whose user can
// no longer be loaded is destroyed.
func SessionMiddleware(sessions services.ISessionService, users services.IUserService, cookie SessionCookie) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := cookie.Read(ctx)
		if token == "" {
			ctx.Next()
			return
		}

		reqCtx := ctx.Request.Context()
		session, err := sessions.Resolve(reqCtx, token)
		if err != nil {
			log.Printf("request_id=%s session lookup failed: %v", RequestIDFromContext(ctx), err)
			ctx.Next()
			return
		}
		if session == nil {
			cookie.Clear(ctx)
			ctx.Next()
			return
		}

		user, err := users.FindByID(reqCtx, session.UserID)
		if err != nil || user == nil {
			if err != nil {
				log.Printf("request_id=%s user lookup for session failed: %v", RequestIDFromContext(ctx), err)
			}
			if err := sessions.Destroy(reqCtx, token); err != nil {
				log.Printf("request_id=%s failed to destroy session: %v", RequestIDFromContext(ctx), err)
			}
			cookie.Clear(ctx)
			ctx.Next()
			return
		}

		ctx.Set(constants.ContextUserKey, user)
		ctx.Set(constants.ContextSessionKey, token)
		ctx.Next()
	}
}
