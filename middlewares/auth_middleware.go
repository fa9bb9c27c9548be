package middlewares

import (
	"lost-found/constants"
	"lost-found/models"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the principal resolved by SessionMiddleware.
func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	value, exists := ctx.Get(constants.ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// SessionToken returns the cookie value of the session SessionMiddleware
// resolved for this request.
func SessionToken(ctx *gin.Context) (string, bool) {
	token := ctx.GetString(constants.ContextSessionKey)
	return token, token != ""
}

func isAPIRequest(ctx *gin.Context) bool {
	return strings.HasPrefix(ctx.Request.URL.Path, constants.APIPathPrefix)
}

// RequireAuth lets authenticated requests through. API calls get a JSON 401,
// page requests are sent to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := CurrentUser(ctx); ok {
			ctx.Next()
			return
		}

		if isAPIRequest(ctx) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   constants.ErrAuthRequired,
			})
			return
		}
		ctx.Redirect(http.StatusFound, constants.LoginPath)
		ctx.Abort()
	}
}

// RequireGuest is the inverse of RequireAuth, for login and registration.
func RequireGuest() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := CurrentUser(ctx); !ok {
			ctx.Next()
			return
		}

		if isAPIRequest(ctx) {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   constants.ErrAlreadyLoggedIn,
			})
			return
		}
		ctx.Redirect(http.StatusFound, constants.HomePath)
		ctx.Abort()
	}
}
