package controllers

import (
	"log"
	"lost-found/apperrors"
	"lost-found/constants"
	"lost-found/dto"
	"lost-found/middlewares"
	"lost-found/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IAuthController interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Logout(ctx *gin.Context)
	Me(ctx *gin.Context)
}

type AuthController struct {
	users    services.IUserService
	sessions services.ISessionService
	cookie   middlewares.SessionCookie
}

func NewAuthController(users services.IUserService, sessions services.ISessionService, cookie middlewares.SessionCookie) IAuthController {
	return &AuthController{users: users, sessions: sessions, cookie: cookie}
}

var (
	registerMessages = bindMessages{
		"required":     constants.ErrMissingAuthFields,
		"Password.min": constants.ErrPasswordTooShort,
	}
	loginMessages = bindMessages{
		"required": constants.ErrMissingLoginFields,
	}
)

// startSession replaces whatever session the client carried with a new one.
func (c *AuthController) startSession(ctx *gin.Context, userID uuid.UUID) error {
	reqCtx := ctx.Request.Context()
	if stale := c.cookie.Read(ctx); stale != "" {
		if err := c.sessions.Destroy(reqCtx, stale); err != nil {
			log.Printf("request_id=%s failed to drop stale session: %v", middlewares.RequestIDFromContext(ctx), err)
		}
	}

	token, err := c.sessions.Start(reqCtx, userID)
	if err != nil {
		return err
	}
	c.cookie.Set(ctx, token, c.sessions.TTL())
	return nil
}

func (c *AuthController) Register(ctx *gin.Context) {
	var input dto.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err, registerMessages)
		return
	}

	user, err := c.users.CreateUser(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	log.Printf("Registered user %s", user.ID)

	if err := c.startSession(ctx, user.ID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var input dto.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err, loginMessages)
		return
	}

	user, err := c.users.Authenticate(ctx.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if user == nil {
		respondError(ctx, apperrors.New(apperrors.ErrAuthentication, constants.ErrInvalidCredentials))
		return
	}

	if err := c.startSession(ctx, user.ID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (c *AuthController) Logout(ctx *gin.Context) {
	token, ok := middlewares.SessionToken(ctx)
	if !ok {
		// A cookie that no longer resolves may still name a stored session.
		token = c.cookie.Read(ctx)
	}
	if err := c.sessions.Destroy(ctx.Request.Context(), token); err != nil {
		log.Printf("request_id=%s logout failed: %v", middlewares.RequestIDFromContext(ctx), err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": constants.ErrLogoutFailed})
		return
	}
	c.cookie.Clear(ctx)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": constants.ErrAuthRequired})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
