package controllers

import (
	"lost-found/constants"
	"lost-found/dto"
	"lost-found/middlewares"
	"lost-found/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IUserController interface {
	UpdateProfile(ctx *gin.Context)
}

type UserController struct {
	service services.IUserService
}

func NewUserController(service services.IUserService) IUserController {
	return &UserController{service: service}
}

var profileMessages = bindMessages{
	"email": constants.ErrInvalidEmail,
}

func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input dto.UpdateProfileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err, profileMessages)
		return
	}

	updated, err := c.service.UpdateProfile(ctx.Request.Context(), user.ID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": updated})
}
