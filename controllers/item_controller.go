package controllers

import (
	"lost-found/constants"
	"lost-found/dto"
	"lost-found/middlewares"
	"lost-found/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IItemController interface {
	List(ctx *gin.Context)
	FindById(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Resolve(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type ItemController struct {
	service services.IItemService
}

func NewItemController(service services.IItemService) IItemController {
	return &ItemController{service: service}
}

var (
	createItemMessages = bindMessages{
		"required": constants.ErrMissingItemFields,
		"itemtype": constants.ErrInvalidItemType,
	}
	updateItemMessages = bindMessages{
		"itemstatus": constants.ErrInvalidItemStatus,
	}
)

func (c *ItemController) List(ctx *gin.Context) {
	var query dto.ItemQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, err, nil)
		return
	}

	items, err := c.service.List(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

func (c *ItemController) FindById(ctx *gin.Context) {
	itemID, ok := parseID(ctx)
	if !ok {
		return
	}

	item, err := c.service.FindByID(ctx.Request.Context(), itemID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (c *ItemController) Create(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input dto.CreateItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err, createItemMessages)
		return
	}

	newItem, err := c.service.Create(ctx.Request.Context(), user, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": newItem})
}

func (c *ItemController) Update(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	itemID, ok := parseID(ctx)
	if !ok {
		return
	}

	var input dto.UpdateItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err, updateItemMessages)
		return
	}

	updatedItem, err := c.service.Update(ctx.Request.Context(), user, itemID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": updatedItem})
}

func (c *ItemController) Resolve(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	itemID, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.service.Resolve(ctx.Request.Context(), user, itemID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Item marked as resolved"})
}

func (c *ItemController) Delete(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	itemID, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), user, itemID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted successfully"})
}
