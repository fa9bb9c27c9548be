package controllers

import (
	"errors"
	"log"
	"lost-found/apperrors"
	"lost-found/constants"
	"lost-found/middlewares"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// bindMessages maps a failed validator tag to the message sent back. A
// "Field.tag" key wins over a bare "tag" key.
type bindMessages map[string]string

func (m bindMessages) lookup(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return constants.ErrInvalidInput
	}
	fe := verrs[0]
	if msg, ok := m[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := m[fe.Tag()]; ok {
		return msg
	}
	return constants.ErrInvalidInput
}

func respondBindError(ctx *gin.Context, err error, messages bindMessages) {
	ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": messages.lookup(err)})
}

func respondError(ctx *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("request_id=%s %s %s failed: %v",
			middlewares.RequestIDFromContext(ctx), ctx.Request.Method, ctx.Request.URL.Path, err)
	}
	ctx.JSON(status, gin.H{"success": false, "error": apperrors.Message(err, constants.ErrUnexpected)})
}

// parseID turns the :id path parameter into a typed id or writes a 400.
func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": constants.ErrInvalidID})
		return uuid.Nil, false
	}
	return id, true
}
