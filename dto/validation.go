package dto

import (
	"lost-found/models"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the itemtype and itemstatus tags on gin's
// validator. It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("itemtype", func(fl validator.FieldLevel) bool {
			return models.ItemType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("itemstatus", func(fl validator.FieldLevel) bool {
			return models.ItemStatus(fl.Field().String()).Valid()
		})
	})
}
