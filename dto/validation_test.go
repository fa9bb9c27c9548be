package dto

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedTags(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	tags := map[string]string{}
	for _, fe := range verrs {
		tags[fe.Field()] = fe.Tag()
	}
	return tags
}

func TestCreateItemInputValidation(t *testing.T) {
	RegisterValidators()
	RegisterValidators()

	ok := CreateItemInput{Name: "Keys", Description: "Car keys", Location: "Lot B", Type: "found"}
	assert.NoError(t, binding.Validator.ValidateStruct(&ok))

	bad := CreateItemInput{Name: "Keys", Description: "Car keys", Location: "Lot B", Type: "stolen"}
	assert.Equal(t, map[string]string{"Type": "itemtype"}, failedTags(t, binding.Validator.ValidateStruct(&bad)))

	missing := CreateItemInput{Type: "lost"}
	tags := failedTags(t, binding.Validator.ValidateStruct(&missing))
	assert.Equal(t, "required", tags["Name"])
	assert.Equal(t, "required", tags["Location"])
}

func TestUpdateItemInputValidation(t *testing.T) {
	RegisterValidators()

	resolved := "resolved"
	assert.NoError(t, binding.Validator.ValidateStruct(&UpdateItemInput{Status: &resolved}))
	assert.NoError(t, binding.Validator.ValidateStruct(&UpdateItemInput{}))

	archived := "archived"
	assert.Equal(t, map[string]string{"Status": "itemstatus"},
		failedTags(t, binding.Validator.ValidateStruct(&UpdateItemInput{Status: &archived})))
}

func TestRegisterInputValidation(t *testing.T) {
	short := RegisterInput{Username: "dave", Email: "dave@example.com", Password: "12345"}
	assert.Equal(t, map[string]string{"Password": "min"}, failedTags(t, binding.Validator.ValidateStruct(&short)))

	// Registration takes any non-empty email; only profile updates check the format.
	plainEmail := RegisterInput{Username: "dave", Email: "dave", Password: "123456"}
	assert.NoError(t, binding.Validator.ValidateStruct(&plainEmail))

	badProfileEmail := "dave"
	assert.Equal(t, map[string]string{"Email": "email"},
		failedTags(t, binding.Validator.ValidateStruct(&UpdateProfileInput{Email: &badProfileEmail})))
}
