package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "hello", CleanString("  hello\t\n"))
	assert.Equal(t, "Hello", CleanString(" Hello ")) // case kept by default
	assert.Equal(t, "hello", CleanString(" Hello ", true))
	assert.Equal(t, "", CleanString("   "))
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError(nil,
		FieldError{Field: "email", Error: "is required"},
		FieldError{Field: "password", Error: "too short"},
	)
	assert.EqualError(t, err, "email: is required; password: too short")
}

func TestTranslateValidationError(t *testing.T) {
	type form struct {
		Email string `json:"email" validate:"required,email"`
	}

	err := TranslateValidationError(Validate.Struct(form{Email: "nope"}))
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 1)
	assert.Equal(t, "email", vErr.Fields[0].Field, "json tag name used in messages")

	assert.NoError(t, TranslateValidationError(nil))
	assert.NoError(t, TranslateValidationError(Validate.Struct(form{Email: "a@b.cd"})))
}
