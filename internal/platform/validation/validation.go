// Package validation registers the custom binding tags used by request models.
package validation

import (
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// TagUsername validates a login name: non-empty and at most MaxUsernameLength characters.
const TagUsername = "username"

// MaxUsernameLength matches the width of the users.username column.
const MaxUsernameLength = 64

// ValidUsername reports whether s is an acceptable username.
// Any characters are allowed; only the length is bounded.
func ValidUsername(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= MaxUsernameLength
}

// Register installs the custom tags on v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagUsername, func(fl validator.FieldLevel) bool {
		return ValidUsername(fl.Field().String())
	}); err != nil {
		return errors.Wrapf(err, "register %q validation failed", TagUsername)
	}
	return nil
}

// RegisterGinBinding installs the custom tags on gin's default validator.
func RegisterGinBinding() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return Register(v)
}
