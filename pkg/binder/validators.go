package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRE = regexp.MustCompile(`^[\p{L}\p{N}._-]+$`)
)

// usernameValidator allows letters (in any script), numbers, dots, dashes and
// underscores. Length is left to min/max.
func usernameValidator(fl validator.FieldLevel) bool {
	return usernameRE.MatchString(fl.Field().String())
}
