package errcodes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/iancoleman/strcase"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
	// Key is the i18n message key used to localize Message. Params are
	// substituted into the localized message in order.
	Key    string
	Params []string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	te.Key = err.Key
	te.Params = err.Params
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		HTTPCode: http.StatusNotFound,
		Message:  resource + " not found.",
		Code:     "not_found",
		Key:      "not_found." + strcase.ToSnake(resource),
	}
}

// InvalidParameter returns a 400 error for a query parameter that has a value
// outside of the accepted set.
func InvalidParameter(param string, accepted ...string) error {
	quoted := make([]string, 0, len(accepted))
	for _, a := range accepted {
		quoted = append(quoted, fmt.Sprintf("%q", a))
	}
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  fmt.Sprintf("Invalid %s parameter. Only %s are accepted.", param, strings.Join(quoted, " or ")),
		Code:     "invalid_parameter",
		Key:      "invalid_parameter." + param,
	}
}

func UnsupportedMediaType() error {
	return &Error{
		HTTPCode: http.StatusUnsupportedMediaType,
		Message:  "Unsupported Media Type",
		Code:     "unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  fmt.Sprintf("Unknown Parameter %q", param),
		Code:     "unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_error",
	}
}

func MalformedPayload() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Malformed Payload",
		Code:     "malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Request body can't be empty.",
		Code:     "empty_request_body",
	}
}
