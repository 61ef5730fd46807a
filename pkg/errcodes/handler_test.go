package errcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/storyshelf/storyshelf/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	} `json:"error"`
}

func handle(t *testing.T, h *Handler, err error, acceptLanguage string) (int, errorBody) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h.Handle(err, c)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandle(t *testing.T) {
	t.Parallel()
	tr, err := i18n.New()
	require.NoError(t, err)

	t.Run("custom error without translator", func(t *testing.T) {
		code, body := handle(t, NewHandler(nil), errors.WithStack(NotFound("Story")), "vi")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "not_found", body.Error.Code)
		assert.Equal(t, "Story not found.", body.Error.Message)
		assert.Equal(t, http.StatusNotFound, body.Error.StatusCode)
	})

	t.Run("custom error is localized", func(t *testing.T) {
		code, body := handle(t, NewHandler(tr), NotFound("Story"), "vi-VN")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Truyện không tồn tại.", body.Error.Message)
	})

	t.Run("invalid parameter", func(t *testing.T) {
		code, body := handle(t, NewHandler(tr), InvalidParameter("time_period", "week", "month"), "")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "invalid_parameter", body.Error.Code)
		assert.Equal(t, `Invalid time_period parameter. Only "week" or "month" are accepted.`, body.Error.Message)
	})

	t.Run("echo error", func(t *testing.T) {
		code, body := handle(t, NewHandler(tr), echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), "")
		assert.Equal(t, http.StatusMethodNotAllowed, code)
		assert.Equal(t, "method_not_allowed", body.Error.Code)
	})

	t.Run("generic error is an internal server error", func(t *testing.T) {
		code, body := handle(t, NewHandler(tr), errors.New("boom"), "")
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "internal_server_error", body.Error.Code)
		assert.Equal(t, "Internal Server Error", body.Error.Message)
	})
}

func TestErrorIs(t *testing.T) {
	t.Parallel()
	err := errors.Wrap(NotFound("Category"), "lookup")
	assert.True(t, errors.Is(err, NotFound("Category")))
	assert.False(t, errors.Is(err, NotFound("Story")))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "not_found.category", e.Key)
}
