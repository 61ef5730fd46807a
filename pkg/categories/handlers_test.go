package categories

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/storyshelf/storyshelf/pkg/binder"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/storyshelf/storyshelf/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, method, target, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler(nil).Handle

	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	if payload != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func TestHandlerCreateAndRetrieve(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{categoryService: NewService(db)}

	c, rr := newTestContext(t, http.MethodPost, "/categories", `{"name":"Mystery"}`)
	require.NoError(t, h.create(c))
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.Category
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Mystery", created.Name)

	c, rr = newTestContext(t, http.MethodGet, "/categories/"+strconv.Itoa(created.ID), "")
	c.SetPath("/categories/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(created.ID))
	require.NoError(t, h.retrieve(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"story_count":0`)
}

func TestHandlerCreate_MissingName(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{categoryService: NewService(db)}

	c, _ := newTestContext(t, http.MethodPost, "/categories", `{"name":"  "}`)
	err := h.create(c)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusUnprocessableEntity, codeErr.HTTPCode)
	assert.Equal(t, `"name" is required`, codeErr.Message)
}

func TestHandlerList(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{categoryService: NewService(db)}
	testutils.CreateCategory(t, db, "B")
	testutils.CreateCategory(t, db, "A")

	c, rr := newTestContext(t, http.MethodGet, "/categories", "")
	require.NoError(t, h.list(c))

	var resp struct {
		Categories []*models.Category `json:"categories"`
		Total      int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "A", resp.Categories[0].Name)
}
