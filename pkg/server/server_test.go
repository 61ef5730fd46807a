package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/storyshelf/storyshelf/pkg/config"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/storyshelf/storyshelf/pkg/storage"
	"github.com/storyshelf/storyshelf/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.NewForTest()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	e, err := newEcho(cfg, testutils.NewDB(t), store)
	require.NoError(t, err)
	return &testServer{t, e}
}

func (s *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rr := httptest.NewRecorder()
	s.e.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) decode(rr *httptest.ResponseRecorder, v interface{}) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func TestServer_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"Page not found.","status_code":404}}`, rr.Body.String())

	rr = s.do(http.MethodGet, "/nope", "", "Accept-Language", "vi")
	assert.Contains(t, rr.Body.String(), "Không tìm thấy trang.")
}

func TestServer_Config(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var pub config.PublicConfig
	s.decode(rr, &pub)
	assert.Equal(t, 5, pub.StoriesPageSize)
	assert.NotContains(t, rr.Body.String(), "minio_secret_key")
}

func TestServer_StoryFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	var author, reader models.User
	rr := s.do(http.MethodPost, "/users", `{"username":"Homer","role":"author"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	s.decode(rr, &author)
	rr = s.do(http.MethodPost, "/users", `{"username":"dante","role":"reader"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	s.decode(rr, &reader)

	var category models.Category
	rr = s.do(http.MethodPost, "/categories", `{"name":"Epic"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	s.decode(rr, &category)

	var story models.Story
	rr = s.do(http.MethodPost, "/stories", `{"title":"Odyssey","author_id":`+strconv.Itoa(author.ID)+`,"category_ids":[`+strconv.Itoa(category.ID)+`]}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	s.decode(rr, &story)
	assert.Equal(t, models.StoryStatusPending, story.Active)
	storyPath := "/stories/" + strconv.Itoa(story.ID)

	rr = s.do(http.MethodPost, storyPath+"/approve", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"notified":true`)

	rr = s.do(http.MethodGet, "/users/"+strconv.Itoa(author.ID)+"/notifications", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var notifications struct {
		Notifications []*models.Notification `json:"notifications"`
		Total         int                    `json:"total"`
	}
	s.decode(rr, &notifications)
	require.Equal(t, 1, notifications.Total)
	assert.Equal(t, "Your story Odyssey has been approved!", notifications.Notifications[0].Message)

	body := `{"user_id":` + strconv.Itoa(reader.ID) + `}`
	for i := 0; i < 2; i++ {
		rr = s.do(http.MethodPost, storyPath+"/views", body)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}
	rr = s.do(http.MethodGet, storyPath+"/total-views", "")
	assert.JSONEq(t, `{"total_views":1}`, rr.Body.String())

	rr = s.do(http.MethodPost, storyPath+"/favourites", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(http.MethodGet, "/stories?categories_id=%5B"+strconv.Itoa(category.ID)+"%5D&is_active=1", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var list struct {
		Data []*models.Story `json:"data"`
	}
	s.decode(rr, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, 1, list.Data[0].StoryViewsCount)
	assert.Len(t, list.Data[0].FavouritedByUsers, 1)

	rr = s.do(http.MethodGet, "/stories/total", "")
	assert.JSONEq(t, `{"total_stories":1}`, rr.Body.String())
	rr = s.do(http.MethodGet, "/stories/new", "")
	assert.JSONEq(t, `{"new_story_count":1}`, rr.Body.String())

	rr = s.do(http.MethodGet, "/stories/new?time_period=quarter", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodGet, "/users/"+strconv.Itoa(reader.ID)+"/viewed-stories", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"title":"Odyssey"`)

	rr = s.do(http.MethodDelete, storyPath, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = s.do(http.MethodGet, storyPath, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
