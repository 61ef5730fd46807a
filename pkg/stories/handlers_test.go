package stories

import (
	"bytes"
	"mime/multipart"
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

func newStoriesTestContext(t *testing.T, env *testEnv, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler(env.translator).Handle

	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func withID(c echo.Context, path string, id int) {
	c.SetPath(path)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(id))
}

func TestHandlerList(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := &handler{storyService: env.svc, translator: env.translator}

	author := testutils.CreateUser(t, env.db, models.UserRoleAuthor)
	catA := testutils.CreateCategory(t, env.db, "Five")
	catB := testutils.CreateCategory(t, env.db, "Seven")
	a := testutils.CreateStory(t, env.db, testutils.StoryOptions{Title: "A", AuthorID: author.ID, CategoryIDs: []int{catA.ID}})
	b := testutils.CreateStory(t, env.db, testutils.StoryOptions{Title: "B", AuthorID: author.ID, CategoryIDs: []int{catB.ID}})

	list := func(t *testing.T, query string) listResponse {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/stories?"+query, nil)
		c, rr := newStoriesTestContext(t, env, req)
		require.NoError(t, h.list(c))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		return resp
	}

	t.Run("json encoded category list", func(t *testing.T) {
		resp := list(t, "categories_id=%5B"+strconv.Itoa(catA.ID)+"%5D")
		assert.Equal(t, []int{a.ID}, storyIDs(resp.Data))
	})

	t.Run("array style category list", func(t *testing.T) {
		resp := list(t, "categories_id%5B%5D="+strconv.Itoa(catA.ID)+"&categories_id%5B%5D="+strconv.Itoa(catB.ID))
		assert.ElementsMatch(t, []int{a.ID, b.ID}, storyIDs(resp.Data))
	})

	t.Run("malformed category list is ignored", func(t *testing.T) {
		resp := list(t, "categories_id=%5Bnope")
		assert.ElementsMatch(t, []int{a.ID, b.ID}, storyIDs(resp.Data))
	})

	t.Run("meta", func(t *testing.T) {
		resp := list(t, "per_page=1&page=2&is_story_new=1")
		require.Len(t, resp.Data, 1)
		assert.Equal(t, a.ID, resp.Data[0].ID)
		assert.Equal(t, Pagination{CurrentPage: 2, PerPage: 1, Total: 2, LastPage: 2}, resp.Meta)
	})

	t.Run("is_complete other than 1 means incomplete", func(t *testing.T) {
		resp := list(t, "is_complete=yes")
		assert.Len(t, resp.Data, 2)
	})

	t.Run("is_active must be an integer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stories?is_active=approved", nil)
		c, _ := newStoriesTestContext(t, env, req)
		err := h.list(c)

		var codeErr *errcodes.Error
		require.ErrorAs(t, err, &codeErr)
		assert.Equal(t, "validation_type_error", codeErr.Code)
	})

	t.Run("is_active must be a known status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stories?is_active=7", nil)
		c, _ := newStoriesTestContext(t, env, req)
		err := h.list(c)

		var codeErr *errcodes.Error
		require.ErrorAs(t, err, &codeErr)
		assert.Equal(t, "validation_error", codeErr.Code)
	})

	t.Run("empty is_complete still filters", func(t *testing.T) {
		done := testutils.CreateStory(t, env.db, testutils.StoryOptions{Title: "Done", AuthorID: author.ID, IsComplete: true})

		resp := list(t, "is_complete=")
		assert.ElementsMatch(t, []int{a.ID, b.ID}, storyIDs(resp.Data))

		resp = list(t, "is_complete=1")
		assert.Equal(t, []int{done.ID}, storyIDs(resp.Data))
	})
}

func TestHandlerCreate_Multipart(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := &handler{storyService: env.svc, translator: env.translator}

	author := testutils.CreateUser(t, env.db, models.UserRoleAuthor)
	category := testutils.CreateCategory(t, env.db, "Mythology")

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("title", "Olympus"))
	require.NoError(t, w.WriteField("author_id", strconv.Itoa(author.ID)))
	require.NoError(t, w.WriteField("category_ids[]", strconv.Itoa(category.ID)))
	require.NoError(t, w.WriteField("active", "1"))
	for _, f := range []struct {
		field string
		data  []byte
	}{
		{"chapter_image[]", pngData},
		{"chapter_image[]", jpegData},
		{"cover_image", pngData},
	} {
		fw, err := w.CreateFormFile(f.field, "upload")
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/stories", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	c, rr := newStoriesTestContext(t, env, req)

	require.NoError(t, h.create(c))
	assert.Equal(t, http.StatusCreated, rr.Code)

	var story models.Story
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &story))
	assert.Equal(t, "Olympus", story.Title)
	assert.Equal(t, models.StoryStatusPending, story.Active)
	require.Len(t, story.Categories, 1)
	require.Len(t, story.Chapters, 1)

	assert.Equal(t, 3, countRows(t, env.db, (*models.Image)(nil)))
}

func TestHandlerUpdate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := &handler{storyService: env.svc, translator: env.translator}

	author := testutils.CreateUser(t, env.db, models.UserRoleAuthor)
	story := testutils.CreateStory(t, env.db, testutils.StoryOptions{Title: "Draft", AuthorID: author.ID})

	req := httptest.NewRequest(http.MethodPatch, "/stories/"+strconv.Itoa(story.ID), strings.NewReader(`{"title":"Final","summary":"Now with a summary"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rr := newStoriesTestContext(t, env, req)
	withID(c, "/stories/:id", story.ID)

	require.NoError(t, h.update(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.Story
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Final", got.Title)
	require.NotNil(t, got.Summary)
	assert.Equal(t, "Now with a summary", *got.Summary)
}

func TestHandlerDeleteAndRetrieve(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := &handler{storyService: env.svc, translator: env.translator}

	author := testutils.CreateUser(t, env.db, models.UserRoleAuthor)
	story := testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID})

	req := httptest.NewRequest(http.MethodDelete, "/stories/"+strconv.Itoa(story.ID), nil)
	c, rr := newStoriesTestContext(t, env, req)
	withID(c, "/stories/:id", story.ID)
	require.NoError(t, h.deleteStory(c))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/stories/"+strconv.Itoa(story.ID), nil)
	req.Header.Set("Accept-Language", "vi")
	c, rr = newStoriesTestContext(t, env, req)
	withID(c, "/stories/:id", story.ID)
	err := h.retrieve(c)
	require.Error(t, err)

	c.Echo().HTTPErrorHandler(err, c)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Truyện không tồn tại.")
}

func TestHandlerTransition(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := &handler{storyService: env.svc, translator: env.translator}

	author := testutils.CreateUser(t, env.db, models.UserRoleAuthor)
	reader := testutils.CreateUser(t, env.db, models.UserRoleReader)
	authored := testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID})
	readers := testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: reader.ID})

	transition := func(t *testing.T, tr models.StoryTransition, id int, lang string) transitionResponse {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if lang != "" {
			req.Header.Set("Accept-Language", lang)
		}
		c, rr := newStoriesTestContext(t, env, req)
		withID(c, "/stories/:id/"+string(tr), id)
		require.NoError(t, h.transition(tr)(c))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp transitionResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		return resp
	}

	t.Run("approve notifies the author", func(t *testing.T) {
		resp := transition(t, models.StoryTransitionApprove, authored.ID, "")
		assert.True(t, resp.Notified)
		require.NotNil(t, resp.NotifiedUserID)
		assert.Equal(t, author.ID, *resp.NotifiedUserID)
		assert.Equal(t, "Story approved and a notification was sent to user_id: "+strconv.Itoa(author.ID), resp.Message)
	})

	t.Run("approve in vietnamese", func(t *testing.T) {
		resp := transition(t, models.StoryTransitionApprove, authored.ID, "vi")
		assert.Equal(t, "Phê duyệt thành công và thông báo đã được gửi đến user_id: "+strconv.Itoa(author.ID), resp.Message)
	})

	t.Run("reader authored story is a partial success", func(t *testing.T) {
		before := countRows(t, env.db, (*models.Notification)(nil))
		resp := transition(t, models.StoryTransitionReject, readers.ID, "")
		assert.False(t, resp.Notified)
		assert.Nil(t, resp.NotifiedUserID)
		assert.Equal(t, "Story rejected, no notification was sent", resp.Message)
		assert.Equal(t, before, countRows(t, env.db, (*models.Notification)(nil)))
	})

	t.Run("complete", func(t *testing.T) {
		resp := transition(t, models.StoryTransitionComplete, authored.ID, "")
		assert.False(t, resp.Notified)
		assert.Equal(t, "The story has been marked as complete", resp.Message)
	})

	t.Run("missing story", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		c, _ := newStoriesTestContext(t, env, req)
		withID(c, "/stories/:id/approve", readers.ID+100)
		err := h.transition(models.StoryTransitionApprove)(c)

		var codeErr *errcodes.Error
		require.ErrorAs(t, err, &codeErr)
		assert.Equal(t, http.StatusNotFound, codeErr.HTTPCode)
	})
}

func TestHandlerStats(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := &handler{storyService: env.svc, translator: env.translator}

	author := testutils.CreateUser(t, env.db, models.UserRoleAuthor)
	testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID, Active: models.StoryStatusApproved})
	testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID})

	req := httptest.NewRequest(http.MethodGet, "/stories/total", nil)
	c, rr := newStoriesTestContext(t, env, req)
	require.NoError(t, h.total(c))
	assert.JSONEq(t, `{"total_stories":2}`, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/stories/new?time_period=month", nil)
	c, rr = newStoriesTestContext(t, env, req)
	require.NoError(t, h.newStories(c))
	assert.JSONEq(t, `{"new_story_count":1}`, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/stories/new?time_period=quarter", nil)
	c, rr = newStoriesTestContext(t, env, req)
	err := h.newStories(c)
	require.Error(t, err)
	c.Echo().HTTPErrorHandler(err, c)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":{"code":"invalid_parameter","message":"Invalid time_period parameter. Only \"week\" or \"month\" are accepted.","status_code":400}}`, rr.Body.String())
}
