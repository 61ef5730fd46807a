package stories

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/i18n"
	"github.com/storyshelf/storyshelf/pkg/models"
)

type handler struct {
	storyService *Service
	translator   *i18n.Translator
}

type listResponse struct {
	Data []*models.Story `json:"data"`
	Meta Pagination      `json:"meta"`
}

type transitionResponse struct {
	Message        string `json:"message"`
	Notified       bool   `json:"notified"`
	NotifiedUserID *int   `json:"notified_user_id"`
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(c.Request().Context())

	params := ListStoriesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	categoryIDs, err := ParseCategoryIDs(params.CategoriesID)
	if err != nil {
		log.Err(err).Warn("ignoring malformed categories_id", logger.Data{"categories_id": params.CategoriesID})
		categoryIDs = nil
	}

	opts := ListStoriesOptions{
		CategoryIDs: categoryIDs,
		Search:      params.SearchString,
		AuthorID:    params.UserID,
		NewestFirst: params.IsStoryNew != nil && *params.IsStoryNew == "1",
		Page:        params.Page,
	}
	if params.IsActive != nil {
		status := models.StoryStatus(*params.IsActive)
		opts.Active = &status
	}
	// Present but empty still filters, to incomplete stories.
	if _, ok := c.QueryParams()["is_complete"]; ok {
		complete := c.QueryParam("is_complete") == "1"
		opts.IsComplete = &complete
	}
	if params.PerPage != nil {
		opts.PerPage = *params.PerPage
	}

	stories, meta, err := h.storyService.ListStoriesWithTotal(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, listResponse{stories, meta}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := storyID(c)
	if err != nil {
		return err
	}

	story, err := h.storyService.RetrieveStory(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, story))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateStoryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	story, err := h.storyService.CreateStory(ctx, CreateStoryOptions{
		Title:       params.Title,
		Summary:     params.Summary,
		AuthorID:    params.AuthorID,
		CategoryIDs: params.CategoryIDs,
		Uploads:     UploadsFromForm(params.FormFiles),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, story))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := storyID(c)
	if err != nil {
		return err
	}

	params := UpdateStoryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	story, err := h.storyService.RetrieveStory(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateStoryOptions{}
	if params.Title != nil && *params.Title != story.Title {
		story.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.AuthorID != nil && *params.AuthorID != story.AuthorID {
		story.AuthorID = *params.AuthorID
		opts.Columns = append(opts.Columns, "author_id")
	}
	if params.Summary != nil {
		story.Summary = params.Summary
		opts.Columns = append(opts.Columns, "summary")
	}

	if err := h.storyService.UpdateStory(ctx, story, opts); err != nil {
		return errors.WithStack(err)
	}

	story, err = h.storyService.RetrieveStory(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, story))
}

func (h *handler) deleteStory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := storyID(c)
	if err != nil {
		return err
	}

	if err := h.storyService.DeleteStory(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

// transition returns a handler that applies t to the story in the path.
func (h *handler) transition(t models.StoryTransition) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := storyID(c)
		if err != nil {
			return err
		}

		result, err := h.storyService.ApplyTransition(ctx, id, t)
		if err != nil {
			return errors.WithStack(err)
		}

		trans := h.translator.ForAcceptLanguage(c.Request().Header.Get("Accept-Language"))
		resp := transitionResponse{}
		switch {
		case t == models.StoryTransitionComplete:
			resp.Message = i18n.Message(trans, i18n.KeyStoryCompleted, "The story has been marked as complete")
		case result.Notification != nil:
			userID := result.Notification.UserID
			resp.Notified = true
			resp.NotifiedUserID = &userID
			resp.Message = i18n.Message(trans, "story."+string(t)+".notified", "", strconv.Itoa(userID))
		default:
			resp.Message = i18n.Message(trans, "story."+string(t)+".not_notified", "")
		}

		return errors.WithStack(c.JSON(http.StatusOK, resp))
	}
}

func (h *handler) total(c echo.Context) error {
	ctx := c.Request().Context()

	count, err := h.storyService.TotalStories(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]int{"total_stories": count}))
}

func (h *handler) newStories(c echo.Context) error {
	ctx := c.Request().Context()

	params := NewStoriesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	count, err := h.storyService.NewStoriesCount(ctx, params.TimePeriod, time.Now())
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]int{"new_story_count": count}))
}

func storyID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errcodes.NotFound("Story")
	}
	return id, nil
}
