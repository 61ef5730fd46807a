package views

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/i18n"
	"github.com/storyshelf/storyshelf/pkg/models"
)

type handler struct {
	viewService *Service
	translator  *i18n.Translator
}

type recordViewResponse struct {
	Message string            `json:"message"`
	View    *models.StoryView `json:"view"`
}

func (h *handler) record(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(c.Request().Context())

	storyID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Story")
	}

	params := RecordViewPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.viewService.RecordView(ctx, storyID, params.UserID)
	if err != nil {
		return errors.WithStack(err)
	}
	log.Debug("view recorded", logger.Data{"story_id": storyID, "user_id": params.UserID, "view_count": view.ViewCount})

	trans := h.translator.ForAcceptLanguage(c.Request().Header.Get("Accept-Language"))
	return errors.WithStack(c.JSON(http.StatusOK, recordViewResponse{
		Message: i18n.Message(trans, i18n.KeyViewRecorded, "View recorded"),
		View:    view,
	}))
}

func (h *handler) total(c echo.Context) error {
	ctx := c.Request().Context()

	storyID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Story")
	}

	count, err := h.viewService.TotalViews(ctx, storyID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]int{"total_views": count}))
}

func (h *handler) viewedStories(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	viewed, err := h.viewService.UserViewedStories(ctx, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string][]*models.Story{"data": viewed}))
}
