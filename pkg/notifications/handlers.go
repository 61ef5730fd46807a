package notifications

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/storyshelf/storyshelf/pkg/users"
)

type handler struct {
	notificationService *Service
	userService         *users.Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}
	if _, err := h.userService.Retrieve(ctx, userID); err != nil {
		return errors.WithStack(err)
	}

	params := ListNotificationsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	notifications, total, err := h.notificationService.ListNotificationsWithTotal(ctx, ListNotificationsOptions{
		UserID:     userID,
		UnreadOnly: params.UnreadOnly,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Notifications []*models.Notification `json:"notifications"`
		Total         int                    `json:"total"`
	}{notifications, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
