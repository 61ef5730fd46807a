package favourites

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
)

type handler struct {
	favouriteService *Service
}

type favouriteResponse struct {
	StoryID    int  `json:"story_id"`
	UserID     int  `json:"user_id"`
	Favourited bool `json:"favourited"`
}

func (h *handler) add(c echo.Context) error {
	ctx := c.Request().Context()

	storyID, params, err := bindFavourite(c)
	if err != nil {
		return err
	}

	if err := h.favouriteService.Add(ctx, storyID, params.UserID); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, favouriteResponse{storyID, params.UserID, true}))
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Request().Context()

	storyID, params, err := bindFavourite(c)
	if err != nil {
		return err
	}

	if err := h.favouriteService.Remove(ctx, storyID, params.UserID); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, favouriteResponse{storyID, params.UserID, false}))
}

func bindFavourite(c echo.Context) (int, FavouritePayload, error) {
	params := FavouritePayload{}

	storyID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, params, errcodes.NotFound("Story")
	}
	if err := c.Bind(&params); err != nil {
		return 0, params, errors.WithStack(err)
	}
	return storyID, params, nil
}
