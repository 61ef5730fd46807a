package favourites

import (
	"github.com/labstack/echo/v4"
	"github.com/storyshelf/storyshelf/pkg/users"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, userService *users.Service) {
	h := &handler{
		favouriteService: NewService(db, userService),
	}

	e.POST("/stories/:id/favourites", h.add)
	e.DELETE("/stories/:id/favourites", h.remove)
}
