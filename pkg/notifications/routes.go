package notifications

import (
	"github.com/labstack/echo/v4"
	"github.com/storyshelf/storyshelf/pkg/users"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, userService *users.Service) {
	h := &handler{
		notificationService: NewService(db),
		userService:         userService,
	}

	e.GET("/users/:id/notifications", h.list)
}
