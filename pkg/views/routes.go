package views

import (
	"github.com/labstack/echo/v4"
	"github.com/storyshelf/storyshelf/pkg/config"
	"github.com/storyshelf/storyshelf/pkg/i18n"
	"github.com/storyshelf/storyshelf/pkg/users"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, cfg *config.Config, db *bun.DB, userService *users.Service, translator *i18n.Translator) {
	h := &handler{
		viewService: NewService(db, userService, cfg.IncrementRepeatViews),
		translator:  translator,
	}

	e.POST("/stories/:id/views", h.record)
	e.GET("/stories/:id/total-views", h.total)
	e.GET("/users/:id/viewed-stories", h.viewedStories)
}
