package stories

import (
	"github.com/labstack/echo/v4"
	"github.com/storyshelf/storyshelf/pkg/i18n"
	"github.com/storyshelf/storyshelf/pkg/models"
)

// RegisterRoutes registers story routes. The static paths are registered
// alongside /:id, which echo resolves in favour of the static ones.
func RegisterRoutes(e *echo.Echo, storyService *Service, translator *i18n.Translator) {
	h := &handler{
		storyService: storyService,
		translator:   translator,
	}

	g := e.Group("/stories")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/total", h.total)
	g.GET("/new", h.newStories)
	g.GET("/:id", h.retrieve)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.deleteStory)
	g.POST("/:id/approve", h.transition(models.StoryTransitionApprove))
	g.POST("/:id/disable", h.transition(models.StoryTransitionDisable))
	g.POST("/:id/no-approve", h.transition(models.StoryTransitionReject))
	g.POST("/:id/complete", h.transition(models.StoryTransitionComplete))
}
