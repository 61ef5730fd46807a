package categories

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers category routes and returns the service so other
// packages can validate category IDs with it.
func RegisterRoutes(e *echo.Echo, db *bun.DB) *Service {
	categoryService := NewService(db)

	h := &handler{
		categoryService: categoryService,
	}

	g := e.Group("/categories")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.retrieve)

	return categoryService
}
