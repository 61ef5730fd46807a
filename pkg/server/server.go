package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/storyshelf/storyshelf/pkg/binder"
	"github.com/storyshelf/storyshelf/pkg/categories"
	"github.com/storyshelf/storyshelf/pkg/config"
	"github.com/storyshelf/storyshelf/pkg/database"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/favourites"
	"github.com/storyshelf/storyshelf/pkg/i18n"
	"github.com/storyshelf/storyshelf/pkg/notifications"
	"github.com/storyshelf/storyshelf/pkg/storage"
	"github.com/storyshelf/storyshelf/pkg/stories"
	"github.com/storyshelf/storyshelf/pkg/users"
	"github.com/storyshelf/storyshelf/pkg/views"
	"github.com/uptrace/bun"
)

// New builds the HTTP server with every route registered. store is where
// uploaded story images are written.
func New(cfg *config.Config, db *bun.DB, store storage.Store) (*http.Server, error) {
	e, err := newEcho(cfg, db, store)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB, store storage.Store) (*echo.Echo, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	translator, err := i18n.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	if cfg.DatabaseDebug {
		e.Use(queryLogging)
	}

	health.RegisterRoutes(e)
	config.RegisterRoutes(e, cfg)

	userService := users.RegisterRoutes(e, db)
	categories.RegisterRoutes(e, db)
	notifications.RegisterRoutes(e, db, userService)

	storyService := stories.NewService(db, store, notifications.NewDispatcher(translator, cfg.DefaultLocale), cfg.StoriesPageSize)
	stories.RegisterRoutes(e, storyService, translator)
	views.RegisterRoutes(e, cfg, db, userService, translator)
	favourites.RegisterRoutes(e, db, userService)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler(translator).Handle

	return e, nil
}

// queryLogging turns on the database query hook for the request.
func queryLogging(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		c.SetRequest(req.WithContext(database.WithLogging(req.Context())))
		return next(c)
	}
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}

// Shutdown gracefully stops the server, giving in-flight requests until the
// timeout to finish.
func Shutdown(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return errors.WithStack(srv.Shutdown(ctx))
}
