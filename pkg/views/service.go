package views

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/storyshelf/storyshelf/pkg/stories"
	"github.com/storyshelf/storyshelf/pkg/users"
	"github.com/uptrace/bun"
)

type Service struct {
	db                   bun.IDB
	userService          *users.Service
	incrementRepeatViews bool
}

// NewService returns a view tracking service. When incrementRepeatViews is
// set, a repeat view bumps view_count and last_viewed instead of being
// ignored.
func NewService(db bun.IDB, userService *users.Service, incrementRepeatViews bool) *Service {
	return &Service{db, userService, incrementRepeatViews}
}

// RecordView makes sure there's a view row for the pair and returns it.
// Concurrent first views for the same pair result in a single row.
func (svc *Service) RecordView(ctx context.Context, storyID, userID int) (*models.StoryView, error) {
	if err := svc.ensureStory(ctx, storyID); err != nil {
		return nil, err
	}
	if _, err := svc.userService.Retrieve(ctx, userID); err != nil {
		return nil, err
	}

	view := &models.StoryView{
		StoryID:    storyID,
		UserID:     userID,
		ViewCount:  1,
		LastViewed: time.Now(),
	}
	q := svc.db.NewInsert().Model(view)
	if svc.incrementRepeatViews {
		q = q.On("CONFLICT (story_id, user_id) DO UPDATE").
			Set("view_count = view_count + 1").
			Set("last_viewed = EXCLUDED.last_viewed")
	} else {
		q = q.On("CONFLICT (story_id, user_id) DO NOTHING")
	}
	if _, err := q.Exec(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	stored := &models.StoryView{}
	err := svc.db.NewSelect().
		Model(stored).
		Where("sv.story_id = ?", storyID).
		Where("sv.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return stored, nil
}

// TotalViews returns the number of distinct users that viewed the story.
func (svc *Service) TotalViews(ctx context.Context, storyID int) (int, error) {
	if err := svc.ensureStory(ctx, storyID); err != nil {
		return 0, err
	}
	count, err := svc.db.NewSelect().
		Model((*models.StoryView)(nil)).
		Where("sv.story_id = ?", storyID).
		Count(ctx)
	return count, errors.WithStack(err)
}

// UserViewedStories returns the stories the user has viewed, most recently
// viewed first.
func (svc *Service) UserViewedStories(ctx context.Context, userID int) ([]*models.Story, error) {
	if _, err := svc.userService.Retrieve(ctx, userID); err != nil {
		return nil, err
	}

	viewed := []*models.Story{}
	err := stories.HydrateWithChapterImages(svc.db.NewSelect().Model(&viewed)).
		Join("JOIN story_views AS uv ON uv.story_id = s.id").
		Where("uv.user_id = ?", userID).
		OrderExpr("uv.last_viewed DESC").
		OrderExpr("s.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return viewed, nil
}

func (svc *Service) ensureStory(ctx context.Context, storyID int) error {
	exists, err := svc.db.NewSelect().
		Model((*models.Story)(nil)).
		Where("s.id = ?", storyID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Story")
	}
	return nil
}
