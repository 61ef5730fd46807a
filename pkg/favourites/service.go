package favourites

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/storyshelf/storyshelf/pkg/users"
	"github.com/uptrace/bun"
)

type Service struct {
	db          bun.IDB
	userService *users.Service
}

func NewService(db bun.IDB, userService *users.Service) *Service {
	return &Service{db, userService}
}

// Add marks the story as a favourite of the user. Adding an existing
// favourite is a no-op.
func (svc *Service) Add(ctx context.Context, storyID, userID int) error {
	if err := svc.ensureStoryAndUser(ctx, storyID, userID); err != nil {
		return err
	}

	_, err := svc.db.NewInsert().
		Model(&models.Favourite{
			CreatedAt: time.Now(),
			StoryID:   storyID,
			UserID:    userID,
		}).
		On("CONFLICT (story_id, user_id) DO NOTHING").
		Exec(ctx)
	return errors.WithStack(err)
}

// Remove deletes the favourite if there is one.
func (svc *Service) Remove(ctx context.Context, storyID, userID int) error {
	if err := svc.ensureStoryAndUser(ctx, storyID, userID); err != nil {
		return err
	}

	_, err := svc.db.NewDelete().
		Model((*models.Favourite)(nil)).
		Where("story_id = ?", storyID).
		Where("user_id = ?", userID).
		Exec(ctx)
	return errors.WithStack(err)
}

// IsFavourite reports whether the user has favourited the story.
func (svc *Service) IsFavourite(ctx context.Context, storyID, userID int) (bool, error) {
	exists, err := svc.db.NewSelect().
		Model((*models.Favourite)(nil)).
		Where("fav.story_id = ?", storyID).
		Where("fav.user_id = ?", userID).
		Exists(ctx)
	return exists, errors.WithStack(err)
}

func (svc *Service) ensureStoryAndUser(ctx context.Context, storyID, userID int) error {
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

	exists, err = svc.userService.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return errcodes.NotFound("User")
	}
	return nil
}
