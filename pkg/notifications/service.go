package notifications

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/uptrace/bun"
)

type ListNotificationsOptions struct {
	UserID     int
	UnreadOnly bool
	Limit      int
	Offset     int
}

type Service struct {
	db bun.IDB
}

func NewService(db bun.IDB) *Service {
	return &Service{db}
}

// ListNotificationsWithTotal returns a user's notifications, newest first.
func (svc *Service) ListNotificationsWithTotal(ctx context.Context, opts ListNotificationsOptions) ([]*models.Notification, int, error) {
	notifications := []*models.Notification{}

	q := svc.db.NewSelect().
		Model(&notifications).
		Where("n.user_id = ?", opts.UserID).
		Order("n.created_at DESC", "n.id DESC").
		Limit(opts.Limit).
		Offset(opts.Offset)

	if opts.UnreadOnly {
		q = q.Where("n.is_read = FALSE")
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	return notifications, total, nil
}
