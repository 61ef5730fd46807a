package stories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/models"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// TotalStories counts every story regardless of status.
func (svc *Service) TotalStories(ctx context.Context) (int, error) {
	count, err := svc.db.NewSelect().
		Model((*models.Story)(nil)).
		Count(ctx)
	return count, errors.WithStack(err)
}

// NewStoriesCount counts the approved stories created within the trailing
// period ending at now. An empty period means a week.
func (svc *Service) NewStoriesCount(ctx context.Context, period string, now time.Time) (int, error) {
	since, err := periodStart(period, now)
	if err != nil {
		return 0, err
	}

	count, err := svc.db.NewSelect().
		Model((*models.Story)(nil)).
		Where("s.active = ?", models.StoryStatusApproved).
		Where("s.created_at >= ?", since).
		Count(ctx)
	return count, errors.WithStack(err)
}

func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "", PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return now.AddDate(0, -1, 0), nil
	default:
		return time.Time{}, errcodes.InvalidParameter("time_period", PeriodWeek, PeriodMonth)
	}
}
