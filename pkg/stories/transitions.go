package stories

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/storyshelf/storyshelf/pkg/notifications"
	"github.com/uptrace/bun"
)

type transitionRule struct {
	column string
	apply  func(*models.Story)
}

// Every change to a story's status or completion goes through this table.
var transitions = map[models.StoryTransition]transitionRule{
	models.StoryTransitionApprove:  {"active", func(s *models.Story) { s.Active = models.StoryStatusApproved }},
	models.StoryTransitionDisable:  {"active", func(s *models.Story) { s.Active = models.StoryStatusDisabled }},
	models.StoryTransitionReject:   {"active", func(s *models.Story) { s.Active = models.StoryStatusRejected }},
	models.StoryTransitionComplete: {"is_complete", func(s *models.Story) { s.IsComplete = true }},
}

type TransitionResult struct {
	Story *models.Story
	// Notification is nil when nobody was notified.
	Notification *models.Notification
}

// ApplyTransition applies t to the story and hands the resulting event to the
// notifier, all in one transaction.
func (svc *Service) ApplyTransition(ctx context.Context, storyID int, t models.StoryTransition) (*TransitionResult, error) {
	log := logger.FromContext(ctx)

	rule, ok := transitions[t]
	if !ok {
		return nil, errors.Errorf("unknown story transition %q", t)
	}

	result := &TransitionResult{}
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		story := &models.Story{}
		err := tx.NewSelect().
			Model(story).
			Where("s.id = ?", storyID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Story")
			}
			return errors.WithStack(err)
		}

		rule.apply(story)
		story.UpdatedAt = time.Now()
		_, err = tx.NewUpdate().
			Model(story).
			Column(rule.column, "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		result.Story = story

		if svc.notifier == nil {
			return nil
		}
		n, err := svc.notifier.Dispatch(ctx, tx, notifications.DomainEvent{StoryID: story.ID, Transition: t})
		if err != nil {
			return err
		}
		result.Notification = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("story transitioned", logger.Data{
		"story_id":   storyID,
		"transition": t,
		"active":     result.Story.Active,
		"notified":   result.Notification != nil,
	})
	return result, nil
}
