// Package notifications writes the notifications that story transitions
// produce. Notifications are only stored; delivering them is up to clients
// polling for them.
package notifications

import (
	"context"
	"database/sql"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/i18n"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/uptrace/bun"
)

// DomainEvent is emitted after a transition has been applied to a story.
type DomainEvent struct {
	StoryID    int
	Transition models.StoryTransition
}

type template struct {
	titleKey   string
	messageKey string
}

// Transitions missing from this table never notify anyone.
var templates = map[models.StoryTransition]template{
	models.StoryTransitionApprove: {"notification.approve.title", "notification.approve.message"},
	models.StoryTransitionDisable: {"notification.disable.title", "notification.disable.message"},
	models.StoryTransitionReject:  {"notification.reject.title", "notification.reject.message"},
}

type Dispatcher struct {
	trans ut.Translator
}

// NewDispatcher returns a dispatcher that writes notification text in the
// given locale.
func NewDispatcher(translator *i18n.Translator, locale string) *Dispatcher {
	return &Dispatcher{translator.ForLocale(locale)}
}

// Dispatch writes a notification for event if the transition has one and the
// story's author is an author. It returns nil when nothing was written. db is
// usually the transaction the transition ran in.
func (d *Dispatcher) Dispatch(ctx context.Context, db bun.IDB, event DomainEvent) (*models.Notification, error) {
	log := logger.FromContext(ctx)

	tmpl, ok := templates[event.Transition]
	if !ok {
		return nil, nil
	}

	story := &models.Story{}
	err := db.NewSelect().
		Model(story).
		Relation("Author").
		Where("s.id = ?", event.StoryID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Story")
		}
		return nil, errors.WithStack(err)
	}

	if !story.Author.IsAuthor() {
		log.Info("story author is not notifiable", logger.Data{"story_id": story.ID, "author_id": story.AuthorID, "transition": event.Transition})
		return nil, nil
	}

	notification := &models.Notification{
		CreatedAt: time.Now(),
		UserID:    story.AuthorID,
		Title:     i18n.Message(d.trans, tmpl.titleKey, tmpl.titleKey),
		Message:   i18n.Message(d.trans, tmpl.messageKey, tmpl.messageKey, story.Title),
		StoryID:   &story.ID,
	}
	_, err = db.NewInsert().
		Model(notification).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	log.Info("notification written", logger.Data{"story_id": story.ID, "user_id": notification.UserID, "transition": event.Transition})
	return notification, nil
}
