package stories

import (
	"context"
	"database/sql"
	"path"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/storyshelf/storyshelf/pkg/categories"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/storyshelf/storyshelf/pkg/notifications"
	"github.com/storyshelf/storyshelf/pkg/storage"
	"github.com/storyshelf/storyshelf/pkg/users"
	"github.com/uptrace/bun"
)

const maxTitleLength = 255

// Notifier is told about every transition inside the transition's
// transaction and decides whether somebody should hear about it.
type Notifier interface {
	Dispatch(ctx context.Context, db bun.IDB, event notifications.DomainEvent) (*models.Notification, error)
}

type CreateStoryOptions struct {
	Title       string
	Summary     *string
	AuthorID    int
	CategoryIDs []int
	Uploads     []Upload
}

type UpdateStoryOptions struct {
	Columns []string
}

type Service struct {
	db       *bun.DB
	store    storage.Store
	notifier Notifier
	pageSize int
}

func NewService(db *bun.DB, store storage.Store, notifier Notifier, pageSize int) *Service {
	return &Service{
		db:       db,
		store:    store,
		notifier: notifier,
		pageSize: pageSize,
	}
}

func (svc *Service) RetrieveStory(ctx context.Context, id int) (*models.Story, error) {
	story := &models.Story{}

	err := hydrate(svc.db.NewSelect().Model(story)).
		Where("s.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Story")
		}
		return nil, errors.WithStack(err)
	}

	return story, nil
}

// CreateStory validates opts and then writes the story, its categories, its
// first chapter and its uploads in a single transaction. Files that were
// already stored are removed again if the transaction fails.
func (svc *Service) CreateStory(ctx context.Context, opts CreateStoryOptions) (*models.Story, error) {
	log := logger.FromContext(ctx)

	opts.Title = strings.TrimSpace(opts.Title)
	if err := validateTitle(opts.Title); err != nil {
		return nil, err
	}
	if err := svc.validateAuthor(ctx, svc.db, opts.AuthorID); err != nil {
		return nil, err
	}
	categoryIDs := dedupe(opts.CategoryIDs)
	missing, err := categories.NewService(svc.db).MissingCategoryIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, errcodes.ValidationError(`"category_ids" contains an unknown category`)
	}
	for _, u := range opts.Uploads {
		if err := validateImage(u); err != nil {
			return nil, err
		}
	}

	var stored []string
	story := &models.Story{}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		story = &models.Story{
			CreatedAt: now,
			UpdatedAt: now,
			Title:     opts.Title,
			Summary:   opts.Summary,
			AuthorID:  opts.AuthorID,
			Active:    models.StoryStatusPending,
		}
		_, err := tx.NewInsert().
			Model(story).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if len(categoryIDs) > 0 {
			links := make([]*models.StoryCategory, 0, len(categoryIDs))
			for _, id := range categoryIDs {
				links = append(links, &models.StoryCategory{StoryID: story.ID, CategoryID: id})
			}
			_, err = tx.NewInsert().
				Model(&links).
				On("CONFLICT DO NOTHING").
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		chapter := &models.Chapter{
			CreatedAt:     now,
			UpdatedAt:     now,
			StoryID:       story.ID,
			Title:         story.Title,
			ChapterNumber: models.FirstChapterNumber,
		}
		_, err = tx.NewInsert().
			Model(chapter).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		counts := map[Slot]int{}
		for _, u := range opts.Uploads {
			key := StoragePath(story.ID, u.Slot, counts[u.Slot], story.Title)
			counts[u.Slot]++

			if err := svc.ensureDirectory(ctx, path.Dir(key)); err != nil {
				return err
			}
			storedKey, err := svc.storeUpload(ctx, u, key)
			if err != nil {
				return err
			}
			stored = append(stored, storedKey)

			if err := insertUploadRow(ctx, tx, story.ID, chapter.ID, u.Slot, storedKey, now); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		for _, key := range stored {
			if derr := svc.store.Delete(ctx, key); derr != nil {
				log.Err(derr).Warn("failed to clean up stored file", logger.Data{"key": key})
			}
		}
		return nil, err
	}

	log.Info("story created", logger.Data{"story_id": story.ID, "author_id": story.AuthorID, "uploads": len(stored)})

	return svc.RetrieveStory(ctx, story.ID)
}

func (svc *Service) UpdateStory(ctx context.Context, story *models.Story, opts UpdateStoryOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	for _, col := range opts.Columns {
		switch col {
		case "title":
			story.Title = strings.TrimSpace(story.Title)
			if err := validateTitle(story.Title); err != nil {
				return err
			}
		case "author_id":
			if err := svc.validateAuthor(ctx, svc.db, story.AuthorID); err != nil {
				return err
			}
		}
	}

	story.UpdatedAt = time.Now()
	columns := make([]string, 0, len(opts.Columns)+2)
	columns = append(columns, opts.Columns...)
	if slices.Contains(opts.Columns, "title") {
		columns = append(columns, "title_fold")
	}
	columns = append(columns, "updated_at")

	res, err := svc.db.
		NewUpdate().
		Model(story).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errcodes.NotFound("Story")
	}
	return nil
}

// DeleteStory removes a story together with everything that hangs off of it.
// Notifications about the story are kept but no longer point at it. Stored
// files are removed after the transaction commits.
func (svc *Service) DeleteStory(ctx context.Context, id int) error {
	log := logger.FromContext(ctx)
	var keys []string

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Story)(nil)).
			Where("s.id = ?", id).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.NotFound("Story")
		}

		var imagePaths, licensePaths []string
		err = tx.NewSelect().Model((*models.Image)(nil)).Column("path").Where("story_id = ?", id).Scan(ctx, &imagePaths)
		if err != nil {
			return errors.WithStack(err)
		}
		err = tx.NewSelect().Model((*models.LicenseImage)(nil)).Column("path").Where("story_id = ?", id).Scan(ctx, &licensePaths)
		if err != nil {
			return errors.WithStack(err)
		}
		keys = append(imagePaths, licensePaths...)

		_, err = tx.NewUpdate().
			Model((*models.Notification)(nil)).
			Set("story_id = NULL").
			Where("story_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		for _, model := range []interface{}{
			(*models.Image)(nil),
			(*models.LicenseImage)(nil),
			(*models.StoryCategory)(nil),
			(*models.StoryView)(nil),
			(*models.Favourite)(nil),
			(*models.Chapter)(nil),
		} {
			_, err = tx.NewDelete().
				Model(model).
				Where("story_id = ?", id).
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		_, err = tx.NewDelete().
			Model((*models.Story)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := svc.store.Delete(ctx, key); err != nil {
			log.Err(err).Warn("failed to delete stored file", logger.Data{"key": key})
		}
	}

	log.Info("story deleted", logger.Data{"story_id": id, "files": len(keys)})
	return nil
}

func (svc *Service) validateAuthor(ctx context.Context, db bun.IDB, authorID int) error {
	exists, err := users.NewService(db).Exists(ctx, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return errcodes.ValidationError(`"author_id" must reference an existing user`)
	}
	return nil
}

func (svc *Service) ensureDirectory(ctx context.Context, dir string) error {
	exists, err := svc.store.Exists(ctx, dir)
	if err != nil {
		return errors.WithStack(err)
	}
	if exists {
		return nil
	}
	return errors.WithStack(svc.store.MakeDirectory(ctx, dir))
}

func (svc *Service) storeUpload(ctx context.Context, u Upload, key string) (string, error) {
	r, err := u.Open()
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer r.Close()

	storedKey, err := svc.store.Store(ctx, r, u.Size, key)
	return storedKey, errors.WithStack(err)
}

func insertUploadRow(ctx context.Context, tx bun.IDB, storyID, chapterID int, slot Slot, key string, now time.Time) error {
	var model interface{}
	switch slot {
	case SlotLicenseImage:
		model = &models.LicenseImage{
			CreatedAt: now,
			StoryID:   storyID,
			ChapterID: chapterID,
			Path:      key,
		}
	case SlotChapterImage, SlotCoverImage:
		model = &models.Image{
			CreatedAt:    now,
			StoryID:      storyID,
			ChapterID:    chapterID,
			Path:         key,
			IsCoverImage: slot == SlotCoverImage,
		}
	default:
		return errors.Errorf("unknown upload slot %q", slot)
	}
	_, err := tx.NewInsert().Model(model).Exec(ctx)
	return errors.WithStack(err)
}

func validateTitle(title string) error {
	if title == "" {
		return errcodes.ValidationError(`"title" is required`)
	}
	if len([]rune(title)) > maxTitleLength {
		return errcodes.ValidationError(`"title" length must be less than or equal to 255 characters`)
	}
	return nil
}

func dedupe(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
