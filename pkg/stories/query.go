package stories

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/storyshelf/storyshelf/pkg/categories"
	"github.com/storyshelf/storyshelf/pkg/config"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/uptrace/bun"
)

const (
	viewsCountExpr = "(SELECT COUNT(*) FROM story_views sv WHERE sv.story_id = s.id)"
	maxPerPage     = config.MaxStoriesPageSize
)

type ListStoriesOptions struct {
	CategoryIDs []int
	Active      *models.StoryStatus
	Search      string
	IsComplete  *bool
	AuthorID    *int
	NewestFirst bool
	Page        int
	PerPage     int
}

type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

func newPagination(page, perPage, total int) Pagination {
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}

// hydrate selects every story column along with the view count and loads the
// relations that story responses include.
func hydrate(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		ColumnExpr("s.*").
		ColumnExpr(viewsCountExpr+" AS story_views_count").
		Relation("Author").
		Relation("Chapters", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("ch.chapter_number ASC")
		}).
		Relation("Images", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("img.id ASC")
		}).
		Relation("Categories", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("c.name ASC")
		}).
		Relation("FavouritedByUsers").
		Relation("UsersView")
}

// HydrateWithChapterImages applies the story response columns and relations,
// including each chapter's images, to a query over stories aliased as s.
func HydrateWithChapterImages(q *bun.SelectQuery) *bun.SelectQuery {
	return hydrate(q).Relation("Chapters.Images", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("img.id ASC")
	})
}

// ListStoriesWithTotal runs the story query engine. Filters are combined with
// AND, and the results are always in a deterministic order.
func (svc *Service) ListStoriesWithTotal(ctx context.Context, opts ListStoriesOptions) ([]*models.Story, Pagination, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 {
		opts.PerPage = svc.pageSize
	}
	if opts.PerPage > maxPerPage {
		opts.PerPage = maxPerPage
	}

	stories := []*models.Story{}
	q := hydrate(svc.db.NewSelect().Model(&stories))

	if len(opts.CategoryIDs) > 0 {
		q = q.Where("s.id IN (SELECT sc.story_id FROM story_categories sc WHERE sc.category_id IN (?))", bun.In(opts.CategoryIDs))
	}
	if opts.Active != nil {
		q = q.Where("s.active = ?", *opts.Active)
	}
	if opts.Search != "" {
		q = q.Where("s.title_fold LIKE ? ESCAPE '\\'", "%"+categories.EscapeLike(models.FoldTitle(opts.Search))+"%")
	}
	if opts.IsComplete != nil {
		q = q.Where("s.is_complete = ?", *opts.IsComplete)
	}
	if opts.AuthorID != nil {
		q = q.Where("s.author_id = ?", *opts.AuthorID)
	}

	if opts.NewestFirst {
		q = q.OrderExpr("s.created_at DESC")
	} else {
		q = q.OrderExpr(viewsCountExpr + " DESC")
	}
	q = q.OrderExpr("s.id DESC").
		Limit(opts.PerPage).
		Offset((opts.Page - 1) * opts.PerPage)

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, Pagination{}, errors.WithStack(err)
	}

	return stories, newPagination(opts.Page, opts.PerPage, total), nil
}

// ParseCategoryIDs turns the raw categories_id query values into IDs. The
// values can either be repeated parameters or a single JSON list whose
// elements are numbers or numeric strings. An error means the input is
// malformed as a whole.
func ParseCategoryIDs(values []string) ([]int, error) {
	var raw []string
	switch {
	case len(values) == 0:
		return nil, nil
	case len(values) == 1 && strings.TrimSpace(values[0]) == "":
		return nil, nil
	case len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "["):
		var elems []json.RawMessage
		if err := json.Unmarshal([]byte(values[0]), &elems); err != nil {
			return nil, errors.Wrap(err, "categories_id is not a valid JSON list")
		}
		for _, elem := range elems {
			var s string
			if err := json.Unmarshal(elem, &s); err == nil {
				raw = append(raw, s)
				continue
			}
			raw = append(raw, string(elem))
		}
	default:
		raw = values
	}

	ids := make([]int, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.Atoi(strings.TrimSpace(r))
		if err != nil || id < 1 {
			return nil, errors.Errorf("categories_id contains an invalid ID %q", r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
