package categories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/uptrace/bun"
)

const storyCountExpr = "(SELECT COUNT(*) FROM story_categories sc WHERE sc.category_id = c.id) AS story_count"

type ListCategoriesOptions struct {
	Limit  *int
	Offset *int
	Search *string
}

type Service struct {
	db bun.IDB
}

func NewService(db bun.IDB) *Service {
	return &Service{db}
}

func (svc *Service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errcodes.ValidationError(`"name" is required`)
	}

	exists, err := svc.db.NewSelect().
		Model((*models.Category)(nil)).
		Where("c.name = ? COLLATE NOCASE", name).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.ValidationError("Category already exists")
	}

	now := time.Now()
	category := &models.Category{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
	}
	_, err = svc.db.
		NewInsert().
		Model(category).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return category, nil
}

func (svc *Service) RetrieveCategory(ctx context.Context, id int) (*models.Category, error) {
	category := &models.Category{}

	err := svc.db.
		NewSelect().
		Model(category).
		ColumnExpr("c.*").
		ColumnExpr(storyCountExpr).
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Category")
		}
		return nil, errors.WithStack(err)
	}

	return category, nil
}

// ListCategoriesWithTotal returns categories ordered by name along with how
// many stories are filed under each.
func (svc *Service) ListCategoriesWithTotal(ctx context.Context, opts ListCategoriesOptions) ([]*models.Category, int, error) {
	var categories []*models.Category

	q := svc.db.
		NewSelect().
		Model(&categories).
		ColumnExpr("c.*").
		ColumnExpr(storyCountExpr).
		Order("c.name ASC")

	if opts.Search != nil && *opts.Search != "" {
		q = q.Where("c.name LIKE ? ESCAPE '\\'", "%"+EscapeLike(*opts.Search)+"%")
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return categories, total, nil
}

// MissingCategoryIDs returns the IDs from ids that don't belong to any
// category.
func (svc *Service) MissingCategoryIDs(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []int
	err := svc.db.NewSelect().
		Model((*models.Category)(nil)).
		Column("c.id").
		Where("c.id IN (?)", bun.In(ids)).
		Scan(ctx, &found)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	present := make(map[int]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	var missing []int
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// EscapeLike escapes the LIKE wildcards in s so it matches literally when used
// with ESCAPE '\'.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
