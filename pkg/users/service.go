package users

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/uptrace/bun"
)

// Service handles user operations.
type Service struct {
	db bun.IDB
}

// NewService creates a new users service. db can be a transaction.
func NewService(db bun.IDB) *Service {
	return &Service{db: db}
}

// CreateUserOptions contains options for creating a user.
type CreateUserOptions struct {
	Username string
	Role     string
}

// Create creates a new user.
func (s *Service) Create(ctx context.Context, opts CreateUserOptions) (*models.User, error) {
	exists, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("username = ? COLLATE NOCASE", opts.Username).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.ValidationError("Username already exists")
	}

	now := time.Now()
	user := &models.User{
		CreatedAt: now,
		UpdatedAt: now,
		Username:  opts.Username,
		Role:      opts.Role,
	}
	_, err = s.db.NewInsert().
		Model(user).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// Retrieve gets a user by ID.
func (s *Service) Retrieve(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("User")
		}
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// Exists reports whether a user with the given ID exists.
func (s *Service) Exists(ctx context.Context, id int) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("u.id = ?", id).
		Exists(ctx)
	return exists, errors.WithStack(err)
}

// ListOptions contains options for listing users.
type ListOptions struct {
	Limit  int
	Offset int
	Role   *string
}

// List returns a paginated list of users.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*models.User, int, error) {
	users := []*models.User{}

	q := s.db.NewSelect().
		Model(&users).
		Order("u.username ASC").
		Limit(opts.Limit).
		Offset(opts.Offset)

	if opts.Role != nil {
		q = q.Where("u.role = ?", *opts.Role)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return users, total, nil
}
