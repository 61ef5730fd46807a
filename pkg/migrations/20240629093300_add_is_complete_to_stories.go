package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`ALTER TABLE stories ADD COLUMN is_complete BOOLEAN NOT NULL DEFAULT FALSE`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`ALTER TABLE stories DROP COLUMN is_complete`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
