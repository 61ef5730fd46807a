package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/uptrace/bun"
)

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		_, err := db.Exec(`ALTER TABLE stories ADD COLUMN title_fold TEXT NOT NULL DEFAULT ''`)
		if err != nil {
			return errors.WithStack(err)
		}

		// SQLite's lower() only folds ASCII, so existing rows are folded here.
		var ids []int
		var titles []string
		err = db.NewSelect().TableExpr("stories").ColumnExpr("id, title").Scan(ctx, &ids, &titles)
		if err != nil {
			return errors.WithStack(err)
		}
		for i, id := range ids {
			_, err := db.Exec(`UPDATE stories SET title_fold = ? WHERE id = ?`, models.FoldTitle(titles[i]), id)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`ALTER TABLE stories DROP COLUMN title_fold`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
