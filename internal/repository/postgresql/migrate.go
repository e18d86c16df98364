package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/database"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables and indexes the repositories rely on. It is idempotent.
func Migrate(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		if _, err := GetQuerier(ctx, db).Exec(ctx, schema); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		return nil
	})
}
