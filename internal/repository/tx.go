package repository

import (
	"context"
	"database/sql"
	"fmt"

	"team-roster-service/internal/database"
)

// inTx выполняет fn в транзакции и откатывает её при любой ошибке.
func inTx(ctx context.Context, db *sql.DB, queries *database.Queries, fn func(q *database.Queries) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
