package checks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresExists accepts values present in column of table. The table may be
// schema-qualified ("billing.plans").
func PostgresExists(db Querier, table, column string) schema.CheckFunc {
	query := existsQuery(table, column)
	return func(ctx context.Context, _ string, value any) (bool, error) {
		return rowExists(ctx, db, query, value)
	}
}

// PostgresUnique accepts values not yet present in column of table.
func PostgresUnique(db Querier, table, column string) schema.CheckFunc {
	query := existsQuery(table, column)
	return func(ctx context.Context, _ string, value any) (bool, error) {
		found, err := rowExists(ctx, db, query, value)
		return !found, err
	}
}

func existsQuery(table, column string) string {
	return fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		pgx.Identifier(strings.Split(table, ".")).Sanitize(),
		pgx.Identifier{column}.Sanitize(),
	)
}

func rowExists(ctx context.Context, db Querier, query string, value any) (bool, error) {
	var found bool
	if err := db.QueryRow(ctx, query, value).Scan(&found); err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return found, nil
}
