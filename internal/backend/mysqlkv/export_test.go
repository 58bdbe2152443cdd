package mysqlkv

import (
	"context"
	"database/sql"
)

// ExecTruncate empties the table between conformance runs.
func ExecTruncate(ctx context.Context, s *Store) (sql.Result, error) {
	return s.db.ExecContext(ctx, `DELETE FROM `+Table)
}
