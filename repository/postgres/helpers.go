package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// isTaskFKViolation reports whether err is a foreign-key violation against a
// task_id column (SQLSTATE 23503), meaning the parent task no longer exists.
func isTaskFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23503" &&
		strings.Contains(pgErr.ConstraintName, "task_id")
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
