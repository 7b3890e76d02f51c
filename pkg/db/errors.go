package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error class 23 is integrity violations.
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err was caused by a Postgres unique
// constraint. Pass a constraint name to match one constraint specifically,
// or empty to match any unique violation. Falls back to message inspection
// for drivers that do not surface *pgconn.PgError (the sqlite test driver).
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != uniqueViolationCode {
			return false
		}
		return constraintName == "" || pgErr.ConstraintName == constraintName
	}

	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName)
}
