package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// IsUniqueViolation reports whether err is a unique constraint violation. When
// constraintName is provided the violation must reference that constraint;
// otherwise any unique violation matches. Both Postgres driver error types are
// inspected, plus the sqlite message format used in tests.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.Code == pgUniqueViolation {
		return constraintName == "" || pgxErr.ConstraintName == constraintName
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return constraintName == "" || pqErr.Constraint == constraintName
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		return constraintName == "" || strings.Contains(msg, constraintName)
	}
	return false
}

// IsIntegrityViolation reports whether err is any storage-level constraint
// violation (unique, foreign key, or check).
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	if IsUniqueViolation(err, "") {
		return true
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgForeignKeyViolation || pgxErr.Code == pgCheckViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation || string(pqErr.Code) == pgCheckViolation
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "CHECK constraint failed")
}
