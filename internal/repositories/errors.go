package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound marks a lookup that resolved no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey marks a unique constraint violation, most importantly
	// the (student_id, semester) index on evaluations.
	ErrDuplicateKey = errors.New("duplicate key")
)

// IsNotFoundError reports whether err is a missing-record error from this
// layer or from gorm directly.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err is a unique constraint violation.
// Postgres surfaces these as SQLSTATE 23505; gorm translates most of them,
// the string check covers drivers that do not.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "SQLSTATE 23505") ||
		strings.Contains(err.Error(), "duplicate key value")
}
