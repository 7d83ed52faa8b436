package store

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound means no row matched the lookup or the mutation.
	ErrNotFound = errors.New("record not found")
	// ErrReferenceNotFound means a foreign key points at a missing row.
	ErrReferenceNotFound = errors.New("referenced record not found")
	// ErrOutOfRange means a value does not fit its column.
	ErrOutOfRange = errors.New("value out of range")
)

const (
	pqForeignKeyViolation = "23503"
	pqNumericOutOfRange   = "22003"
)

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return ErrReferenceNotFound
		case pqNumericOutOfRange:
			return ErrOutOfRange
		}
	}
	return err
}
