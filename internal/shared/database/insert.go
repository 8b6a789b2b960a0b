package database

import (
	"errors"

	"gorm.io/gorm"
)

// InsertResult reports the outcome of an insert guarded by a uniqueness constraint.
type InsertResult int

const (
	// Inserted means the row was written.
	Inserted InsertResult = iota
	// AlreadyExists means a uniqueness constraint rejected the row.
	AlreadyExists
)

// String returns the result name.
func (r InsertResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case AlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
// Requires the connection to be opened with TranslateError.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// ResultFromCreate classifies the error of a plain Create call.
func ResultFromCreate(err error) (InsertResult, error) {
	if err == nil {
		return Inserted, nil
	}
	if IsDuplicateKey(err) {
		return AlreadyExists, nil
	}
	return Inserted, err
}

// ResultFromRowsAffected classifies an INSERT ... ON CONFLICT DO NOTHING.
func ResultFromRowsAffected(rows int64) InsertResult {
	if rows == 0 {
		return AlreadyExists
	}
	return Inserted
}
