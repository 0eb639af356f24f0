package store

import (
	"errors"

	"gorm.io/gorm"
)

// Expected domain conditions. Everything else coming out of a Store method
// is a store fault: the transaction was rolled back and the wrapped cause
// is preserved for diagnostics.
var (
	// ErrNotFound signals that the lookup target does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEnrollment signals an attempted re-enrollment for a
	// (user, course) pair that already holds an enrollment.
	ErrDuplicateEnrollment = errors.New("user already enrolled in this course")

	// ErrEnrollmentsExist signals that a user or course cannot be deleted
	// while enrollments still reference it.
	ErrEnrollmentsExist = errors.New("enrollments still reference this record")
)

// Store exposes the domain operations over an explicitly constructed
// database handle. Each mutating operation runs in its own transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
