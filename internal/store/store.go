// Package store persists progression state through gorm. It is the only
// writer of users and voice sessions; every mutation is a single transaction.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the user or reward referenced has no record.
	ErrNotFound = errors.New("not found")

	// ErrStorage matches any *StorageError with errors.Is.
	ErrStorage = errors.New("storage failure")
)

// StorageError wraps a driver failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func fail(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// GormStore implements the persistence contract on top of a *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}
