package charity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrProductNotFound indicates a product was not found
	ErrProductNotFound = errors.New("product not found")

	// ErrContentPostNotFound indicates a content post was not found
	ErrContentPostNotFound = errors.New("content post not found")

	// ErrCarouselImageNotFound indicates a carousel image was not found
	ErrCarouselImageNotFound = errors.New("carousel image not found")

	// ErrPageContentNotFound indicates no content exists for a page name
	ErrPageContentNotFound = errors.New("page content not found")

	// ErrPageDocumentNotFound indicates a page document was not found
	ErrPageDocumentNotFound = errors.New("page document not found")

	// ErrUserNotFound indicates a user was not found
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfSwap indicates a move targeting the moving item itself
	ErrSelfSwap = errors.New("cannot swap an item with itself")

	// ErrRangConflict indicates a rank-uniqueness violation during a swap;
	// the caller should refresh and retry.
	ErrRangConflict = errors.New("rank position already taken")

	// ErrDuplicateEmail indicates the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed password check
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingField indicates a required field was empty
	ErrMissingField = errors.New("required field missing")

	// ErrMissingFile indicates a required file upload was absent
	ErrMissingFile = errors.New("required file missing")
)

// EntityError represents an error related to a single-record operation.
type EntityError struct {
	Entity string
	ID     uuid.UUID
	Op     string
	Err    error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s operation %s failed for %s: %v", e.Entity, e.Op, e.ID, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob storage operations.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
