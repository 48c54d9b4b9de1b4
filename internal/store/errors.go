package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned, possibly wrapped, when no record matches.
var ErrNotFound = errors.New("not found")

// ValidationError reports missing or constraint-violating input. Duplicate is
// set when a uniqueness constraint rejected the write.
type ValidationError struct {
	Fields    []string
	Duplicate bool
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// StoreError wraps a connectivity or query failure of the document store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the operation ran out of time.
func (e *StoreError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

func notFound(what string) error {
	return errors.Wrap(ErrNotFound, what)
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsDuplicate(err error) bool {
	var v *ValidationError
	return errors.As(err, &v) && v.Duplicate
}

func IsStore(err error) bool {
	var s *StoreError
	return errors.As(err, &s)
}
