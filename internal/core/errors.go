package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidCategory is returned for a category outside the closed set.
	ErrInvalidCategory = errors.New("invalid import category")

	// ErrEmptyInput is returned when there is no file or no data rows.
	ErrEmptyInput = errors.New("empty file: no data rows to import")

	// ErrMalformedInput is returned when the upload is not a readable spreadsheet
	// or the bulk payload cannot be decoded.
	ErrMalformedInput = errors.New("malformed input: unable to read spreadsheet data")

	// ErrUnresolvedReference marks a row whose natural key matches nothing in
	// the store. The row is dropped, never surfaced.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrDuplicateNaturalKey is returned by stores when a natural key is taken.
	ErrDuplicateNaturalKey = errors.New("duplicate natural key")

	// ErrTooManyImports is returned when every import slot stays busy for the
	// whole wait time. Clients should retry after a short delay.
	ErrTooManyImports = errors.New("too many concurrent imports, please try again later")

	// ErrTooManyRows is returned when a batch exceeds the configured row cap.
	ErrTooManyRows = errors.New("too many rows in batch")
)

// StructuralError reports a record that fails validation during a bulk write.
// Any StructuralError aborts the whole write.
type StructuralError struct {
	Row   int // 1-based position in the submitted batch
	Field string
	Tag   string
	Err   error
}

func (e *StructuralError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("row %d: required field %s is empty", e.Row, e.Field)
	case "pwbytes":
		return fmt.Sprintf("row %d: field %s is longer than %d bytes", e.Row, e.Field, MaxPasswordBytes)
	}
	return fmt.Sprintf("row %d: field %s failed %q validation", e.Row, e.Field, e.Tag)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// newStructuralError converts a validator failure into a StructuralError.
func newStructuralError(row int, err error) *StructuralError {
	se := &StructuralError{Row: row, Err: err}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		se.Field = jsonFieldName(verrs[0].Field())
		se.Tag = verrs[0].Tag()
	}
	return se
}

// jsonFieldName lowercases the first letter of a Go field name so messages
// use the column names people see in the template.
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// DependentCreationError is an account that could not be created for a
// students or faculty row. The row is skipped; the batch continues.
type DependentCreationError struct {
	Row int
	Key string
	Err error
}

func (e *DependentCreationError) Error() string {
	return fmt.Sprintf("row %d (%s): account creation failed: %v", e.Row, e.Key, e.Err)
}

func (e *DependentCreationError) Unwrap() error { return e.Err }

// ProfileCreationError is a profile that failed after its account was created.
// It aborts the remaining rows of the batch and leaves the account behind.
type ProfileCreationError struct {
	Row int
	Key string
	Err error
}

func (e *ProfileCreationError) Error() string {
	return fmt.Sprintf("row %d (%s): profile creation failed: %v", e.Row, e.Key, e.Err)
}

func (e *ProfileCreationError) Unwrap() error { return e.Err }

// IsInputError reports whether err is a problem with the caller's input
// rather than with the service.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrTooManyRows)
}
