package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"invalid category", fmt.Errorf("template: %w", ErrInvalidCategory), "IMP001"},
		{"too many rows", fmt.Errorf("%w: 9000 rows", ErrTooManyRows), "IMP002"},
		{"limiter busy", ErrTooManyImports, "IMP003"},
		{"malformed upload", fmt.Errorf("%w: zip: not a valid zip file", ErrMalformedInput), "FILE002"},
		{"empty upload", ErrEmptyInput, "FILE005"},
		{"cancelled", fmt.Errorf("list departments: %w", context.Canceled), "IMP007"},
		{"deadline", context.DeadlineExceeded, "IMP008"},
		{"duplicate key", errors.New("ERROR: duplicate key value violates unique constraint"), "DB001"},
		{"unique constraint", errors.New("ERROR: unique constraint violated"), "DB002"},
		{"foreign key", errors.New("violates foreign key constraint"), "DB003"},
		{"connection refused", errors.New("dial tcp: connection refused"), "DB004"},
		{"body too large", errors.New("http: request body too large"), "FILE001"},
		{"case insensitive matching", errors.New("DUPLICATE KEY value violates"), "DB001"},
		{"unknown error returns default", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapError_TypedErrorsWinOverWrappedCause(t *testing.T) {
	dbErr := errors.New("ERROR: duplicate key value violates unique constraint \"students_enrollment_no_key\"")

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"profile failure", &ProfileCreationError{Row: 3, Key: "ENR003", Err: dbErr}, "IMP004"},
		{"structural failure", &StructuralError{Row: 1, Field: "code", Tag: "required"}, "IMP005"},
		{"account failure", &DependentCreationError{Row: 2, Key: "a@b.c", Err: ErrDuplicateNaturalKey}, "IMP006"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("import students: %w", tt.err)
			if got := MapError(wrapped).Code; got != tt.wantCode {
				t.Errorf("MapError().Code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrTooManyImports)
	want := "System is busy processing other imports (Code: IMP003). Please wait a moment and try again"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestStructuralError_Message(t *testing.T) {
	err := &StructuralError{Row: 4, Field: "email", Tag: "required"}
	if !strings.Contains(err.Error(), "required field email") {
		t.Errorf("Error() = %q, want mention of required field email", err.Error())
	}
	if !strings.Contains(err.Error(), "row 4") {
		t.Errorf("Error() = %q, want row number", err.Error())
	}
}
