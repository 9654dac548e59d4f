package core

// error_messages.go maps technical errors to user-friendly messages with codes
// for support reference. Callers can quote the code when reporting a failed
// import.
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Unknown category: the import category is not supported
//	IMP002 - Too many rows: the batch exceeds IMPORT_MAX_ROWS
//	IMP003 - System busy: every import slot is in use
//	IMP004 - Profile failed: a student/faculty profile could not be saved
//	IMP005 - Required field: a record is missing a required value
//	IMP006 - Account failed: a student/faculty account could not be created
//	IMP007 - Request cancelled
//	IMP008 - Request timed out
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large
//	FILE002 - Not a readable spreadsheet
//	FILE005 - Empty file or no data rows
//
// # Database Errors (DB001-DB099)
//
// Matched on driver error text, case-insensitively:
//
//	DB001 - Duplicate key          ("duplicate key")
//	DB002 - Unique constraint      ("unique constraint", "violates unique")
//	DB003 - Foreign key            ("foreign key constraint", "violates foreign key")
//	DB004 - Connection refused     ("connection refused")
//	DB005 - Connection reset       ("connection reset")
//	DB006 - Timeout                ("timeout")
//	DB007 - Deadlock               ("deadlock")
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the server log for the technical error.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorKind matches errors by identity or type before any text matching.
type errorKind struct {
	match func(error) bool
	msg   UserMessage
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

func as[T error]() func(error) bool {
	return func(err error) bool {
		var target T
		return errors.As(err, &target)
	}
}

// errorKinds is checked in order; wrapped errors such as a ProfileCreationError
// around a driver error must come before the sentinels they may contain.
var errorKinds = []errorKind{
	{
		match: as[*ProfileCreationError](),
		msg: UserMessage{
			Message: "A profile could not be saved after its account was created",
			Action:  "Fix the reported row, then re-import the rows that follow it",
			Code:    "IMP004",
		},
	},
	{
		match: as[*StructuralError](),
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Ensure all required columns have values; nothing was imported",
			Code:    "IMP005",
		},
	},
	{
		match: as[*DependentCreationError](),
		msg: UserMessage{
			Message: "An account could not be created",
			Action:  "Check for emails that already exist",
			Code:    "IMP006",
		},
	},
	{
		match: is(ErrInvalidCategory),
		msg: UserMessage{
			Message: "Unknown import category",
			Action:  "Use one of: department, course, subject, admin, students, faculty",
			Code:    "IMP001",
		},
	},
	{
		match: is(ErrTooManyRows),
		msg: UserMessage{
			Message: "The file has too many rows for one import",
			Action:  "Split the file into smaller batches",
			Code:    "IMP002",
		},
	},
	{
		match: is(ErrTooManyImports),
		msg: UserMessage{
			Message: "System is busy processing other imports",
			Action:  "Please wait a moment and try again",
			Code:    "IMP003",
		},
	},
	{
		match: is(ErrMalformedInput),
		msg: UserMessage{
			Message: "The file is not a readable spreadsheet",
			Action:  "Upload an .xlsx file based on the downloaded template",
			Code:    "FILE002",
		},
	},
	{
		match: is(ErrEmptyInput),
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Add at least one data row below the header",
			Code:    "FILE005",
		},
	},
	{
		match: is(context.Canceled),
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "IMP007",
		},
	},
	{
		match: is(context.DeadlineExceeded),
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try importing fewer rows at a time",
			Code:    "IMP008",
		},
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps driver error text (case-insensitive) to user messages.
// The first matching pattern wins, so more specific patterns come first.
var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this key already exists",
			Action:  "Remove rows that were already imported",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Check for duplicate entries in your file",
			Code:    "DB002",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "A duplicate value was found",
			Action:  "Review your data for duplicate key values",
			Code:    "DB002",
		},
	},
	{
		pattern: "foreign key constraint",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Import departments before courses, and courses before subjects",
			Code:    "DB003",
		},
	},
	{
		pattern: "violates foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Import departments before courses, and courses before subjects",
			Code:    "DB003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try importing fewer rows or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller files",
			Code:    "FILE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Known error kinds are matched first, then the driver text patterns.
//
//	msg := MapError(fmt.Errorf("insert: %w", ErrTooManyRows))
//	// msg.Code == "IMP002"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, k := range errorKinds {
		if k.match(err) {
			return k.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
