// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When users encounter errors, they can quote the error code to
// support staff for faster diagnosis.
//
// Error codes are grouped by category:
//
// # List Errors (LST001-LST099)
//
// Errors raised by list and column operations:
//
//	LST001 - Arity mismatch: Row value count differs from the column count
//	         Action: Provide one value per column, in column order
//	         Matches: ErrArityMismatch
//
//	LST002 - Invalid value: A value could not be converted to the column type
//	         Action: Check the value matches the column type
//	         Matches: ErrInvalidValue
//
//	LST003 - Unknown column: No column has the requested name or id
//	         Action: Check the column name and try again
//	         Matches: ErrUnknownColumn
//
//	LST004 - Not found: The list, row or template does not exist
//	         Action: Refresh and try again
//	         Matches: ErrNotFound
//
//	LST005 - Unsupported type: The column type is not supported
//	         Action: Choose one of the supported column types
//	         Matches: ErrUnsupportedColumnType
//
// # Storage Errors (STO001-STO099)
//
// Errors related to the persistence layer:
//
//	STO001 - Connection refused: Unable to reach the database
//	         Action: Please try again in a few moments
//	         Patterns: "connection refused"
//
//	STO002 - Timeout: Operation timed out
//	         Action: Please try again later
//	         Patterns: "timeout", "context deadline exceeded"
//
//	STO003 - Corrupt data: Saved list data could not be read
//	         Action: Restore the data file from a backup
//	         Patterns: "corrupt", "lz4"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Rate limited: Too many requests
//	         Action: Please wait a moment before trying again
//	         Patterns: "rate limit"
//
//	REQ002 - Bad request: The request body or parameters could not be read
//	         Action: Check the request format and try again
//	         Patterns: "bad request", "empty file", "invalid csv"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Matching
//
// Sentinel errors are matched with errors.Is first, most specific first, so
// a wrapped ErrUnsupportedColumnType reports LST005 even though it also
// wraps ErrInvalidValue. Remaining errors are matched by case-insensitive
// substring; the first matching pattern wins.
package core

import (
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

type sentinelMessage struct {
	err error
	msg UserMessage
}

// sentinelMessages is ordered most specific first.
var sentinelMessages = []sentinelMessage{
	{
		err: ErrUnsupportedColumnType,
		msg: UserMessage{
			Message: "The column type is not supported",
			Action:  "Choose one of the supported column types",
			Code:    "LST005",
		},
	},
	{
		err: ErrArityMismatch,
		msg: UserMessage{
			Message: "The number of values does not match the number of columns",
			Action:  "Provide one value per column, in column order",
			Code:    "LST001",
		},
	},
	{
		err: ErrInvalidValue,
		msg: UserMessage{
			Message: "A value does not match its column type",
			Action:  "Check the value matches the column type",
			Code:    "LST002",
		},
	},
	{
		err: ErrUnknownColumn,
		msg: UserMessage{
			Message: "Column not found",
			Action:  "Check the column name and try again",
			Code:    "LST003",
		},
	},
	{
		err: ErrNotFound,
		msg: UserMessage{
			Message: "The requested item does not exist",
			Action:  "Refresh and try again",
			Code:    "LST004",
		},
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// Order matters: specific patterns come before general ones.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Storage Errors (STO001-STO003)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the database",
			Action:  "Please try again in a few moments",
			Code:    "STO001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "STO002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "STO002",
		},
	},
	{
		pattern: "corrupt",
		msg: UserMessage{
			Message: "Saved list data could not be read",
			Action:  "Restore the data file from a backup",
			Code:    "STO003",
		},
	},
	{
		pattern: "lz4",
		msg: UserMessage{
			Message: "Saved list data could not be read",
			Action:  "Restore the data file from a backup",
			Code:    "STO003",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ002)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "bad request",
		msg:     badRequestMessage,
	},
	{
		pattern: "empty file",
		msg:     badRequestMessage,
	},
	{
		pattern: "invalid csv",
		msg:     badRequestMessage,
	},
}

var badRequestMessage = UserMessage{
	Message: "The request could not be read",
	Action:  "Check the request format and try again",
	Code:    "REQ002",
}

// defaultMessage is returned when nothing matches (ERR000). Support staff
// should check application logs for the original error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := list.AddRow("a")
//	msg := MapError(err)
//	// msg.Code == "LST001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
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

// IsUserFacing reports whether err maps to a specific message rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-friendly message.
// The original error is preserved for logging.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
