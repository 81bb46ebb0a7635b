package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "arity mismatch maps correctly",
			err:         fmt.Errorf("add row: %w: got 1 values for 5 columns", ErrArityMismatch),
			wantCode:    "LST001",
			wantMessage: "The number of values does not match the number of columns",
		},
		{
			name:        "invalid value maps correctly",
			err:         fmt.Errorf("column %q: %w", "Age", ErrInvalidValue),
			wantCode:    "LST002",
			wantMessage: "A value does not match its column type",
		},
		{
			name:        "unsupported type wins over invalid value",
			err:         fmt.Errorf("%w: %w: Blob", ErrInvalidValue, ErrUnsupportedColumnType),
			wantCode:    "LST005",
			wantMessage: "The column type is not supported",
		},
		{
			name:        "unknown column maps correctly",
			err:         fmt.Errorf("column %q: %w", "Nope", ErrUnknownColumn),
			wantCode:    "LST003",
			wantMessage: "Column not found",
		},
		{
			name:        "not found maps correctly",
			err:         fmt.Errorf("list x: %w", ErrNotFound),
			wantCode:    "LST004",
			wantMessage: "The requested item does not exist",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New("dial tcp: connection refused"),
			wantCode:    "STO001",
			wantMessage: "Unable to reach the database",
		},
		{
			name:        "timeout maps correctly",
			err:         errors.New("i/o timeout"),
			wantCode:    "STO002",
			wantMessage: "Operation timed out",
		},
		{
			name:        "lz4 failure maps to corrupt data",
			err:         errors.New("lz4: bad magic number"),
			wantCode:    "STO003",
			wantMessage: "Saved list data could not be read",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "REQ001",
			wantMessage: "Too many requests",
		},
		{
			name:        "empty upload maps to bad request",
			err:         fmt.Errorf("import: %w", errors.New("empty file")),
			wantCode:    "REQ002",
			wantMessage: "The request could not be read",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("CONNECTION REFUSED"),
			wantCode:    "STO001",
			wantMessage: "Unable to reach the database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	err := fmt.Errorf("row: %w", ErrNotFound)
	result := FormatUserError(err)

	expected := "The requested item does not exist (Code: LST004). Refresh and try again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "sentinel error is user facing",
			err:  ErrUnknownColumn,
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := fmt.Errorf("edit row: %w", ErrArityMismatch)
		userErr := NewUserError(techErr)

		if userErr.Error() != "The number of values does not match the number of columns" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}

		if !errors.Is(userErr, ErrArityMismatch) {
			t.Error("Unwrap() should expose the original sentinel")
		}
	})
}
