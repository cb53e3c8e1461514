package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeSiteNotFound, "no site named %q", "SLICE_X3Y7")

	if err.Code != ErrCodeSiteNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSiteNotFound)
	}

	if err.Message != `no site named "SLICE_X3Y7"` {
		t.Errorf("Message = %v, want %v", err.Message, `no site named "SLICE_X3Y7"`)
	}

	expected := `SITE_NOT_FOUND: no site named "SLICE_X3Y7"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidNetlist, cause, "decode netlist")

	if err.Code != ErrCodeInvalidNetlist {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidNetlist)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	want := "INVALID_NETLIST: decode netlist: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeSiteConflict, "test"),
			code:     ErrCodeSiteConflict,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeSiteConflict, "test"),
			code:     ErrCodeIllegalLocation,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidInput, New(ErrCodeInvalidDevice, "inner"), "outer"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("place: %w", New(ErrCodeUnfinished, "detailed placement")),
			code:     ErrCodeUnfinished,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeSiteTypeMismatch, "test"),
			expected: ErrCodeSiteTypeMismatch,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsConfiguration(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeSiteNotFound, true},
		{ErrCodeSiteTypeMismatch, true},
		{ErrCodeSiteConflict, true},
		{ErrCodeIllegalLocation, false},
		{ErrCodeUnfinished, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := IsConfiguration(New(tt.code, "x")); got != tt.want {
				t.Errorf("IsConfiguration(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeIllegalLocation, "site is not legal"),
			expected: "site is not legal",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
