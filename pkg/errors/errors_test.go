package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeSnapshotNotFound, "snapshot not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeSnapshotNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeSnapshotNotFound, err.Code)
	}
	if err.Message != "snapshot not found" {
		t.Errorf("expected message 'snapshot not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Wrap(ErrCodeInvalidSnapshot, "failed to parse snapshot", cause)

	if err.Code != ErrCodeInvalidSnapshot {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidSnapshot, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("permission denied")
	ctx := map[string]any{
		"path":          "/snapshots/web--dv_1--20250101T000000.000000Z.json",
		"collection_id": "dv_1",
	}

	err := WrapWithContext(ErrCodeRetentionIO, "failed to prune snapshot", cause, ctx)

	if err.Code != ErrCodeRetentionIO {
		t.Errorf("expected code %s, got %s", ErrCodeRetentionIO, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["collection_id"] != "dv_1" {
		t.Errorf("expected collection_id to be dv_1")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeIdentifierNotFound, "not found"),
			expected: "[IDENTIFIER_NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeSnapshotNotFound, "missing")
	outer := Wrap(ErrCodeInternal, "compare failed", inner)
	wrapped := fmt.Errorf("run: %w", outer)

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{name: "direct match", err: inner, code: ErrCodeSnapshotNotFound, want: true},
		{name: "outer code", err: wrapped, code: ErrCodeInternal, want: true},
		{name: "nested code", err: wrapped, code: ErrCodeSnapshotNotFound, want: true},
		{name: "absent code", err: wrapped, code: ErrCodeAmbiguousIdentifier, want: false},
		{name: "plain error", err: errors.New("boom"), code: ErrCodeInternal, want: false},
		{name: "nil error", err: nil, code: ErrCodeInternal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("resolve: %w", New(ErrCodeAmbiguousIdentifier, "two matches"))
	if got := CodeOf(err); got != ErrCodeAmbiguousIdentifier {
		t.Errorf("CodeOf() = %s, want %s", got, ErrCodeAmbiguousIdentifier)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf() = %s, want empty", got)
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeUnavailable,
		ErrCodeSnapshotNotFound,
		ErrCodeInvalidSnapshot,
		ErrCodeAmbiguousIdentifier,
		ErrCodeIdentifierNotFound,
		ErrCodeRetentionIO,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}
