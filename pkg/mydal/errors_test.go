package mydal_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mydal-project/mydal/pkg/mydal"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, mydal.ExitSuccess},
		{"general error", errors.New("something went wrong"), mydal.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag --foo"), mydal.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), mydal.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), mydal.ExitUsageError},
		{"required flag", errors.New("required flag \"database\" not set"), mydal.ExitUsageError},
		{"invalid config", mydal.ErrInvalidConfig, mydal.ExitConfigError},
		{"access denied", mydal.ErrAccessDenied, mydal.ExitConfigError},
		{"unknown database", mydal.ErrUnknownDatabase, mydal.ExitConfigError},
		{"connection failed", mydal.ErrConnectionFailed, mydal.ExitConnectionError},
		{"not found", mydal.ErrNotFound, mydal.ExitNotFound},
		{"query failed", mydal.ErrQueryFailed, mydal.ExitQueryFailed},
		{"connection refused pattern", errors.New("dial tcp 127.0.0.1:3306: connection refused"), mydal.ExitConnectionError},
		{"no such host pattern", errors.New("dial tcp: lookup nohost: no such host"), mydal.ExitConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mydal.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_WrappedSentinels(t *testing.T) {
	wrapped := fmt.Errorf("connecting to %q: %w", "classicmodels", mydal.ErrConnectionFailed)
	if got := mydal.ExitCodeForError(wrapped); got != mydal.ExitConnectionError {
		t.Errorf("ExitCodeForError(wrapped) = %d, want %d", got, mydal.ExitConnectionError)
	}

	deep := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", mydal.ErrNotFound))
	if got := mydal.ExitCodeForError(deep); got != mydal.ExitNotFound {
		t.Errorf("ExitCodeForError(deep) = %d, want %d", got, mydal.ExitNotFound)
	}
}
