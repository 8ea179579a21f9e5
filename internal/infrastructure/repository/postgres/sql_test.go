package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func TestIsCancellation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "context canceled", err: context.Canceled, want: true},
		{name: "wrapped deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: true},
		{name: "query canceled sqlstate", err: &pq.Error{Code: "57014"}, want: true},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: false},
		{name: "plain failure", err: errors.New("connection refused"), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := isCancellation(tc.err); got != tc.want {
				t.Fatalf("isCancellation() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	if !isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})) {
		t.Fatalf("expected wrapped 23505 to be a unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "57014"}) || isUniqueViolation(errors.New("boom")) {
		t.Fatalf("unexpected unique violation")
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("unexpected not found for generic error")
	}
}

func TestNullHelpers(t *testing.T) {
	t.Parallel()

	if v := nullString(""); v.Valid {
		t.Fatalf("empty string must be NULL")
	}
	if v := nullString("  "); !v.Valid || v.String != "  " {
		t.Fatalf("whitespace must be stored verbatim, got %+v", v)
	}
	if v := nullTime(time.Time{}); v.Valid {
		t.Fatalf("zero time must be NULL")
	}
	if v := nullUUID(uuid.Nil); v.Valid {
		t.Fatalf("nil uuid must be NULL")
	}
	id := uuid.New()
	if v := nullUUID(id); !v.Valid || v.UUID != id {
		t.Fatalf("unexpected null uuid %+v", v)
	}
}
