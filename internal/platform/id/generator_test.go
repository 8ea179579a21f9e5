package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestRandomGenerator_NewID(t *testing.T) {
	g := NewRandomGenerator()
	a, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	b, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if a == uuid.Nil || a == b {
		t.Fatalf("expected distinct non-nil ids, got %s and %s", a, b)
	}
}

func TestSequence_Exhausts(t *testing.T) {
	want := uuid.MustParse("6f1c2b3a-0000-4000-8000-000000000001")
	s := NewSequence(want)

	got, err := s.NewID()
	if err != nil || got != want {
		t.Fatalf("unexpected first id: %s, %v", got, err)
	}
	if _, err := s.NewID(); err == nil {
		t.Fatalf("expected exhausted sequence error")
	}
}
