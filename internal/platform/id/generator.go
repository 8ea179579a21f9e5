package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates entity identifiers. Repositories never generate ids, so
// use cases assign them before Add.
type Generator interface {
	NewID() (uuid.UUID, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (uuid.UUID, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate uuid: %w", err)
	}
	return v, nil
}

// Sequence hands out a fixed list of ids; handy for deterministic tests and
// fixture seeding.
type Sequence struct {
	ids  []uuid.UUID
	next int
}

func NewSequence(ids ...uuid.UUID) *Sequence {
	return &Sequence{ids: append([]uuid.UUID(nil), ids...)}
}

func (s *Sequence) NewID() (uuid.UUID, error) {
	if s.next >= len(s.ids) {
		return uuid.Nil, fmt.Errorf("id sequence exhausted after %d ids", len(s.ids))
	}
	v := s.ids[s.next]
	s.next++
	return v, nil
}
