package model

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator hands out entity ids. Factories take one explicitly so that
// tests can use a deterministic sequence.
type IDGenerator interface {
	NextID(kind string) string
}

// UUIDGenerator produces short random ids prefixed by the entity kind.
type UUIDGenerator struct{}

// NextID returns e.g. "box-1a2b3c4d".
func (UUIDGenerator) NextID(kind string) string {
	return kind + "-" + uuid.New().String()[:8]
}

// SequenceGenerator produces "box-1", "box-2", ... with a counter per kind.
// It is not safe for concurrent use.
type SequenceGenerator struct {
	counters map[string]int
}

// NewSequenceGenerator returns a generator whose counters start at zero.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{counters: make(map[string]int)}
}

// NextID increments the counter for kind and formats the id.
func (g *SequenceGenerator) NextID(kind string) string {
	if g.counters == nil {
		g.counters = make(map[string]int)
	}
	g.counters[kind]++
	return fmt.Sprintf("%s-%d", kind, g.counters[kind])
}
