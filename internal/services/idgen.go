package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// IDGenerator produces external grievance identifiers. It is injected into
// GrievanceService so tests can substitute a deterministic source.
type IDGenerator interface {
	NextGrievanceID() string
}

// randomIDGenerator emits ids of the form GRV-#### with four random decimal
// digits (1000-9999). Uniqueness is a soft constraint: at modest scale these
// ids can collide, and callers relying on hard uniqueness should swap in a
// different generator.
type randomIDGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomIDGenerator returns the default GRV-#### generator.
func NewRandomIDGenerator() IDGenerator {
	return &randomIDGenerator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *randomIDGenerator) NextGrievanceID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("GRV-%d", 1000+g.rng.Intn(9000))
}
