// Package ids generates record identifiers of the form PREFIX_<epoch millis>_<0..999>.
//
// Identifiers are not guaranteed unique: two calls in the same millisecond
// that draw the same suffix collide, and no caller checks for existing ids.
package ids

import (
	"fmt"
	"math/rand"
	"time"
)

// Entity prefixes.
const (
	IngredientPrefix   = "ING"
	RecipePrefix       = "RCP"
	RelationshipPrefix = "REL"
	SupplierPrefix     = "SUP"
	InventoryPrefix    = "INV"
)

// Generator produces identifiers for a prefix.
type Generator interface {
	Generate(prefix string) string
}

// Clock generates ids from a clock and a random source.
type Clock struct {
	Now  func() time.Time
	Intn func(n int) int
}

// New returns a Clock backed by time.Now and math/rand.
func New() *Clock {
	return &Clock{Now: time.Now, Intn: rand.Intn}
}

// Generate returns "{prefix}_{epochMillis}_{random 0..999}".
func (c *Clock) Generate(prefix string) string {
	now, intn := time.Now, rand.Intn
	if c != nil && c.Now != nil {
		now = c.Now
	}
	if c != nil && c.Intn != nil {
		intn = c.Intn
	}
	return fmt.Sprintf("%s_%d_%d", prefix, now().UnixMilli(), intn(1000))
}

// Sequence returns deterministic ids PREFIX_<n>, counting per prefix from 1.
// It is meant for tests and fixtures.
type Sequence struct {
	next map[string]int
}

// Generate returns the next id for prefix.
func (s *Sequence) Generate(prefix string) string {
	if s.next == nil {
		s.next = make(map[string]int)
	}
	s.next[prefix]++
	return fmt.Sprintf("%s_%d", prefix, s.next[prefix])
}
