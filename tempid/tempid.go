// Package tempid generates temporary identifiers for records that have not
// been persisted yet. A temporary identifier lets several relationships in
// one write document point at the same new record.
package tempid

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces identifiers that are unique within the process lifetime.
type Generator interface {
	Generate() string
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func() string

// Generate calls f.
func (f GeneratorFunc) Generate() string {
	return f()
}

// UUIDGenerator returns random version 4 UUIDs.
type UUIDGenerator struct{}

// Generate returns a new random UUID string.
func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// SequenceGenerator returns prefix-N identifiers from a monotonically
// increasing counter. Safe for concurrent use.
type SequenceGenerator struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence creates a SequenceGenerator. An empty prefix defaults to "temp-id".
func NewSequence(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = "temp-id"
	}
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next identifier in the sequence, starting at 1.
func (g *SequenceGenerator) Generate() string {
	return g.prefix + "-" + strconv.FormatUint(g.n.Add(1), 10)
}

// Default is the generator used when none is configured.
var Default Generator = UUIDGenerator{}
