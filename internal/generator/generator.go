// Package generator provides the random choices made during a session.
package generator

import (
	"math/rand"
	"time"
)

// Source is the random stream a session draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Generator produces randomized words, glyphs and positions.
type Generator struct {
	rnd Source
}

// New returns a Generator seeded with seed, or with the current time when seed is 0.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// FromSource wraps an existing Source.
func FromSource(src Source) *Generator {
	return &Generator{rnd: src}
}

// Word draws one word uniformly from the pool.
func (g *Generator) Word(pool []string) string {
	return pool[g.rnd.Intn(len(pool))]
}

// Words draws count words uniformly with repetition.
func (g *Generator) Words(pool []string, count int) []string {
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, g.Word(pool))
	}
	return result
}

// Index draws an index in [0, n).
func (g *Generator) Index(n int) int {
	return g.rnd.Intn(n)
}

// Glyph draws one rune uniformly from the alphabet.
func (g *Generator) Glyph(alphabet []rune) rune {
	return alphabet[g.rnd.Intn(len(alphabet))]
}

// Between draws a float uniformly from [lo, hi).
func (g *Generator) Between(lo, hi float64) float64 {
	return lo + g.rnd.Float64()*(hi-lo)
}
