package engine

import "github.com/verte-zerg/keyquest/internal/generator"

// WordSource yields target words in order. ok is false once the sequence
// is exhausted.
type WordSource interface {
	NextWord() (word string, ok bool)
	// Total returns the sequence length, or -1 when it never ends.
	Total() int
}

// SequentialWords walks a fixed list of words once.
type SequentialWords struct {
	words []string
	next  int
}

// NewSequentialWords returns a source over words in order.
func NewSequentialWords(words []string) *SequentialWords {
	return &SequentialWords{words: append([]string(nil), words...)}
}

// NextWord implements WordSource.
func (s *SequentialWords) NextWord() (string, bool) {
	if s.next >= len(s.words) {
		return "", false
	}
	w := s.words[s.next]
	s.next++
	return w, true
}

// Total implements WordSource.
func (s *SequentialWords) Total() int {
	return len(s.words)
}

// RandomWords draws from a fixed pool with repetition and never ends.
// Words in first are served before any draw.
type RandomWords struct {
	gen   *generator.Generator
	pool  []string
	first []string
}

// NewRandomWords returns an endless source over pool.
func NewRandomWords(gen *generator.Generator, pool []string, first ...string) *RandomWords {
	return &RandomWords{gen: gen, pool: pool, first: first}
}

// NextWord implements WordSource.
func (r *RandomWords) NextWord() (string, bool) {
	if len(r.first) > 0 {
		w := r.first[0]
		r.first = r.first[1:]
		return w, true
	}
	if len(r.pool) == 0 {
		return "", false
	}
	return r.gen.Word(r.pool), true
}

// Total implements WordSource.
func (r *RandomWords) Total() int {
	return -1
}
