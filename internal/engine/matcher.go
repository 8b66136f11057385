package engine

import (
	"sort"
	"unicode"

	"github.com/verte-zerg/keyquest/internal/model"
)

// MismatchPolicy decides what a wrong keystroke does to the partial word.
type MismatchPolicy int

const (
	// HoldCursor keeps the cursor in place and marks the letter as missed,
	// so the same letter can be retried.
	HoldCursor MismatchPolicy = iota
	// ResetBuffer clears the partial word and restarts it from the first letter.
	ResetBuffer
)

// Outcome describes what a single keystroke did.
type Outcome struct {
	// Ignored is set for non-letters and for input after the sequence ended.
	Ignored      bool
	Correct      bool
	Expected     rune
	WordDone     bool
	Word         string
	SequenceDone bool
}

type letterTally struct {
	correct   int
	incorrect int
}

// Matcher consumes keystrokes against the current target word.
type Matcher struct {
	source WordSource
	policy MismatchPolicy

	word      []rune
	wordText  string
	cursor    int
	wordIndex int
	missed    map[int]bool
	done      bool

	correct          int
	attempts         int
	wordsCompleted   int
	completedLetters int
	letters          map[rune]*letterTally
}

// NewMatcher pulls the first word from source.
func NewMatcher(source WordSource, policy MismatchPolicy) *Matcher {
	m := &Matcher{
		source:  source,
		policy:  policy,
		missed:  map[int]bool{},
		letters: map[rune]*letterTally{},
	}
	m.loadNext()
	return m
}

// Accepts reports whether r counts as a letter keystroke for the current
// word. Letters outside a-z only count when the word itself contains them.
func (m *Matcher) Accepts(r rune) bool {
	if m.done || !unicode.IsLetter(r) {
		return false
	}
	lower := unicode.ToLower(r)
	if lower >= 'a' && lower <= 'z' {
		return true
	}
	for _, w := range m.word {
		if unicode.ToLower(w) == lower {
			return true
		}
	}
	return false
}

// Consume applies one keystroke.
func (m *Matcher) Consume(r rune) Outcome {
	if !m.Accepts(r) {
		return Outcome{Ignored: true}
	}
	expected := m.word[m.cursor]
	out := Outcome{Expected: expected}
	m.attempts++
	tally := m.letterEntry(expected)
	if unicode.ToLower(r) != unicode.ToLower(expected) {
		tally.incorrect++
		switch m.policy {
		case ResetBuffer:
			m.cursor = 0
			m.missed = map[int]bool{}
		default:
			m.missed[m.cursor] = true
		}
		return out
	}

	tally.correct++
	m.correct++
	m.cursor++
	out.Correct = true
	if m.cursor < len(m.word) {
		return out
	}

	out.WordDone = true
	out.Word = m.wordText
	m.wordsCompleted++
	m.completedLetters += len(m.word)
	m.wordIndex++
	m.loadNext()
	out.SequenceDone = m.done
	return out
}

func (m *Matcher) loadNext() {
	m.cursor = 0
	m.missed = map[int]bool{}
	for {
		w, ok := m.source.NextWord()
		if !ok {
			m.done = true
			m.word = nil
			m.wordText = ""
			return
		}
		if w == "" {
			m.wordIndex++
			continue
		}
		m.wordText = w
		m.word = []rune(w)
		return
	}
}

func (m *Matcher) letterEntry(r rune) *letterTally {
	key := unicode.ToLower(r)
	entry, ok := m.letters[key]
	if !ok {
		entry = &letterTally{}
		m.letters[key] = entry
	}
	return entry
}

// CurrentWord returns the word being typed, or "" when the sequence is done.
func (m *Matcher) CurrentWord() string {
	return m.wordText
}

// Cursor returns the index of the next expected letter in CurrentWord.
func (m *Matcher) Cursor() int {
	return m.cursor
}

// Expected returns the next letter to type and false when nothing is expected.
func (m *Matcher) Expected() (rune, bool) {
	if m.done {
		return 0, false
	}
	return m.word[m.cursor], true
}

// Missed reports whether the letter at index i of the current word was mistyped.
func (m *Matcher) Missed(i int) bool {
	return m.missed[i]
}

// WordIndex returns how many words of the sequence have been completed.
func (m *Matcher) WordIndex() int {
	return m.wordIndex
}

// Done reports whether the sequence is exhausted.
func (m *Matcher) Done() bool {
	return m.done
}

// Correct returns the number of correct keystrokes.
func (m *Matcher) Correct() int {
	return m.correct
}

// Attempts returns the number of counted keystrokes.
func (m *Matcher) Attempts() int {
	return m.attempts
}

// Mistakes returns the number of wrong keystrokes.
func (m *Matcher) Mistakes() int {
	return m.attempts - m.correct
}

// WordsCompleted returns the number of finished words.
func (m *Matcher) WordsCompleted() int {
	return m.wordsCompleted
}

// CompletedLetters returns the letter count of all finished words.
func (m *Matcher) CompletedLetters() int {
	return m.completedLetters
}

// Total returns the sequence length, or -1 for endless sources.
func (m *Matcher) Total() int {
	return m.source.Total()
}

// LetterStats returns per-letter counts sorted by letter.
func (m *Matcher) LetterStats() []model.LetterStats {
	out := make([]model.LetterStats, 0, len(m.letters))
	for r, t := range m.letters {
		out = append(out, model.LetterStats{
			Letter:    string(r),
			Correct:   t.correct,
			Incorrect: t.incorrect,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Letter < out[j].Letter })
	return out
}
