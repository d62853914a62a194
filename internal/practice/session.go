package practice

import (
	"math/rand"
	"strings"

	"dailyvocab/internal/domain"
)

// MaxWords is the number of words drawn for one session
const MaxWords = 10

// Result is the outcome of one submitted answer
type Result struct {
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
}

// Session is a single run through randomly drawn practice words.
// It is not safe for concurrent use.
type Session struct {
	pool  []domain.Word
	words []domain.PracticeWord
	index int
	score int
	rng   *rand.Rand
}

// NewSession draws up to MaxWords words from pool and masks them
func NewSession(pool []domain.Word, rng *rand.Rand) *Session {
	usable := make([]domain.Word, 0, len(pool))
	for _, w := range pool {
		if strings.TrimSpace(w.Text) != "" {
			usable = append(usable, w)
		}
	}

	s := &Session{pool: usable, rng: rng}
	s.draw()
	return s
}

func (s *Session) draw() {
	picked := make([]domain.Word, len(s.pool))
	copy(picked, s.pool)
	s.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if len(picked) > MaxWords {
		picked = picked[:MaxWords]
	}

	s.words = make([]domain.PracticeWord, 0, len(picked))
	for _, w := range picked {
		s.words = append(s.words, Mask(w, s.rng))
	}
	s.index = 0
	s.score = 0
}

// Current returns the word being asked, false once the session is done
func (s *Session) Current() (domain.PracticeWord, bool) {
	if s.Done() {
		return domain.PracticeWord{}, false
	}
	return s.words[s.index], true
}

// Submit checks input against the current word and advances
func (s *Session) Submit(input string) (Result, bool) {
	current, ok := s.Current()
	if !ok {
		return Result{}, false
	}

	correct := CheckAnswer(input, current.Answer)
	if correct {
		s.score++
	}
	s.index++

	return Result{Correct: correct, Answer: current.Answer}, true
}

// Skip advances without scoring
func (s *Session) Skip() (Result, bool) {
	current, ok := s.Current()
	if !ok {
		return Result{}, false
	}
	s.index++
	return Result{Answer: current.Answer}, true
}

// Restart draws a fresh set of words from the same pool
func (s *Session) Restart() {
	s.draw()
}

func (s *Session) Score() int { return s.score }
func (s *Session) Total() int { return len(s.words) }
func (s *Session) Index() int { return s.index }
func (s *Session) Done() bool { return s.index >= len(s.words) }
