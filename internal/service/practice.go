package service

import (
	"math/rand"
	"sync"
	"time"

	"dailyvocab/internal/practice"

	"go.uber.org/zap"
)

// PracticeService builds practice sessions from a user's cached words
type PracticeService struct {
	words  *WordService
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPracticeService creates a new practice service
func NewPracticeService(words *WordService, logger *zap.Logger) *PracticeService {
	return &PracticeService{
		words:  words,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSession draws up to practice.MaxWords words from everything the user has cached
func (s *PracticeService) NewSession(userID int64) *practice.Session {
	pool := s.words.AllCachedWords(userID)
	if len(pool) == 0 {
		pool = s.words.GetTodayWords(userID)
	}

	s.mu.Lock()
	seed := s.rng.Int63()
	s.mu.Unlock()

	session := practice.NewSession(pool, rand.New(rand.NewSource(seed)))

	s.logger.Debug("Practice session created",
		zap.Int64("user_id", userID),
		zap.Int("pool", len(pool)),
		zap.Int("words", session.Total()),
	)

	return session
}
