package service

import (
	"fmt"
	"strconv"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/repository"

	"go.uber.org/zap"
)

// GameService persists arcade high scores
type GameService struct {
	prefRepo repository.PreferenceRepository
	logger   *zap.Logger
	locks    userLocks
}

// NewGameService creates a new game service
func NewGameService(prefRepo repository.PreferenceRepository, logger *zap.Logger) *GameService {
	return &GameService{
		prefRepo: prefRepo,
		logger:   logger,
	}
}

// HighScore returns the best score for the game, 0 when unknown
func (s *GameService) HighScore(userID int64, kind domain.GameKind) int {
	raw, found, err := s.prefRepo.Get(userID, kind.HighScoreKey())
	if err != nil {
		s.logger.Warn("Failed to read high score",
			zap.Int64("user_id", userID),
			zap.String("game", string(kind)),
			zap.Error(err),
		)
		return 0
	}
	if !found {
		return 0
	}

	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 {
		return 0
	}
	return score
}

// RecordScore stores score if it beats the current best and reports whether it did
func (s *GameService) RecordScore(userID int64, kind domain.GameKind, score int) (bool, error) {
	defer s.locks.lock(userID)()

	if score <= s.HighScore(userID, kind) {
		return false, nil
	}

	if err := s.prefRepo.Set(userID, kind.HighScoreKey(), strconv.Itoa(score)); err != nil {
		return false, fmt.Errorf("save high score: %w", err)
	}

	s.logger.Info("New high score",
		zap.Int64("user_id", userID),
		zap.String("game", string(kind)),
		zap.Int("score", score),
	)
	return true, nil
}
