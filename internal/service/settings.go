package service

import (
	"fmt"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/repository"

	"go.uber.org/zap"
)

// SettingsService handles user preferences
type SettingsService struct {
	prefRepo repository.PreferenceRepository
	logger   *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(prefRepo repository.PreferenceRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		prefRepo: prefRepo,
		logger:   logger,
	}
}

// Difficulty returns the stored level or the default when missing or unreadable
func (s *SettingsService) Difficulty(userID int64) domain.DifficultyLevel {
	raw, found, err := s.prefRepo.Get(userID, domain.KeyDifficulty)
	if err != nil {
		s.logger.Warn("Failed to read difficulty", zap.Int64("user_id", userID), zap.Error(err))
		return domain.DefaultDifficulty
	}
	if !found {
		return domain.DefaultDifficulty
	}

	level, err := domain.ParseDifficulty(raw)
	if err != nil {
		s.logger.Warn("Invalid stored difficulty", zap.Int64("user_id", userID), zap.String("value", raw))
		return domain.DefaultDifficulty
	}

	return level
}

// SetDifficulty stores the level used for future generation
func (s *SettingsService) SetDifficulty(userID int64, level domain.DifficultyLevel) error {
	if !level.Valid() {
		return fmt.Errorf("unknown difficulty level %q", level)
	}

	if err := s.prefRepo.Set(userID, domain.KeyDifficulty, string(level)); err != nil {
		return fmt.Errorf("save difficulty: %w", err)
	}

	s.logger.Info("Difficulty changed", zap.Int64("user_id", userID), zap.String("level", string(level)))
	return nil
}
