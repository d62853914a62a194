package service

import (
	"context"

	"go.uber.org/zap"
)

// WarmupService pre-generates today's words so users do not wait on the API
type WarmupService struct {
	users  *UserService
	words  *WordService
	logger *zap.Logger
}

// NewWarmupService creates a new warm-up service
func NewWarmupService(users *UserService, words *WordService, logger *zap.Logger) *WarmupService {
	return &WarmupService{
		users:  users,
		words:  words,
		logger: logger,
	}
}

// WarmUp generates today's words for every user that has none yet
func (s *WarmupService) WarmUp(ctx context.Context) error {
	userIDs, err := s.users.ListUserIDs()
	if err != nil {
		s.logger.Error("Failed to list users for warm-up", zap.Error(err))
		return err
	}

	today := s.words.Today()
	s.logger.Info("Starting word warm-up", zap.Int("users", len(userIDs)), zap.String("date", today))

	generated := 0
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.words.HasRecord(userID, today) {
			continue
		}
		s.words.GenerateNewWords(ctx, userID)
		generated++
	}

	s.logger.Info("Word warm-up completed", zap.Int("generated", generated))
	return nil
}
