package service

import (
	"encoding/json"
	"fmt"

	"dailyvocab/internal/domain"

	"go.uber.org/zap"
)

// Favorites returns the user's saved words in the order they were added
func (s *WordService) Favorites(userID int64) []domain.Word {
	favorites, err := s.readFavorites(userID)
	if err != nil {
		s.logger.Warn("Failed to read favorites",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return []domain.Word{}
	}
	return favorites
}

func (s *WordService) readFavorites(userID int64) ([]domain.Word, error) {
	raw, found, err := s.prefRepo.Get(userID, domain.KeyFavorites)
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.Word{}, nil
	}

	var favorites []domain.Word
	if err := json.Unmarshal([]byte(raw), &favorites); err != nil {
		s.logger.Warn("Ignoring corrupt favorites", zap.Int64("user_id", userID), zap.Error(err))
		return []domain.Word{}, nil
	}
	return favorites, nil
}

func (s *WordService) writeFavorites(userID int64, favorites []domain.Word) error {
	data, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	return s.prefRepo.Set(userID, domain.KeyFavorites, string(data))
}

// IsFavorite reports whether text is among the user's favorites
func (s *WordService) IsFavorite(userID int64, text string) bool {
	_, ok := domain.FindWord(s.Favorites(userID), text)
	return ok
}

// AddFavorite saves a word; adding an existing favorite is a no-op
func (s *WordService) AddFavorite(userID int64, word domain.Word) error {
	defer s.locks.lock(userID)()

	favorites, err := s.readFavorites(userID)
	if err != nil {
		return fmt.Errorf("read favorites: %w", err)
	}

	merged := domain.MergeWords(favorites, []domain.Word{word})
	if len(merged) == len(favorites) {
		return nil
	}

	return s.writeFavorites(userID, merged)
}

// RemoveFavorite deletes a word from the favorites
func (s *WordService) RemoveFavorite(userID int64, text string) error {
	defer s.locks.lock(userID)()

	favorites, err := s.readFavorites(userID)
	if err != nil {
		return fmt.Errorf("read favorites: %w", err)
	}

	key := domain.Word{Text: text}.Key()
	kept := make([]domain.Word, 0, len(favorites))
	for _, w := range favorites {
		if w.Key() != key {
			kept = append(kept, w)
		}
	}

	if len(kept) == len(favorites) {
		return nil
	}

	return s.writeFavorites(userID, kept)
}
