package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/generator"
	"dailyvocab/internal/repository"

	"go.uber.org/zap"
)

// RecordsPageSize is the number of days shown per word bank page
const RecordsPageSize = 7

// WordGenerator produces new vocabulary
type WordGenerator interface {
	GenerateDailyWords(ctx context.Context, level domain.DifficultyLevel) []domain.Word
	WordDetails(ctx context.Context, text string) (*domain.Word, error)
}

// WordService handles the per-user daily word cache
type WordService struct {
	prefRepo  repository.PreferenceRepository
	settings  *SettingsService
	generator WordGenerator
	location  *time.Location
	logger    *zap.Logger
	now       func() time.Time
	locks     userLocks
}

// NewWordService creates a new word service
func NewWordService(
	prefRepo repository.PreferenceRepository,
	settings *SettingsService,
	gen WordGenerator,
	location *time.Location,
	logger *zap.Logger,
) *WordService {
	if location == nil {
		location = time.Local
	}
	return &WordService{
		prefRepo:  prefRepo,
		settings:  settings,
		generator: gen,
		location:  location,
		logger:    logger,
		now:       time.Now,
	}
}

// Today returns the current calendar date in the configured timezone
func (s *WordService) Today() string {
	return s.now().In(s.location).Format(domain.DateLayout)
}

// Now returns the current time in the configured timezone
func (s *WordService) Now() time.Time {
	return s.now().In(s.location)
}

// readWords loads a day's list; a corrupt blob is reported as absent
func (s *WordService) readWords(userID int64, date string) ([]domain.Word, bool, error) {
	raw, found, err := s.prefRepo.Get(userID, domain.WordsKey(date))
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	var words []domain.Word
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		s.logger.Warn("Ignoring corrupt word cache",
			zap.Int64("user_id", userID),
			zap.String("date", date),
			zap.Error(err),
		)
		return nil, false, nil
	}

	for i := range words {
		words[i] = words[i].WithDefaults()
	}

	return words, true, nil
}

func (s *WordService) writeWords(userID int64, date string, words []domain.Word) error {
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}
	return s.prefRepo.Set(userID, domain.WordsKey(date), string(data))
}

// GetTodayWords returns today's cached words, else the last generated day's words,
// else the default list which is then saved as today's
func (s *WordService) GetTodayWords(userID int64) []domain.Word {
	defer s.locks.lock(userID)()

	today := s.Today()

	words, found, err := s.readWords(userID, today)
	if err != nil {
		s.logger.Warn("Failed to read today's words, serving defaults",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return generator.DefaultWords()
	}
	if found && len(words) > 0 {
		return words
	}

	lastDate, found, err := s.prefRepo.Get(userID, domain.KeyLastWordsDate)
	if err != nil {
		s.logger.Warn("Failed to read last words date",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	} else if found && lastDate != today {
		words, found, err := s.readWords(userID, lastDate)
		if err != nil {
			s.logger.Warn("Failed to read last generated words",
				zap.Int64("user_id", userID),
				zap.String("date", lastDate),
				zap.Error(err),
			)
		} else if found && len(words) > 0 {
			return words
		}
	}

	defaults := generator.DefaultWords()
	if err := s.writeWords(userID, today, defaults); err != nil {
		s.logger.Error("Failed to save default words",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return defaults
}

// GenerateNewWords fetches new words and merges them into today's list.
// The merged list never contains case-insensitive duplicates.
func (s *WordService) GenerateNewWords(ctx context.Context, userID int64) []domain.Word {
	level := s.settings.Difficulty(userID)
	fresh := s.generator.GenerateDailyWords(ctx, level)

	defer s.locks.lock(userID)()

	today := s.Today()

	existing, _, err := s.readWords(userID, today)
	if err != nil {
		// keep whatever is stored rather than overwrite it with a partial list
		s.logger.Warn("Failed to read today's words, not saving generated words",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return domain.MergeWords(nil, fresh)
	}

	merged := domain.MergeWords(existing, fresh)

	if err := s.writeWords(userID, today, merged); err != nil {
		s.logger.Error("Failed to save generated words",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return merged
	}

	if err := s.prefRepo.Set(userID, domain.KeyLastWordsDate, today); err != nil {
		s.logger.Error("Failed to save last words date",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	s.logger.Info("Generated words",
		zap.Int64("user_id", userID),
		zap.String("level", string(level)),
		zap.Int("new", len(merged)-len(existing)),
		zap.Int("total", len(merged)),
	)

	return merged
}

// GetWordsByDate returns the words cached for a date in yyyy-MM-dd format
func (s *WordService) GetWordsByDate(userID int64, date string) ([]domain.Word, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	words, _, err := s.readWords(userID, date)
	if err != nil {
		s.logger.Warn("Failed to read words by date",
			zap.Int64("user_id", userID),
			zap.String("date", date),
			zap.Error(err),
		)
		return []domain.Word{}, nil
	}

	if words == nil {
		words = []domain.Word{}
	}

	return words, nil
}

// HasRecord reports whether any words are cached for the date
func (s *WordService) HasRecord(userID int64, date string) bool {
	words, _, err := s.readWords(userID, date)
	return err == nil && len(words) > 0
}

// GetRecords returns all cached days, newest first
func (s *WordService) GetRecords(userID int64) []domain.WordRecord {
	raw, err := s.prefRepo.ListByPrefix(userID, domain.KeyWordsPrefix)
	if err != nil {
		s.logger.Warn("Failed to list word records",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return []domain.WordRecord{}
	}

	records := make([]domain.WordRecord, 0, len(raw))
	for key, value := range raw {
		date := strings.TrimPrefix(key, domain.KeyWordsPrefix)
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			continue
		}

		var words []domain.Word
		if err := json.Unmarshal([]byte(value), &words); err != nil {
			s.logger.Warn("Skipping corrupt word record",
				zap.Int64("user_id", userID),
				zap.String("date", date),
				zap.Error(err),
			)
			continue
		}
		if len(words) == 0 {
			continue
		}

		for i := range words {
			words[i] = words[i].WithDefaults()
		}
		records = append(records, domain.WordRecord{Date: date, Words: words})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})

	return records
}

// GetRecordsPage returns one page of records and the total page count
func (s *WordService) GetRecordsPage(userID int64, page int) ([]domain.WordRecord, int) {
	if page < 1 {
		page = 1
	}

	records := s.GetRecords(userID)

	totalPages := (len(records) + RecordsPageSize - 1) / RecordsPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * RecordsPageSize
	if start >= len(records) {
		return []domain.WordRecord{}, totalPages
	}

	end := start + RecordsPageSize
	if end > len(records) {
		end = len(records)
	}

	return records[start:end], totalPages
}

// AllCachedWords returns every cached word across days without duplicates, newest day first
func (s *WordService) AllCachedWords(userID int64) []domain.Word {
	var all []domain.Word
	for _, record := range s.GetRecords(userID) {
		all = domain.MergeWords(all, record.Words)
	}
	if all == nil {
		return []domain.Word{}
	}
	return all
}

// ClearCache removes every cached day and the last-date pointer
func (s *WordService) ClearCache(userID int64) error {
	defer s.locks.lock(userID)()

	if err := s.prefRepo.DeleteByPrefix(userID, domain.KeyWordsPrefix); err != nil {
		return fmt.Errorf("clear word cache: %w", err)
	}
	if err := s.prefRepo.Delete(userID, domain.KeyLastWordsDate); err != nil {
		return fmt.Errorf("clear last words date: %w", err)
	}

	s.logger.Info("Word cache cleared", zap.Int64("user_id", userID))
	return nil
}

// placeholder for failed lookups
const detailsUnavailable = "获取失败"

// WordDetails looks up a word, preferring the user's cache over the remote API.
// It never fails: an unavailable lookup yields a placeholder entry.
func (s *WordService) WordDetails(ctx context.Context, userID int64, text string) domain.Word {
	text = strings.TrimSpace(text)

	if cached, ok := domain.FindWord(s.AllCachedWords(userID), text); ok {
		return cached
	}

	word, err := s.generator.WordDetails(ctx, text)
	if err != nil {
		s.logger.Warn("Failed to fetch word details",
			zap.String("word", text),
			zap.Error(err),
		)
		return domain.Word{
			Text:               text,
			Translation:        detailsUnavailable,
			Example:            detailsUnavailable,
			ExampleTranslation: detailsUnavailable,
			OtherForms:         domain.NoOtherForms,
		}
	}

	return word.WithDefaults()
}
