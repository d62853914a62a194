package testutil

import (
	"context"

	"dailyvocab/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUserExists(userID int64, username string) error {
	args := m.Called(userID, username)
	return args.Error(0)
}

func (m *MockUserRepository) ListUserIDs() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockPreferenceRepository is a mock for PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) Get(userID int64, key string) (string, bool, error) {
	args := m.Called(userID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockPreferenceRepository) Set(userID int64, key, value string) error {
	args := m.Called(userID, key, value)
	return args.Error(0)
}

func (m *MockPreferenceRepository) Delete(userID int64, key string) error {
	args := m.Called(userID, key)
	return args.Error(0)
}

func (m *MockPreferenceRepository) ListByPrefix(userID int64, prefix string) (map[string]string, error) {
	args := m.Called(userID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockPreferenceRepository) DeleteByPrefix(userID int64, prefix string) error {
	args := m.Called(userID, prefix)
	return args.Error(0)
}

// MockWordGenerator is a mock for the remote word generator
type MockWordGenerator struct {
	mock.Mock
}

func (m *MockWordGenerator) GenerateDailyWords(ctx context.Context, level domain.DifficultyLevel) []domain.Word {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Word)
}

func (m *MockWordGenerator) WordDetails(ctx context.Context, text string) (*domain.Word, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

// MockSpeaker is a mock for the speech synthesizer
type MockSpeaker struct {
	mock.Mock
}

func (m *MockSpeaker) Speak(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}
