package service

import (
	"context"
	"fmt"
	"testing"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWarmupService_WarmUp(t *testing.T) {
	repo := testutil.NewMemoryPreferenceRepository()
	require.NoError(t, repo.Set(1, domain.WordsKey(testToday), testutil.EncodeWords(testutil.NewTestWords("ready"))))

	userRepo := new(testutil.MockUserRepository)
	userRepo.On("ListUserIDs").Return([]int64{1, 2}, nil)

	gen := new(testutil.MockWordGenerator)
	gen.On("GenerateDailyWords", mock.Anything, domain.HighSchool).Return(testutil.NewTestWords("fresh")).Once()

	words := newWordService(repo, gen)
	s := NewWarmupService(NewUserService(userRepo), words, testutil.NewTestLogger())

	require.NoError(t, s.WarmUp(context.Background()))

	assert.True(t, words.HasRecord(2, testToday))
	userRepo.AssertExpectations(t)
	gen.AssertExpectations(t)
}

func TestWarmupService_WarmUp_ListError(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	userRepo.On("ListUserIDs").Return(nil, fmt.Errorf("db down"))

	words := newWordService(testutil.NewMemoryPreferenceRepository(), new(testutil.MockWordGenerator))
	s := NewWarmupService(NewUserService(userRepo), words, testutil.NewTestLogger())

	assert.Error(t, s.WarmUp(context.Background()))
}

func TestWarmupService_WarmUp_Cancelled(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	userRepo.On("ListUserIDs").Return([]int64{1}, nil)

	gen := new(testutil.MockWordGenerator)
	words := newWordService(testutil.NewMemoryPreferenceRepository(), gen)
	s := NewWarmupService(NewUserService(userRepo), words, testutil.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.WarmUp(ctx), context.Canceled)
	gen.AssertNotCalled(t, "GenerateDailyWords", mock.Anything, mock.Anything)
}
