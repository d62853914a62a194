package service

import (
	"fmt"
	"testing"

	"dailyvocab/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestUserService_EnsureUserExists(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{name: "registered", mockError: nil, expectedError: false},
		{name: "database error", mockError: fmt.Errorf("database error"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			mockRepo.On("EnsureUserExists", int64(123), "alice").Return(tt.mockError)

			s := NewUserService(mockRepo)
			err := s.EnsureUserExists(123, "alice")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
