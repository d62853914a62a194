package service

import (
	"dailyvocab/internal/repository"
)

// UserService handles user registration
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// EnsureUserExists creates user if not exists
func (s *UserService) EnsureUserExists(userID int64, username string) error {
	return s.userRepo.EnsureUserExists(userID, username)
}

// ListUserIDs returns every known user
func (s *UserService) ListUserIDs() ([]int64, error) {
	return s.userRepo.ListUserIDs()
}
