package service

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck-go/internal/crypto"
	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/repository"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("current password is incorrect")
)

// UserService handles profile operations for the current principal.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Profile returns the profile of the given user.
func (s *UserService) Profile(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsActive:    user.IsActive,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
	}, nil
}

// ChangePassword verifies the current password and stores a hash of
// the new one. A wrong current password is reported as ErrWrongPassword,
// not as an auth failure: the caller already holds a valid token.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordRequest) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrWrongPassword
		}
		return err
	}

	match, err := crypto.VerifyPassword(req.Password, user.HashedPassword)
	if err != nil || !match {
		return ErrWrongPassword
	}

	hash, err := hashPassword(ctx, req.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, hash)
}

// UpdatePhoneNumber stores a new phone number for the user.
func (s *UserService) UpdatePhoneNumber(ctx context.Context, userID int64, phoneNumber string) error {
	err := s.repo.UpdatePhoneNumber(ctx, userID, phoneNumber)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}
