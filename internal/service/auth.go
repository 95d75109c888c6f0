package service

import (
	"context"
	"errors"
	"time"

	"github.com/taskdeck/taskdeck-go/internal/crypto"
	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username or email already taken")
)

// hashTimeout bounds a single Argon2id computation so a stuck or
// hostile hashing call cannot pin a request goroutine forever.
const hashTimeout = 5 * time.Second

// AuthService handles registration and login.
type AuthService struct {
	repo      *repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: secret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new active user account with a hashed password.
// The plaintext password is never persisted.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) error {
	hash, err := hashPassword(ctx, req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		HashedPassword: hash,
		Role:           req.Role,
		IsActive:       true,
		PhoneNumber:    req.PhoneNumber,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return ErrUsernameTaken
		}
		return err
	}

	return nil
}

// Login verifies the credentials and mints an access token. Unknown
// usernames, wrong passwords and unreadable stored hashes are all
// collapsed into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	match, err := crypto.VerifyPassword(password, user.HashedPassword)
	if err != nil || !match {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.IssueToken(user.Username, user.ID, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// hashPassword runs the KDF off the calling goroutine and honors both
// the request context and the hashing deadline.
func hashPassword(ctx context.Context, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, hashTimeout)
	defer cancel()

	type result struct {
		hash string
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		hash, err := crypto.HashPassword(password)
		ch <- result{hash: hash, err: err}
	}()

	select {
	case res := <-ch:
		return res.hash, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
