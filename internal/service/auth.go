package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/passforge/passforge/internal/crypto"
	"github.com/passforge/passforge/internal/model"
	"github.com/passforge/passforge/internal/policy"
	"github.com/passforge/passforge/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailTaken         = errors.New("email already taken")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// accountRequirements is the policy account passwords must satisfy.
func accountRequirements() policy.Requirements {
	return policy.Requirements{
		MinLength:   8,
		MinStrength: 3,
	}
}

// WeakPasswordError lists why an account password was rejected.
type WeakPasswordError struct {
	Violations []policy.Violation
}

func (e *WeakPasswordError) Error() string {
	return "password does not meet requirements"
}

// AuthService handles authentication business logic.
type AuthService struct {
	repo   *repository.UserRepository
	tokens *crypto.TokenManager
	engine *policy.Engine
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, tokens *crypto.TokenManager, engine *policy.Engine) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		engine: engine,
	}
}

// Register creates a new user account and returns an auth token.
func (s *AuthService) Register(ctx context.Context, req model.CredentialsRequest) (model.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return model.AuthResponse{}, ErrInvalidEmail
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}
	if err := policy.CheckLength(req.Password); err != nil {
		return model.AuthResponse{}, err
	}

	// The address itself is a weak password for this account.
	result := s.engine.ForUser(email).Validate(req.Password, accountRequirements())
	if !result.IsValid {
		return model.AuthResponse{}, &WeakPasswordError{Violations: result.Violations}
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Email:    email,
		AuthHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	return s.authResponse(user)
}

// Login authenticates a user and returns an auth token.
func (s *AuthService) Login(ctx context.Context, req model.CredentialsRequest) (model.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.AuthHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	if crypto.NeedsRehash(user.AuthHash, crypto.DefaultHashParams()) {
		s.rehash(ctx, user.ID, req.Password)
	}

	return s.authResponse(user)
}

// GetUser retrieves a user by ID and returns safe user data.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

func (s *AuthService) rehash(ctx context.Context, userID int64, password string) {
	hash, err := crypto.HashPassword(password)
	if err == nil {
		err = s.repo.UpdateAuthHash(ctx, userID, hash)
	}
	if err != nil {
		slog.Warn("rehashing account password failed", "user_id", userID, "error", err)
	}
}

func (s *AuthService) authResponse(user *model.User) (model.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(user *model.User) model.UserResponse {
	return model.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
