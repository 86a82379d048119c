package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskr/internal/auth"
	"taskr/internal/errors"
	"taskr/internal/model"
	"taskr/internal/repository"
)

// AuthService handles registration and the session lifecycle.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, name, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Register creates a new user with a hashed password. Uniqueness of both
// name and email is checked before the insert so a duplicate never writes
// a partial row.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	exists, err := s.userRepo.ExistsByNameOrEmail(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if exists {
		return nil, errors.ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and opens a session. An unknown name and a
// wrong password both return ErrInvalidCredentials, indistinguishable to
// the caller.
func (s *authService) Login(ctx context.Context, name, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByName(ctx, name)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, errors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, errors.ErrInvalidCredentials
	}

	sessionID, token, err := s.jwtService.GenerateSessionToken(user.ID, user.Name)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	session := &auth.Session{
		SessionID: sessionID,
		UserID:    user.ID,
		Name:      user.Name,
		Role:      user.Role,
	}
	if err := s.sessionStore.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	return token, user, nil
}

// Logout ends the session bound to the token. It is idempotent: an invalid
// token or an already-ended session is a no-op, never an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	sessionID, err := s.jwtService.ExtractSessionID(token)
	if err != nil {
		return nil
	}
	return s.sessionStore.Delete(ctx, sessionID)
}
