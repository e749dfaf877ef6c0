package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"healio/internal/models"
	"healio/internal/oauth"
	"healio/internal/repository"
	"healio/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *utils.TokenIssuer
	google oauth.IDTokenVerifier
	log    *zap.Logger
}

// NewAuthService builds the service. google may be nil when Google sign-in is disabled.
func NewAuthService(users repository.UserRepository, tokens *utils.TokenIssuer, google oauth.IDTokenVerifier, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, google: google, log: log}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	email = NormalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, strings.TrimSpace(name))
	user.Password = hash
	if err := s.createUser(ctx, user); err != nil {
		return nil, "", err
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if user.Password == "" || !utils.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}
	return s.issue(user)
}

// LoginWithGoogle verifies the ID token and signs the user in, linking the Google
// account to an existing user with the same email or creating a new one.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*models.User, string, error) {
	if s.google == nil {
		return nil, "", ErrGoogleAuthDisabled
	}

	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		s.log.Warn("google token rejected", zap.Error(err))
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.FindByGoogleID(ctx, identity.Subject)
	if err == nil {
		return s.issue(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	email := NormalizeEmail(identity.Email)
	user, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		user.GoogleID = &identity.Subject
		if err := s.users.Update(ctx, user); err != nil {
			return nil, "", err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		name := identity.Name
		if name == "" {
			name = email
		}
		user = models.NewUser(email, name)
		user.GoogleID = &identity.Subject
		if err := s.createUser(ctx, user); err != nil {
			return nil, "", err
		}
		s.log.Info("user registered via google", zap.Uint("user_id", user.ID))
	default:
		return nil, "", err
	}

	return s.issue(user)
}

// createUser maps a unique-index violation, from a concurrent registration
// that passed the same lookup, onto ErrEmailTaken.
func (s *AuthService) createUser(ctx context.Context, user *models.User) error {
	err := s.users.Create(ctx, user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (s *AuthService) issue(user *models.User) (*models.User, string, error) {
	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("could not generate token: %w", err)
	}
	return user, token, nil
}
