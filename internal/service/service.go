package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/swingnotes/api/internal/models"
	"github.com/swingnotes/api/internal/repository"
	"github.com/swingnotes/api/internal/token"
)

// Service handles business logic
type Service struct {
	users  repository.Users
	notes  repository.Notes
	tokens *token.Manager
	mail   Mailer
	log    *logrus.Logger
}

// NewService initializes a new service. mail may be nil when SMTP is
// not configured.
func NewService(users repository.Users, notes repository.Notes, tokens *token.Manager, mail Mailer, log *logrus.Logger) *Service {
	return &Service{users: users, notes: notes, tokens: tokens, mail: mail, log: log}
}

// Register creates a new user with hashed password and returns the
// public identity fields
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if s.mail != nil {
		// Best effort, registration does not wait on SMTP.
		go func(to, name string) {
			if err := s.mail.SendWelcome(to, name); err != nil {
				s.log.Warnf("failed to send welcome email to %s: %v", to, err)
			}
		}(user.Email, user.Username)
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a signed token together with
// the user's public fields. Unknown email and wrong password both
// surface as models.ErrInvalidCredentials so callers cannot probe for
// registered addresses.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, user, nil
}
