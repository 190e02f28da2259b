package service

import (
	"context"

	"github.com/swingnotes/api/internal/models"
)

type (
	// Auth covers registration and login
	Auth interface {
		Register(ctx context.Context, username, email, password string) (*models.User, error)
		Login(ctx context.Context, email, password string) (string, *models.User, error)
	}

	// Notes covers owner-scoped note operations
	Notes interface {
		List(ctx context.Context, userID int64) ([]models.Note, error)
		Search(ctx context.Context, userID int64, query string) ([]models.Note, error)
		Get(ctx context.Context, id, userID int64) (*models.Note, error)
		Create(ctx context.Context, userID int64, title, content string) (*models.Note, error)
		Update(ctx context.Context, id, userID int64, title, content string) (*models.Note, error)
		Delete(ctx context.Context, id, userID int64) (*models.Note, error)
	}

	// Mailer delivers account emails. May be absent when SMTP is not
	// configured.
	Mailer interface {
		SendWelcome(to, username string) error
	}
)
