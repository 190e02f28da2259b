package repository

import (
	"context"

	"github.com/swingnotes/api/internal/models"
)

type (
	// Users persists account records
	Users interface {
		CreateUser(ctx context.Context, user *models.User) error
		FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	}

	// Notes persists note records scoped by owner
	Notes interface {
		ListNotes(ctx context.Context, userID int64) ([]models.Note, error)
		SearchNotes(ctx context.Context, userID int64, query string) ([]models.Note, error)
		GetNote(ctx context.Context, id, userID int64) (*models.Note, error)
		CreateNote(ctx context.Context, userID int64, title, content string) (*models.Note, error)
		UpdateNote(ctx context.Context, id, userID int64, title, content string) (*models.Note, error)
		DeleteNote(ctx context.Context, id, userID int64) (*models.Note, error)
	}
)
