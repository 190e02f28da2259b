package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/swingnotes/api/internal/models"
)

const noteColumns = "id, user_id, title, content, created_at, updated_at"

// ListNotes returns all notes belonging to the user, newest first
func (r *Repository) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	queryBuilder := squirrel.
		Select("id",
			"user_id",
			"title",
			"content",
			"created_at",
			"updated_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryNotes(ctx, queryBuilder)
}

// SearchNotes returns the user's notes whose title or content contains
// the query, case-insensitively, newest first
func (r *Repository) SearchNotes(ctx context.Context, userID int64, query string) ([]models.Note, error) {
	pattern := "%" + query + "%"
	queryBuilder := squirrel.
		Select("id",
			"user_id",
			"title",
			"content",
			"created_at",
			"updated_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
		}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryNotes(ctx, queryBuilder)
}

func (r *Repository) queryNotes(ctx context.Context, queryBuilder squirrel.SelectBuilder) ([]models.Note, error) {
	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		if err = rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// GetNote retrieves a single note by id, scoped to its owner
func (r *Repository) GetNote(ctx context.Context, id, userID int64) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_id = $2`
	return r.scanNote(r.db.QueryRowContext(ctx, query, id, userID), "get")
}

// CreateNote inserts a note and returns the persisted row
func (r *Repository) CreateNote(ctx context.Context, userID int64, title, content string) (*models.Note, error) {
	query := `
		INSERT INTO notes (user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + noteColumns
	return r.scanNote(r.db.QueryRowContext(ctx, query, userID, title, content), "create")
}

// UpdateNote replaces title and content and refreshes updated_at,
// scoped to the owner
func (r *Repository) UpdateNote(ctx context.Context, id, userID int64, title, content string) (*models.Note, error) {
	query := `
		UPDATE notes
		SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING ` + noteColumns
	return r.scanNote(r.db.QueryRowContext(ctx, query, title, content, id, userID), "update")
}

// DeleteNote removes a note and returns the pre-deletion snapshot,
// scoped to the owner. Deletion is permanent, there is no soft delete.
func (r *Repository) DeleteNote(ctx context.Context, id, userID int64) (*models.Note, error) {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2 RETURNING ` + noteColumns
	return r.scanNote(r.db.QueryRowContext(ctx, query, id, userID), "delete")
}

func (r *Repository) scanNote(row *sql.Row, op string) (*models.Note, error) {
	note := &models.Note{}
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s note: %w", op, err)
	}
	return note, nil
}
