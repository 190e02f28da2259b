package service

import (
	"context"
	"strings"

	"github.com/swingnotes/api/internal/models"
)

const (
	maxTitleLen   = 255
	maxContentLen = 10000
)

// List returns all notes owned by the user, newest first
func (s *Service) List(ctx context.Context, userID int64) ([]models.Note, error) {
	return s.notes.ListNotes(ctx, userID)
}

// Search returns the user's notes matching the query in title or
// content. An empty or whitespace-only query is rejected.
func (s *Service) Search(ctx context.Context, userID int64, query string) ([]models.Note, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.ErrEmptyQuery
	}
	return s.notes.SearchNotes(ctx, userID, query)
}

// Get retrieves a single note owned by the user
func (s *Service) Get(ctx context.Context, id, userID int64) (*models.Note, error) {
	return s.notes.GetNote(ctx, id, userID)
}

// Create validates and persists a new note for the user
func (s *Service) Create(ctx context.Context, userID int64, title, content string) (*models.Note, error) {
	if err := validateNote(title, content); err != nil {
		return nil, err
	}

	note, err := s.notes.CreateNote(ctx, userID, title, content)
	if err != nil {
		return nil, err
	}

	s.log.Infof("Note %d created for user %d", note.ID, userID)
	return note, nil
}

// Update validates and replaces the note's title and content
func (s *Service) Update(ctx context.Context, id, userID int64, title, content string) (*models.Note, error) {
	if err := validateNote(title, content); err != nil {
		return nil, err
	}
	return s.notes.UpdateNote(ctx, id, userID, title, content)
}

// Delete permanently removes the note and returns its last state
func (s *Service) Delete(ctx context.Context, id, userID int64) (*models.Note, error) {
	note, err := s.notes.DeleteNote(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	s.log.Infof("Note %d deleted for user %d", id, userID)
	return note, nil
}

func validateNote(title, content string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return models.ErrEmptyTitle
	case strings.TrimSpace(content) == "":
		return models.ErrEmptyContent
	case len(title) > maxTitleLen:
		return models.ErrTitleTooLong
	case len(content) > maxContentLen:
		return models.ErrContentTooLong
	}
	return nil
}
