package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swingnotes/api/internal/models"
)

type fakeNotes struct {
	notes  map[int64]*models.Note
	nextID int64
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{notes: map[int64]*models.Note{}, nextID: 1}
}

func (f *fakeNotes) ListNotes(_ context.Context, userID int64) ([]models.Note, error) {
	var out []models.Note
	for _, n := range f.notes {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotes) SearchNotes(_ context.Context, userID int64, query string) ([]models.Note, error) {
	q := strings.ToLower(query)
	var out []models.Note
	for _, n := range f.notes {
		if n.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotes) GetNote(_ context.Context, id, userID int64) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, models.ErrNoteNotFound
	}
	copied := *n
	return &copied, nil
}

func (f *fakeNotes) CreateNote(_ context.Context, userID int64, title, content string) (*models.Note, error) {
	now := time.Now()
	n := &models.Note{ID: f.nextID, UserID: userID, Title: title, Content: content, CreatedAt: now, UpdatedAt: now}
	f.notes[n.ID] = n
	f.nextID++
	copied := *n
	return &copied, nil
}

func (f *fakeNotes) UpdateNote(_ context.Context, id, userID int64, title, content string) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, models.ErrNoteNotFound
	}
	n.Title, n.Content, n.UpdatedAt = title, content, time.Now()
	copied := *n
	return &copied, nil
}

func (f *fakeNotes) DeleteNote(_ context.Context, id, userID int64) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, models.ErrNoteNotFound
	}
	delete(f.notes, id)
	return n, nil
}

func newNotesService(t *testing.T) (*Service, *fakeNotes) {
	t.Helper()
	notes := newFakeNotes()
	return NewService(nil, notes, nil, nil, logrus.New()), notes
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	svc, _ := newNotesService(t)

	_, err := svc.Search(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, models.ErrEmptyQuery)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	svc, _ := newNotesService(t)

	_, err := svc.Create(context.Background(), 1, "Swing basics", "footwork")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, "Groceries", "milk")
	require.NoError(t, err)

	found, err := svc.Search(context.Background(), 1, "SWING")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Swing basics", found[0].Title)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newNotesService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "", "content")
	assert.ErrorIs(t, err, models.ErrEmptyTitle)

	_, err = svc.Create(ctx, 1, "title", " ")
	assert.ErrorIs(t, err, models.ErrEmptyContent)

	_, err = svc.Create(ctx, 1, strings.Repeat("x", maxTitleLen+1), "content")
	assert.ErrorIs(t, err, models.ErrTitleTooLong)

	_, err = svc.Create(ctx, 1, "title", strings.Repeat("x", maxContentLen+1))
	assert.ErrorIs(t, err, models.ErrContentTooLong)
}

func TestUpdate_RefreshesTimestampOnly(t *testing.T) {
	svc, notes := newNotesService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "t1", "c1")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, 1, "t2", "c2")
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	assert.Equal(t, "t2", notes.notes[created.ID].Title)
}

func TestDelete_ThenGetNotFound(t *testing.T) {
	svc, _ := newNotesService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "t1", "c1")
	require.NoError(t, err)

	snapshot, err := svc.Delete(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "t1", snapshot.Title)

	_, err = svc.Get(ctx, created.ID, 1)
	assert.ErrorIs(t, err, models.ErrNoteNotFound)
}

func TestGet_OtherOwnerNotFound(t *testing.T) {
	svc, _ := newNotesService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "t1", "c1")
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID, 2)
	assert.ErrorIs(t, err, models.ErrNoteNotFound)
}
