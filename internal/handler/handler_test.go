package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/swingnotes/api/internal/middleware"
	"github.com/swingnotes/api/internal/models"
	"github.com/swingnotes/api/internal/token"
)

const testSecret = "test-secret"

type fakeAuth struct {
	users  map[string]*models.User
	nextID int64
	tokens *token.Manager
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{users: map[string]*models.User{}, nextID: 1, tokens: token.NewManager(testSecret)}
}

func (f *fakeAuth) Register(_ context.Context, username, email, password string) (*models.User, error) {
	if _, exists := f.users[email]; exists {
		return nil, errors.New("duplicate key value violates unique constraint")
	}
	user := &models.User{ID: f.nextID, Username: username, Email: email, PasswordHash: password}
	f.nextID++
	f.users[email] = user
	return user, nil
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (string, *models.User, error) {
	user, ok := f.users[email]
	if !ok || user.PasswordHash != password {
		return "", nil, models.ErrInvalidCredentials
	}
	tok, err := f.tokens.Issue(user)
	return tok, user, err
}

type fakeNotes struct {
	notes  map[int64]*models.Note
	nextID int64
	err    error
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{notes: map[int64]*models.Note{}, nextID: 1}
}

func (f *fakeNotes) List(_ context.Context, userID int64) ([]models.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Note
	for _, n := range f.notes {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotes) Search(_ context.Context, userID int64, query string) ([]models.Note, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.ErrEmptyQuery
	}
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

func (f *fakeNotes) Get(_ context.Context, id, userID int64) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, models.ErrNoteNotFound
	}
	return n, nil
}

func (f *fakeNotes) Create(_ context.Context, userID int64, title, content string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, models.ErrEmptyTitle
	}
	if strings.TrimSpace(content) == "" {
		return nil, models.ErrEmptyContent
	}
	now := time.Now()
	n := &models.Note{ID: f.nextID, UserID: userID, Title: title, Content: content, CreatedAt: now, UpdatedAt: now}
	f.nextID++
	f.notes[n.ID] = n
	return n, nil
}

func (f *fakeNotes) Update(_ context.Context, id, userID int64, title, content string) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, models.ErrNoteNotFound
	}
	n.Title, n.Content, n.UpdatedAt = title, content, time.Now()
	return n, nil
}

func (f *fakeNotes) Delete(_ context.Context, id, userID int64) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, models.ErrNoteNotFound
	}
	delete(f.notes, id)
	return n, nil
}

// newTestRouter mirrors the production route table from cmd/api
func newTestRouter(t *testing.T) (*mux.Router, *fakeAuth, *fakeNotes) {
	t.Helper()

	auth := newFakeAuth()
	notes := newFakeNotes()
	log := logrus.New()
	h := NewHandler(auth, notes, log)

	r := mux.NewRouter()
	r.HandleFunc("/users/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/users/login", h.Login).Methods(http.MethodPost)

	authRouter := r.PathPrefix("/notes").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(token.NewManager(testSecret)))
	authRouter.HandleFunc("", h.ListNotes).Methods(http.MethodGet)
	authRouter.HandleFunc("/search", h.SearchNotes).Methods(http.MethodGet)
	authRouter.HandleFunc("/{id}", h.GetNote).Methods(http.MethodGet)
	authRouter.HandleFunc("", h.CreateNote).Methods(http.MethodPost)
	authRouter.HandleFunc("/{id}", h.UpdateNote).Methods(http.MethodPut)
	authRouter.HandleFunc("/{id}", h.DeleteNote).Methods(http.MethodDelete)

	return r, auth, notes
}

func bearerFor(t *testing.T, user *models.User) string {
	t.Helper()
	tok, err := token.NewManager(testSecret).Issue(user)
	require.NoError(t, err)
	return "Bearer " + tok
}
