package httpapi

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/quizhub/internal/logging"
	"github.com/dmitrijs2005/quizhub/internal/server/auth"
	"github.com/dmitrijs2005/quizhub/internal/server/config"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
	"github.com/dmitrijs2005/quizhub/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret"

type fakeQuizzes struct {
	listFn   func(ctx context.Context) ([]*models.Quiz, error)
	getFn    func(ctx context.Context, id string) (*models.Quiz, error)
	createFn func(ctx context.Context, in models.QuizInput) (*models.Quiz, error)
	editFn   func(ctx context.Context, id string, in models.QuizInput) (*models.Quiz, error)
	deleteFn func(ctx context.Context, id string) error
	calls    int
}

func (f *fakeQuizzes) ListAll(ctx context.Context) ([]*models.Quiz, error) {
	f.calls++
	return f.listFn(ctx)
}

func (f *fakeQuizzes) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	f.calls++
	return f.getFn(ctx, id)
}

func (f *fakeQuizzes) Create(ctx context.Context, in models.QuizInput) (*models.Quiz, error) {
	f.calls++
	return f.createFn(ctx, in)
}

func (f *fakeQuizzes) Edit(ctx context.Context, id string, in models.QuizInput) (*models.Quiz, error) {
	f.calls++
	return f.editFn(ctx, id, in)
}

func (f *fakeQuizzes) Delete(ctx context.Context, id string) error {
	f.calls++
	return f.deleteFn(ctx, id)
}

type fakeUsers struct {
	authFn     func(ctx context.Context, username, password string) (*services.Session, error)
	registerFn func(ctx context.Context, username, email, password string) (*services.Session, error)
	listFn     func(ctx context.Context, userID string) ([]*models.Quiz, error)
}

func (f *fakeUsers) Authenticate(ctx context.Context, username, password string) (*services.Session, error) {
	return f.authFn(ctx, username, password)
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string) (*services.Session, error) {
	return f.registerFn(ctx, username, email, password)
}

func (f *fakeUsers) ListForUser(ctx context.Context, userID string) ([]*models.Quiz, error) {
	return f.listFn(ctx, userID)
}

func newTestServer(qs *fakeQuizzes, us *fakeUsers) *HTTPServer {
	if qs == nil {
		qs = &fakeQuizzes{}
	}
	if us == nil {
		us = &fakeUsers{}
	}
	cfg := &config.Config{
		EndpointAddrHTTP: "127.0.0.1:0",
		SecretKey:        testSecret,
		ShutdownTimeout:  time.Second,
	}
	return NewHTTPServer(cfg, logging.NewNop(), qs, us)
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, userID+"@example.com", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do runs one request through the full handler chain.
func do(t *testing.T, s *HTTPServer, method, path, body, authz string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

var geoQuiz = &models.Quiz{
	ID:          "7d3c1a52-4b7e-4c55-9d0e-1f0d1c8f0a11",
	Title:       "Geo Quiz",
	Description: "Capitals",
	Questions: []models.Question{
		{Question: "Capital of France?", Options: []string{"Paris", "Rome"}, Correct: "Paris"},
		{Question: "Capital of Italy?", Options: []string{"Paris", "Rome"}, Correct: "Rome"},
	},
	CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
}
