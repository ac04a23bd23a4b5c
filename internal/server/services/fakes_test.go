package services

import (
	"context"
	"database/sql"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/dbx"
	"github.com/dmitrijs2005/quizhub/internal/server/config"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/quizzes"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// --- helpers ---

// newTxDB returns a real *sql.DB so dbx.WithTx can begin and commit. The
// in-memory fakes below ignore the handle they are given.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		BcryptCost:                  bcrypt.MinCost,
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// memStore is a tiny in-memory stand-in for the users and quizzes tables.
type memStore struct {
	mu      sync.Mutex
	users   []*models.User
	quizzes []*models.Quiz
	clock   time.Time

	createUserErr error
	listIDsErr    error
	lockErr       error
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) seedUser(t *testing.T, id, name, email, password string, quizIDs ...string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s.users = append(s.users, &models.User{ID: id, UserName: name, Email: email, PasswordHash: hash, QuizIDs: quizIDs})
}

func (s *memStore) user(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.QuizIDs = slices.Clone(u.QuizIDs)
	return &c
}

type memUsers struct{ s *memStore }

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createUserErr != nil {
		return nil, r.s.createUserErr
	}
	for _, x := range r.s.users {
		if x.Email == u.Email {
			return nil, users.ErrEmailTaken
		}
		if x.UserName == u.UserName {
			return nil, users.ErrUserNameTaken
		}
	}
	c := cloneUser(u)
	c.CreatedAt = r.s.tick()
	r.s.users = append(r.s.users, c)
	return cloneUser(c), nil
}

func (r *memUsers) find(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *memUsers) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.UserName == name })
}

func (r *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *memUsers) ListForUpdate(context.Context) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.lockErr != nil {
		return nil, r.s.lockErr
	}
	out := make([]*models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *memUsers) UpdateQuizIDs(_ context.Context, id string, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.user(id)
	if u == nil {
		return common.ErrorNotFound
	}
	u.QuizIDs = slices.Clone(ids)
	return nil
}

type memQuizzes struct{ s *memStore }

func cloneQuiz(q *models.Quiz) *models.Quiz {
	c := *q
	c.Questions = slices.Clone(q.Questions)
	return &c
}

func (r *memQuizzes) Create(_ context.Context, q *models.Quiz) (*models.Quiz, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := cloneQuiz(q)
	c.CreatedAt = r.s.tick()
	c.UpdatedAt = c.CreatedAt
	r.s.quizzes = append(r.s.quizzes, c)
	return cloneQuiz(c), nil
}

func (r *memQuizzes) GetByID(_ context.Context, id string) (*models.Quiz, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, q := range r.s.quizzes {
		if q.ID == id {
			return cloneQuiz(q), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memQuizzes) List(context.Context) ([]*models.Quiz, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Quiz, 0, len(r.s.quizzes))
	for _, q := range r.s.quizzes {
		out = append(out, cloneQuiz(q))
	}
	return out, nil
}

// ListByIDs returns matches newest first, so callers cannot rely on order.
func (r *memQuizzes) ListByIDs(_ context.Context, ids []string) ([]*models.Quiz, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Quiz
	for i := len(r.s.quizzes) - 1; i >= 0; i-- {
		if slices.Contains(ids, r.s.quizzes[i].ID) {
			out = append(out, cloneQuiz(r.s.quizzes[i]))
		}
	}
	return out, nil
}

func (r *memQuizzes) ListIDs(context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.listIDsErr != nil {
		return nil, r.s.listIDsErr
	}
	var ids []string
	for _, q := range r.s.quizzes {
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (r *memQuizzes) Update(_ context.Context, id string, in models.QuizInput) (*models.Quiz, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, q := range r.s.quizzes {
		if q.ID == id {
			q.Title, q.Description, q.Questions = in.Title, in.Description, slices.Clone(in.Questions)
			q.UpdatedAt = r.s.tick()
			return cloneQuiz(q), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memQuizzes) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.quizzes = slices.DeleteFunc(r.s.quizzes, func(q *models.Quiz) bool { return q.ID == id })
	return nil
}

type memRepoManager struct{ s *memStore }

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(dbx.DBTX) users.Repository              { return &memUsers{m.s} }
func (m *memRepoManager) Quizzes(dbx.DBTX) quizzes.Repository          { return &memQuizzes{m.s} }

// newMemServices wires both services over one shared in-memory store.
func newMemServices(t *testing.T) (*QuizService, *UserService, *memStore) {
	t.Helper()
	store := newMemStore()
	db := newTxDB(t)
	rm := &memRepoManager{s: store}
	fo := NewFanOut(rm)
	return NewQuizService(db, rm, fo), NewUserService(db, rm, fo, testConfig()), store
}

func question(text string) models.Question {
	return models.Question{Question: text, Options: []string{"Paris", "Rome"}, Correct: "Paris"}
}

func quizInput(title string, nQuestions int) models.QuizInput {
	qs := make([]models.Question, nQuestions)
	for i := range qs {
		qs[i] = question("Q?")
	}
	return models.QuizInput{Title: title, Description: "Capitals", Questions: qs}
}
