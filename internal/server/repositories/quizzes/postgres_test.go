package quizzes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var columns = []string{"id", "title", "description", "questions", "created_at", "updated_at"}

const questionsJSON = `[{"question":"Capital of France?","options":["Paris","Rome"],"correct":"Paris"},{"question":"Capital of Italy?","options":["Paris","Rome"],"correct":"Rome"}]`

func geoQuestions() []models.Question {
	return []models.Question{
		{Question: "Capital of France?", Options: []string{"Paris", "Rome"}, Correct: "Paris"},
		{Question: "Capital of Italy?", Options: []string{"Paris", "Rome"}, Correct: "Rome"},
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+quizzes\s*\(id,\s*title,\s*description,\s*questions\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4::jsonb\)\s*RETURNING\s+created_at,\s*updated_at$`).
		WithArgs("q-1", "Geo Quiz", "Capitals", questionsJSON).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	got, err := repo.Create(context.Background(), &models.Quiz{ID: "q-1", Title: "Geo Quiz", Description: "Capitals", Questions: geoQuestions()})
	require.NoError(t, err)
	assert.Equal(t, now, got.CreatedAt)
	assert.Equal(t, now, got.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+quizzes`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Quiz{ID: "q-1", Questions: geoQuestions()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestGetByID(t *testing.T) {
	q := `(?s)^SELECT\s+id,\s*title,\s*description,\s*questions,\s*created_at,\s*updated_at\s+FROM\s+quizzes\s+WHERE\s+id\s*=\s*\$1$`

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		now := time.Now()
		mock.ExpectQuery(q).WithArgs("q-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("q-1", "Geo Quiz", "Capitals", []byte(questionsJSON), now, now))

		got, err := repo.GetByID(context.Background(), "q-1")
		require.NoError(t, err)
		assert.Equal(t, "Geo Quiz", got.Title)
		assert.Equal(t, geoQuestions(), got.Questions)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("q-9").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "q-9")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("corrupt questions", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("q-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("q-1", "t", "d", []byte(`nope`), time.Now(), time.Now()))

		_, err := repo.GetByID(context.Background(), "q-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode questions")
	})
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	mock.ExpectQuery(`FROM\s+quizzes\s+ORDER\s+BY\s+created_at,\s*id$`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("q-1", "Geo Quiz", "Capitals", []byte(questionsJSON), now, now).
			AddRow("q-2", "Math Quiz", "Sums", []byte(questionsJSON), now, now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "q-2", got[1].ID)
}

func TestList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+quizzes`).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByIDs(t *testing.T) {
	t.Run("no ids skips the query", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)

		got, err := repo.ListByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("passes ids as a json array", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		now := time.Now()
		mock.ExpectQuery(`WHERE\s+id\s+IN\s+\(SELECT\s+jsonb_array_elements_text\(\$1::jsonb\)::uuid\)$`).
			WithArgs(`["q-1","q-2"]`).
			WillReturnRows(sqlmock.NewRows(columns).AddRow("q-2", "Math Quiz", "Sums", []byte(questionsJSON), now, now))

		got, err := repo.ListByIDs(context.Background(), []string{"q-1", "q-2"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "q-2", got[0].ID)
	})
}

func TestListIDs(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`(?s)^SELECT\s+id\s+FROM\s+quizzes\s+ORDER\s+BY\s+created_at,\s*id$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("q-1").AddRow("q-2"))

	got, err := repo.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"q-1", "q-2"}, got)
}

func TestListIDs_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT\s+id\s+FROM\s+quizzes`).WillReturnError(errors.New("timeout"))

	_, err := repo.ListIDs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: timeout")
}

func TestUpdate(t *testing.T) {
	q := `(?s)^UPDATE\s+quizzes\s+SET\s+title\s*=\s*\$2,\s*description\s*=\s*\$3,\s*questions\s*=\s*\$4::jsonb,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,`
	in := models.QuizInput{Title: "Geo Quiz 2", Description: "Capitals v2", Questions: geoQuestions()}

	t.Run("ok", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		now := time.Now()
		mock.ExpectQuery(q).WithArgs("q-1", "Geo Quiz 2", "Capitals v2", questionsJSON).
			WillReturnRows(sqlmock.NewRows(columns).AddRow("q-1", "Geo Quiz 2", "Capitals v2", []byte(questionsJSON), now, now))

		got, err := repo.Update(context.Background(), "q-1", in)
		require.NoError(t, err)
		assert.Equal(t, "Geo Quiz 2", got.Title)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(context.Background(), "q-9", in)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestDelete(t *testing.T) {
	q := `(?s)^DELETE\s+FROM\s+quizzes\s+WHERE\s+id\s*=\s*\$1$`

	t.Run("missing row is not an error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs("q-9").WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.Delete(context.Background(), "q-9"))
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs("q-1").WillReturnError(errors.New("locked"))

		require.Error(t, repo.Delete(context.Background(), "q-1"))
	})
}
