package quizzes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/dbx"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

const quizColumns = `id, title, description, questions, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row scanner) (*models.Quiz, error) {
	quiz := &models.Quiz{}
	var questions []byte
	if err := row.Scan(&quiz.ID, &quiz.Title, &quiz.Description, &questions, &quiz.CreatedAt, &quiz.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return quiz, nil
}

func (r *PostgresRepository) Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}

	query :=
		`INSERT INTO quizzes (id, title, description, questions)
         VALUES ($1, $2, $3, $4::jsonb)
		 RETURNING created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		quiz.ID, quiz.Title, quiz.Description, string(questions)).Scan(&quiz.CreatedAt, &quiz.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return quiz, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`

	quiz, err := scanQuiz(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return quiz, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes ORDER BY created_at, id`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Quiz, error) {
	if len(ids) == 0 {
		return []*models.Quiz{}, nil
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode quiz ids: %w", err)
	}

	query := `SELECT ` + quizColumns + ` FROM quizzes
		 WHERE id IN (SELECT jsonb_array_elements_text($1::jsonb)::uuid)`
	return r.list(ctx, query, string(encoded))
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Quiz, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Quiz{}
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListIDs(ctx context.Context) ([]string, error) {
	query := `SELECT id FROM quizzes ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ids, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, in models.QuizInput) (*models.Quiz, error) {
	questions, err := json.Marshal(in.Questions)
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}

	query :=
		`UPDATE quizzes SET title = $2, description = $3, questions = $4::jsonb, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + quizColumns

	quiz, err := scanQuiz(r.db.QueryRowContext(ctx, query, id, in.Title, in.Description, string(questions)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return quiz, nil
}

// Delete removes the quiz. Deleting an id that does not exist is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM quizzes WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
