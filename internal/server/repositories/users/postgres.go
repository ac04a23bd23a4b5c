package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/dbx"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	emailUniqueIndex     = "users_email_key"
	selectUserColumns    = `SELECT id, username, email, password_hash, quiz_ids, created_at FROM users`
	emptyQuizListLiteral = "[]"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	quizIDs, err := encodeQuizIDs(user.QuizIDs)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO users (id, username, email, password_hash, quiz_ids)
         VALUES ($1, $2, $3, $4, $5::jsonb)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.ID, user.UserName, user.Email, user.PasswordHash, quizIDs).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if pgErr.ConstraintName == emailUniqueIndex {
				return nil, ErrEmailTaken
			}
			return nil, ErrUserNameTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUserColumns+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	return r.getOne(ctx, selectUserColumns+` WHERE username = $1`, userName)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserColumns+` WHERE email = $1`, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	var quizIDs []byte

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.UserName, &user.Email, &user.PasswordHash, &quizIDs, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if user.QuizIDs, err = decodeQuizIDs(quizIDs); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) ListForUpdate(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, quiz_ids FROM users FOR UPDATE`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		var quizIDs []byte
		if err := rows.Scan(&user.ID, &quizIDs); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if user.QuizIDs, err = decodeQuizIDs(quizIDs); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateQuizIDs(ctx context.Context, userID string, quizIDs []string) error {
	encoded, err := encodeQuizIDs(quizIDs)
	if err != nil {
		return err
	}

	query := `UPDATE users SET quiz_ids = $2::jsonb WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, userID, encoded)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func encodeQuizIDs(ids []string) (string, error) {
	if len(ids) == 0 {
		return emptyQuizListLiteral, nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode quiz ids: %w", err)
	}
	return string(b), nil
}

func decodeQuizIDs(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	ids := []string{}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode quiz ids: %w", err)
	}
	return ids, nil
}
