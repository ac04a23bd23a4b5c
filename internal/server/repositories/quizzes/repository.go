package quizzes

import (
	"context"

	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	List(ctx context.Context) ([]*models.Quiz, error)
	// ListByIDs returns the quizzes whose ids are in ids, in no particular
	// order. Unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]*models.Quiz, error)
	ListIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id string, in models.QuizInput) (*models.Quiz, error)
	Delete(ctx context.Context, id string) error
}
