package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
)

// Unique-constraint violations on insert. Both match common.ErrorConflict.
var (
	ErrEmailTaken    = fmt.Errorf("email %w", common.ErrorConflict)
	ErrUserNameTaken = fmt.Errorf("username %w", common.ErrorConflict)
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListForUpdate returns every user's id and quiz list, row-locked until
	// the surrounding transaction ends.
	ListForUpdate(ctx context.Context) ([]*models.User, error)
	UpdateQuizIDs(ctx context.Context, userID string, quizIDs []string) error
}
