// Package services contains server-side business logic: the quiz catalog,
// the user registry and the fan-out that keeps users' quiz lists current.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/quizhub/internal/common"
	"github.com/dmitrijs2005/quizhub/internal/dbx"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const msgQuizNotFound = "No quiz data was found. Please enter a valid quiz id and try again."

// QuizService manages the quiz collection. Every write runs in its own
// transaction; creation also fans the new id out to all users.
type QuizService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	fanout      *FanOut
}

func NewQuizService(db *sql.DB, m repomanager.RepositoryManager, fanout *FanOut) *QuizService {
	return &QuizService{db: db, repomanager: m, fanout: fanout}
}

// ListAll returns every quiz, oldest first.
func (s *QuizService) ListAll(ctx context.Context) ([]*models.Quiz, error) {
	quizzes, err := s.repomanager.Quizzes(s.db).List(ctx)
	if err != nil {
		return nil, storageError("Something went wrong while getting the quizzes data.", err)
	}
	return quizzes, nil
}

func (s *QuizService) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	if err := models.ValidateQuizID(id); err != nil {
		return nil, err
	}

	quiz, err := s.repomanager.Quizzes(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.ErrorNotFound, msgQuizNotFound, nil)
		}
		return nil, storageError("Something went wrong while getting the quiz data.", err)
	}
	return quiz, nil
}

// Create stores a new quiz and adds it to every user's list. Either both
// happen or neither does.
func (s *QuizService) Create(ctx context.Context, in models.QuizInput) (*models.Quiz, error) {
	if err := models.ValidateQuizInput(in); err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Questions:   in.Questions,
	}

	var created *models.Quiz
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Quizzes(tx).Create(ctx, quiz)
		if err != nil {
			return err
		}
		return s.fanout.OnQuizCreated(ctx, tx, created.ID)
	})
	if err != nil {
		return nil, storageError("Something went wrong while creating the quiz data.", err)
	}
	return created, nil
}

// Edit replaces the title, description and questions of quiz id and returns
// the quiz as stored after the update.
func (s *QuizService) Edit(ctx context.Context, id string, in models.QuizInput) (*models.Quiz, error) {
	if err := models.ValidateQuizID(id); err != nil {
		return nil, err
	}
	if err := models.ValidateQuizInput(in); err != nil {
		return nil, err
	}

	var updated *models.Quiz
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		updated, err = s.repomanager.Quizzes(tx).Update(ctx, id, in)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.ErrorNotFound, msgQuizNotFound, nil)
		}
		return nil, storageError("Something went wrong while editing the quiz data.", err)
	}
	return updated, nil
}

// Delete removes quiz id. Deleting a quiz that does not exist succeeds.
// Users keep their reference to the deleted id.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	if err := models.ValidateQuizID(id); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Quizzes(tx).Delete(ctx, id)
	})
	if err != nil {
		return storageError("Something went wrong while deleting quiz data.", err)
	}
	return nil
}
