package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/quizhub/internal/dbx"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/repomanager"
)

// FanOut keeps every user's quiz reference list in step with the quiz
// collection. It never opens transactions itself; callers hand it the
// transactional handle the surrounding write runs on.
type FanOut struct {
	repomanager repomanager.RepositoryManager
}

func NewFanOut(m repomanager.RepositoryManager) *FanOut {
	return &FanOut{repomanager: m}
}

// OnQuizCreated appends quizID to the reference list of every existing user.
// User rows stay locked until tx ends. The first failed update aborts the
// loop; rolling back is the caller's job.
func (f *FanOut) OnQuizCreated(ctx context.Context, tx dbx.DBTX, quizID string) error {
	repo := f.repomanager.Users(tx)

	users, err := repo.ListForUpdate(ctx)
	if err != nil {
		return fmt.Errorf("error loading users: %w", err)
	}

	for _, u := range users {
		if u.HasQuiz(quizID) {
			continue
		}
		ids := make([]string, 0, len(u.QuizIDs)+1)
		ids = append(ids, u.QuizIDs...)
		ids = append(ids, quizID)
		if err := repo.UpdateQuizIDs(ctx, u.ID, ids); err != nil {
			return fmt.Errorf("error adding quiz to user %s: %w", u.ID, err)
		}
	}
	return nil
}

// SnapshotForNewUser returns the ids of every quiz that exists right now,
// oldest first. A new user starts with exactly this list.
func (f *FanOut) SnapshotForNewUser(ctx context.Context, db dbx.DBTX) ([]string, error) {
	ids, err := f.repomanager.Quizzes(db).ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading quiz ids: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
