package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/quizhub/internal/client/api"
)

// ListQuizzes prints every quiz on the server.
func (a *App) ListQuizzes(ctx context.Context) error {
	quizzes, err := a.api.ListQuizzes(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}
	printQuizTable(a.out, quizzes)
	return nil
}

// MyQuizzes prints the quizzes on the current user's list.
func (a *App) MyQuizzes(ctx context.Context) error {
	quizzes, err := a.api.ListMyQuizzes(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}
	printQuizTable(a.out, quizzes)
	return nil
}

// ShowQuiz prints one quiz with its questions and the correct answers.
func (a *App) ShowQuiz(ctx context.Context, id string) error {
	q, err := a.api.GetQuiz(ctx, id)
	if err != nil {
		a.reportError(err)
		return err
	}

	fmt.Fprintf(a.out, "%s\n%s\n\n", q.Title, q.Description)
	for i, question := range q.Questions {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, question.Question)
		for _, opt := range question.Options {
			mark := " "
			if opt == question.Correct {
				mark = "*"
			}
			fmt.Fprintf(a.out, "   [%s] %s\n", mark, opt)
		}
	}
	return nil
}

// DeleteQuiz deletes quiz id after the user confirms.
func (a *App) DeleteQuiz(ctx context.Context, id string) error {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete quiz %s? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		printlnFn(a.out, "Cancelled")
		return nil
	}

	if err := a.api.DeleteQuiz(ctx, id); err != nil {
		a.reportError(err)
		return err
	}
	printlnFn(a.out, "Quiz deleted successfully.")
	return nil
}

func (a *App) reportError(err error) {
	switch {
	case errors.Is(err, api.ErrNotLoggedIn):
		printlnFn(a.out, "Please login first.")
	case errors.Is(err, api.ErrUnauthorized):
		printlnFn(a.out, "Session expired, please login again.")
		a.api.Logout()
	case errors.Is(err, api.ErrUnavailable):
		printlnFn(a.out, "Server unavailable, try again later.")
	default:
		printlnFn(a.out, "Error:", err)
	}
}

func printQuizTable(w io.Writer, quizzes []api.Quiz) {
	if len(quizzes) == 0 {
		printlnFn(w, "No quizzes.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tQUESTIONS")
	for _, q := range quizzes {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", q.ID, q.Title, len(q.Questions))
	}
	_ = tw.Flush()
}
