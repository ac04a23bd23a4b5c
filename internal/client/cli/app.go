package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/quizhub/internal/client/api"
	"github.com/dmitrijs2005/quizhub/internal/client/config"
)

// quizAPI is the part of *api.Client the commands use.
type quizAPI interface {
	Signup(ctx context.Context, username, email, password string) (*api.Session, error)
	Login(ctx context.Context, username, password string) (*api.Session, error)
	Logout()
	Session() *api.Session
	ListQuizzes(ctx context.Context) ([]api.Quiz, error)
	ListMyQuizzes(ctx context.Context) ([]api.Quiz, error)
	GetQuiz(ctx context.Context, id string) (*api.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
}

type App struct {
	config *config.Config
	api    quizAPI
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.Session() != nil
}

func (a *App) getStatus() string {
	if sess := a.api.Session(); sess != nil {
		return "(" + sess.Email + ") "
	}
	return ""
}

// Run starts the REPL on the app's input and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	printlnFn(a.out, "Welcome to quizhub CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
