package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Fprintln

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ListQuizzes(ctx context.Context) error
	MyQuizzes(ctx context.Context) error
	ShowQuiz(ctx context.Context, id string) error
	DeleteQuiz(ctx context.Context, id string) error
}

// runREPL reads commands line by line and dispatches them to a.
//
//	Not logged in:
//	  - help           show available commands
//	  - signup         create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - quizzes        list all quizzes
//	  - my-quizzes     list quizzes on your list
//	  - quiz <id>      show one quiz
//	  - delete <id>    delete a quiz
//	  - logout         forget the session
//	  - exit | quit    leave the program
//
// Command errors are reported by the commands themselves; the loop keeps
// going. It exits on EOF or exit/quit.
//
// reader is shared with the commands' own prompts, so lines are read
// straight from it rather than through a separate scanner.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "quizhub %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(out, "Available commands: quizzes, my-quizzes, quiz <id>, delete <id>, logout, exit")
			} else {
				printlnFn(out, "Available commands: signup, login, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "quizzes", "l":
			_ = a.ListQuizzes(ctx)

		case "my-quizzes":
			_ = a.MyQuizzes(ctx)

		case "quiz", "delete":
			if len(args) != 1 {
				printlnFn(out, "Usage:", cmd, "<id>")
				continue
			}
			if cmd == "quiz" {
				_ = a.ShowQuiz(ctx, args[0])
			} else {
				_ = a.DeleteQuiz(ctx, args[0])
			}

		case "exit", "quit":
			printlnFn(out, "Bye!")
			return

		default:
			printlnFn(out, "Unknown command:", cmd)
		}
	}
}
