// Package cli provides the interactive quizhub command-line client.
//
// It wires configuration and the HTTP API client into a small REPL:
// sign up or log in, then browse, inspect and delete quizzes. The session
// token lives only in memory for the life of the process.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
