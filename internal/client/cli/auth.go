package cli

import (
	"context"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for a username, email and password and creates an account.
// On success the new session is kept for later commands.
func (a *App) Signup(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	sess, err := a.api.Signup(ctx, username, email, password)
	if err != nil {
		printlnFn(a.out, "Signup unsuccessful:", err)
		return err
	}

	printlnFn(a.out, "Signed up as", sess.Email)
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	sess, err := a.api.Login(ctx, username, password)
	if err != nil {
		printlnFn(a.out, "Login unsuccessful:", err)
		return err
	}

	printlnFn(a.out, "Logged in as", sess.Email)
	return nil
}

// Logout drops the in-memory session.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	printlnFn(a.out, "Logged out")
	return nil
}
