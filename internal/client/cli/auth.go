package cli

import (
	"context"
	"errors"
)

var errLoginRequired = errors.New("log in first")

// SignUp prompts for a username, email and password and creates an account.
// When the backend does not return a user id, the user is asked to log in.
func (a *App) SignUp(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if !a.session.SignUp(ctx, username, email, password) {
		return errors.New(a.session.Session().LastError)
	}
	if a.isLoggedIn() {
		if err := a.store.Load(ctx); err != nil {
			a.log.Warn(ctx, "conversations not loaded", "error", err)
		}
		a.println("Account created, you are logged in.")
	} else {
		a.println("Account created. Please log in.")
	}
	return nil
}

// Login prompts for credentials and authenticates. On success the stored
// matches are reloaded.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if !a.session.Login(ctx, username, password) {
		return errors.New(a.session.Session().LastError)
	}
	if err := a.store.Load(ctx); err != nil {
		a.log.Warn(ctx, "conversations not loaded", "error", err)
	}
	a.println("Login successful.")
	return nil
}

// Logout forgets the session, the matches and the in-memory profile.
func (a *App) Logout(ctx context.Context) error {
	a.engine.Wait()
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.store.Reset()
	a.engine.Reset(nil)
	a.profile = newProfileLike(a.profile)
	a.println("Logged out.")
	return nil
}
