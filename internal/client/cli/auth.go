package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/client/token"
	"github.com/dmitrijs2005/authkeeper/internal/client/views"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var (
	errNotLoggedIn   = errors.New("not logged in")
	errProfileFailed = errors.New("profile could not be fetched")
)

func (a *App) promptIfEmpty(value *string, prompt string) error {
	if *value != "" {
		return nil
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

// Register prompts for username, email and password and creates an account.
// The session is not changed.
func (a *App) Register(ctx context.Context) error {
	return a.register(ctx, "", "")
}

func (a *App) register(ctx context.Context, username, email string) error {
	if err := a.promptIfEmpty(&username, "Enter username"); err != nil {
		return err
	}
	if err := a.promptIfEmpty(&email, "Enter email"); err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.ttyFd, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.view.Register().Submit(ctx, username, email, string(password)); err != nil {
		fmt.Fprintln(a.out, "Registration failed")
		return err
	}
	fmt.Fprintln(a.out, "Registration successful")
	return nil
}

// Login prompts for credentials, logs in and renders the profile. The new
// session is also saved so later one-shot commands can use it.
func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, "")
}

func (a *App) login(ctx context.Context, username string) error {
	if err := a.promptIfEmpty(&username, "Enter username"); err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.ttyFd, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.view.Login().Submit(ctx, username, string(password)); err != nil {
		fmt.Fprintln(a.out, "Login failed")
		return err
	}
	a.userName = username
	a.expired.Store(false)

	if tok, ok := session.TokenOf(a.view.State()); ok {
		if err := a.saveSession(ctx, username, tok); err != nil {
			a.log.Warn(ctx, "session not saved", "error", err)
		}
	}
	return a.Show(ctx)
}

func (a *App) saveSession(ctx context.Context, username, tok string) error {
	store, err := a.sessionStore(ctx)
	if err != nil {
		return err
	}
	return store.Save(ctx, username, tok)
}

// Show renders the container. A profile that is still loading is waited
// for first.
func (a *App) Show(ctx context.Context) error {
	if p := a.view.Profile(); p != nil {
		if err := p.Wait(ctx); err != nil {
			return err
		}
	}
	return a.view.Render(a.out)
}

// Profile restores the saved session and renders its profile.
func (a *App) Profile(ctx context.Context) error {
	saved, err := a.loadSession(ctx)
	if err != nil {
		return err
	}
	a.userName = saved.Username
	a.view.SetToken(ctx, saved.Token)

	if err := a.Show(ctx); err != nil {
		return err
	}
	if p := a.view.Profile(); p != nil && p.Status() == views.ProfileFailed {
		return errProfileFailed
	}
	return nil
}

func (a *App) loadSession(ctx context.Context) (session.Saved, error) {
	store, err := a.sessionStore(ctx)
	if err != nil {
		return session.Saved{}, err
	}
	saved, err := store.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return session.Saved{}, fmt.Errorf("%w: run login first", errNotLoggedIn)
	}
	return saved, err
}

// WhoAmI prints what the current token says about its owner. Nothing is
// sent to the service.
func (a *App) WhoAmI(ctx context.Context) error {
	tok, ok := session.TokenOf(a.view.State())
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return errNotLoggedIn
	}
	a.printTokenInfo(a.userName, tok)
	return nil
}

// whoAmISaved is WhoAmI for the saved session.
func (a *App) whoAmISaved(ctx context.Context) error {
	saved, err := a.loadSession(ctx)
	if err != nil {
		return err
	}
	a.printTokenInfo(saved.Username, saved.Token)
	return nil
}

func (a *App) printTokenInfo(username, raw string) {
	fmt.Fprintf(a.out, "Username: %s\n", username)

	info, err := token.Inspect(raw)
	if err != nil {
		fmt.Fprintln(a.out, "Token: opaque")
		return
	}
	if info.UserID != "" {
		fmt.Fprintf(a.out, "User ID: %s\n", info.UserID)
	}
	if !info.ExpiresAt.IsZero() {
		suffix := ""
		if info.Expired(a.now()) {
			suffix = " (expired)"
		}
		fmt.Fprintf(a.out, "Expires: %s%s\n", info.ExpiresAt.UTC().Format("2006-01-02 15:04:05 MST"), suffix)
	}
}

// Logout forgets the token in memory and in the session database.
func (a *App) Logout(ctx context.Context) error {
	a.view.Logout()
	a.userName = ""
	a.expired.Store(false)

	store, err := a.sessionStore(ctx)
	if err != nil {
		return err
	}
	if err := store.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
