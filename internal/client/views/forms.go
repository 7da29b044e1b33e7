package views

import (
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

// RegisterForm submits new accounts. It keeps no state between submissions.
type RegisterForm struct {
	svc Registrar
}

func NewRegisterForm(svc Registrar) *RegisterForm {
	return &RegisterForm{svc: svc}
}

// Submit sends exactly one registration request. The created-account data
// is returned for callers that want it; the session is not touched.
func (f *RegisterForm) Submit(ctx context.Context, username, email, password string) (*models.Account, error) {
	return f.svc.Register(ctx, models.Registration{
		Username: username,
		Email:    email,
		Password: password,
	})
}

func (f *RegisterForm) Render(w io.Writer) error {
	return renderForm(w, "Register", "Username", "Email", "Password")
}

// LoginForm submits credentials and hands the resulting token to setToken.
type LoginForm struct {
	svc      Authenticator
	setToken func(ctx context.Context, token string)
}

func NewLoginForm(svc Authenticator, setToken func(ctx context.Context, token string)) *LoginForm {
	return &LoginForm{svc: svc, setToken: setToken}
}

// Submit logs in. On failure the session is left unchanged and the error is
// returned; the form renders nothing about it.
func (f *LoginForm) Submit(ctx context.Context, username, password string) error {
	token, err := f.svc.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	f.setToken(ctx, token)
	return nil
}

func (f *LoginForm) Render(w io.Writer) error {
	return renderForm(w, "Login", "Username", "Password")
}

func renderForm(w io.Writer, heading string, fields ...string) error {
	var b strings.Builder
	b.WriteString(heading + "\n")
	for _, f := range fields {
		b.WriteString("  " + f + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
