package views

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterForm_SubmitError(t *testing.T) {
	svc := &fakeService{regErr: errors.New("Username or Email already exists")}
	f := NewRegisterForm(svc)

	acc, err := f.Submit(context.Background(), "alice", "a@example.com", "pw")

	require.Error(t, err)
	assert.Nil(t, acc)
	assert.Len(t, svc.regs, 1)
}

func TestLoginForm_SetterReceivesToken(t *testing.T) {
	var got []string
	svc := &fakeService{loginToken: "abc"}
	f := NewLoginForm(svc, func(_ context.Context, tok string) { got = append(got, tok) })

	require.NoError(t, f.Submit(context.Background(), "alice", "pw"))
	assert.Equal(t, []string{"abc"}, got)
}

func TestLoginForm_SetterNotCalledOnError(t *testing.T) {
	called := false
	svc := &fakeService{loginErr: errors.New("Invalid username or password")}
	f := NewLoginForm(svc, func(context.Context, string) { called = true })

	require.Error(t, f.Submit(context.Background(), "alice", "bad"))
	assert.False(t, called)
}

func TestForms_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRegisterForm(nil).Render(&buf))
	assert.Equal(t, "Register\n  Username\n  Email\n  Password\n", buf.String())

	buf.Reset()
	require.NoError(t, NewLoginForm(nil, nil).Render(&buf))
	assert.Equal(t, "Login\n  Username\n  Password\n", buf.String())
}
