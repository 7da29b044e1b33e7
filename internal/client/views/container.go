package views

import (
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// Container is the root component. It holds the session and decides what
// is shown: the two forms while logged out, the profile while logged in.
// A ProfileView is mounted exactly when the state is session.LoggedIn.
type Container struct {
	svc Service
	log logging.Logger

	register *RegisterForm
	login    *LoginForm

	mu      sync.Mutex
	state   session.State
	profile *ProfileView
}

func NewContainer(svc Service, log logging.Logger) *Container {
	c := &Container{
		svc:      svc,
		log:      log,
		register: NewRegisterForm(svc),
		state:    session.LoggedOut{},
	}
	c.login = NewLoginForm(svc, c.SetToken)
	return c
}

// SetToken replaces the session token. The token is not validated. A
// non-empty token mounts the profile view (or points the mounted one at the
// new token); an empty one unmounts it.
func (c *Container) SetToken(ctx context.Context, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = session.FromToken(token)
	switch s := c.state.(type) {
	case session.LoggedIn:
		if c.profile == nil {
			c.profile = NewProfileView(c.svc, c.log)
		}
		c.profile.SetToken(ctx, s.Token)
	case session.LoggedOut:
		c.unmountLocked()
	}
}

// Logout forgets the token.
func (c *Container) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = session.LoggedOut{}
	c.unmountLocked()
}

func (c *Container) unmountLocked() {
	if c.profile != nil {
		c.profile.Close()
		c.profile = nil
	}
}

func (c *Container) State() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Profile returns the mounted profile view, or nil when logged out.
func (c *Container) Profile() *ProfileView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

func (c *Container) Register() *RegisterForm { return c.register }
func (c *Container) Login() *LoginForm       { return c.login }

func (c *Container) Render(w io.Writer) error {
	c.mu.Lock()
	profile := c.profile
	c.mu.Unlock()

	if profile != nil {
		return profile.Render(w)
	}
	if err := c.register.Render(w); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return c.login.Render(w)
}
