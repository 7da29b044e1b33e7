package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// ProfileStatus is the lifecycle of a ProfileView.
type ProfileStatus int

const (
	ProfileIdle ProfileStatus = iota
	ProfileLoading
	ProfileLoaded
	ProfileFailed
)

func (s ProfileStatus) String() string {
	switch s {
	case ProfileIdle:
		return "idle"
	case ProfileLoading:
		return "loading"
	case ProfileLoaded:
		return "loaded"
	case ProfileFailed:
		return "failed"
	default:
		return fmt.Sprintf("ProfileStatus(%d)", int(s))
	}
}

// Rendered text of the profile view.
const (
	ProfileHeading      = "User Profile"
	ProfileLoadingText  = "Loading..."
	ProfileErrorMessage = "Error fetching profile"
)

// ProfileView fetches and displays the profile for the token it was last
// given. Each fetch is tagged with a generation; a response belonging to an
// older generation is dropped, so the last requested token always wins.
type ProfileView struct {
	svc ProfileFetcher
	log logging.Logger

	mu      sync.Mutex
	token   string
	gen     uint64
	status  ProfileStatus
	profile *models.Profile
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewProfileView(svc ProfileFetcher, log logging.Logger) *ProfileView {
	return &ProfileView{svc: svc, log: log}
}

// SetToken starts a fetch for token unless it equals the current one. The
// previous in-flight fetch, if any, is canceled. An empty token returns the
// view to idle.
func (p *ProfileView) SetToken(ctx context.Context, token string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if token == p.token {
		return
	}
	p.token = token
	p.gen++
	p.profile = nil
	p.stopLocked()

	if token == "" {
		p.status = ProfileIdle
		return
	}

	p.status = ProfileLoading
	fctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.fetch(fctx, p.gen, token, p.done)
}

func (p *ProfileView) fetch(ctx context.Context, gen uint64, token string, done chan struct{}) {
	defer close(done)

	prof, err := p.svc.Profile(ctx, token)
	if err == nil && prof == nil {
		err = errors.New("empty profile response")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		p.log.Debug(ctx, "dropping stale profile response", "generation", gen, "current", p.gen)
		return
	}
	p.stopLocked()

	if err != nil {
		p.log.Error(ctx, "error fetching profile", "error", err)
		p.status = ProfileFailed
		return
	}
	p.profile = prof
	p.status = ProfileLoaded
}

func (p *ProfileView) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Wait blocks until the view is not loading or ctx is done.
func (p *ProfileView) Wait(ctx context.Context) error {
	for {
		p.mu.Lock()
		if p.status != ProfileLoading {
			p.mu.Unlock()
			return nil
		}
		done := p.done
		p.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels any in-flight fetch. A view that was still loading goes
// back to idle; otherwise it keeps its last state.
func (p *ProfileView) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.stopLocked()
	if p.status == ProfileLoading {
		p.status = ProfileIdle
	}
}

func (p *ProfileView) Status() ProfileStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *ProfileView) Token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

// Profile returns a copy of the loaded profile, or nil.
func (p *ProfileView) Profile() *models.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.profile == nil {
		return nil
	}
	cp := *p.profile
	return &cp
}

func (p *ProfileView) Render(w io.Writer) error {
	p.mu.Lock()
	status, prof := p.status, p.profile
	p.mu.Unlock()

	var b strings.Builder
	b.WriteString(ProfileHeading + "\n")
	switch status {
	case ProfileLoaded:
		fmt.Fprintf(&b, "ID: %s\n", prof.UserID)
		fmt.Fprintf(&b, "Username: %s\n", prof.Username)
	case ProfileFailed:
		b.WriteString(ProfileErrorMessage + "\n")
	default:
		b.WriteString(ProfileLoadingText + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
