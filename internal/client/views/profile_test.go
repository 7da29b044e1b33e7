package views

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderProfile(t *testing.T, p *ProfileView) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf))
	return buf.String()
}

func waitView(t *testing.T, p *ProfileView) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Wait(ctx))
}

func TestProfileView_IdleRendersLoading(t *testing.T) {
	log, _ := newObservedLogger()
	p := NewProfileView(&fakeService{}, log)

	assert.Equal(t, ProfileIdle, p.Status())
	assert.Equal(t, "User Profile\nLoading...\n", renderProfile(t, p))
}

func TestProfileView_LoadingWhileInFlight(t *testing.T) {
	log, _ := newObservedLogger()
	gate := make(chan struct{})
	svc := aliceService()
	svc.gates = map[string]chan struct{}{"abc": gate}
	p := NewProfileView(svc, log)

	p.SetToken(context.Background(), "abc")
	assert.Equal(t, ProfileLoading, p.Status())
	assert.Equal(t, "User Profile\nLoading...\n", renderProfile(t, p))

	close(gate)
	waitView(t, p)
	assert.Equal(t, ProfileLoaded, p.Status())
}

func TestProfileView_RendersNumericAndStringIDs(t *testing.T) {
	log, _ := newObservedLogger()
	svc := &fakeService{profiles: map[string]*models.Profile{
		"abc": {UserID: "1", Username: "alice"},
		"def": {UserID: "7f3c", Username: "bob"},
	}}
	p := NewProfileView(svc, log)

	p.SetToken(context.Background(), "abc")
	waitView(t, p)
	assert.Equal(t, "User Profile\nID: 1\nUsername: alice\n", renderProfile(t, p))

	p.SetToken(context.Background(), "def")
	waitView(t, p)
	assert.Equal(t, "User Profile\nID: 7f3c\nUsername: bob\n", renderProfile(t, p))
}

func TestProfileView_ErrorRendersFixedMessage(t *testing.T) {
	log, logs := newObservedLogger()
	svc := &fakeService{profileErr: errors.New("dial tcp: connection refused")}
	p := NewProfileView(svc, log)

	p.SetToken(context.Background(), "abc")
	waitView(t, p)

	out := renderProfile(t, p)
	assert.Equal(t, ProfileFailed, p.Status())
	assert.Equal(t, "User Profile\nError fetching profile\n", out)
	assert.NotContains(t, out, "ID:")
	assert.NotContains(t, out, "connection refused")
	assert.Equal(t, 1, logs.FilterMessage("error fetching profile").Len())
	assert.Nil(t, p.Profile())
}

func TestProfileView_SameTokenFetchesOnce(t *testing.T) {
	log, _ := newObservedLogger()
	svc := aliceService()
	p := NewProfileView(svc, log)

	p.SetToken(context.Background(), "abc")
	p.SetToken(context.Background(), "abc")
	waitView(t, p)
	p.SetToken(context.Background(), "abc")

	assert.Equal(t, []string{"abc"}, svc.fetchedTokens())
}

func TestProfileView_StaleResponseIsDropped(t *testing.T) {
	log, logs := newObservedLogger()
	slow := make(chan struct{})
	svc := &fakeService{
		profiles: map[string]*models.Profile{
			"old": {UserID: "1", Username: "old-user"},
			"new": {UserID: "2", Username: "new-user"},
		},
		gates:        map[string]chan struct{}{"old": slow},
		ignoreCancel: true,
	}
	p := NewProfileView(svc, log)

	p.SetToken(context.Background(), "old")
	p.SetToken(context.Background(), "new")
	waitView(t, p)
	require.Equal(t, "new-user", p.Profile().Username)

	close(slow)
	require.Eventually(t, func() bool {
		return logs.FilterMessage("dropping stale profile response").Len() == 1
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, ProfileLoaded, p.Status())
	assert.Equal(t, "new-user", p.Profile().Username)
}

func TestProfileView_TokenChangeCancelsInFlight(t *testing.T) {
	log, _ := newObservedLogger()
	svc := &fakeService{
		profiles: map[string]*models.Profile{"new": {UserID: "2", Username: "bob"}},
		gates:    map[string]chan struct{}{"old": make(chan struct{})},
	}
	p := NewProfileView(svc, log)

	p.SetToken(context.Background(), "old")
	p.SetToken(context.Background(), "new")
	waitView(t, p)

	assert.Equal(t, ProfileLoaded, p.Status())
	assert.Equal(t, "bob", p.Profile().Username)
}

func TestProfileView_EmptyTokenReturnsToIdle(t *testing.T) {
	log, _ := newObservedLogger()
	svc := &fakeService{gates: map[string]chan struct{}{"abc": make(chan struct{})}}
	p := NewProfileView(svc, log)

	p.SetToken(context.Background(), "abc")
	p.SetToken(context.Background(), "")

	waitView(t, p)
	assert.Equal(t, ProfileIdle, p.Status())
}

func TestProfileView_WaitHonorsContext(t *testing.T) {
	log, _ := newObservedLogger()
	svc := &fakeService{gates: map[string]chan struct{}{"abc": make(chan struct{})}}
	p := NewProfileView(svc, log)
	defer p.Close()

	p.SetToken(context.Background(), "abc")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, p.Wait(ctx), context.DeadlineExceeded)
}

func TestProfileView_CloseStopsLoading(t *testing.T) {
	log, _ := newObservedLogger()
	svc := &fakeService{gates: map[string]chan struct{}{"abc": make(chan struct{})}}
	p := NewProfileView(svc, log)

	p.SetToken(context.Background(), "abc")
	p.Close()

	waitView(t, p)
	assert.Equal(t, ProfileIdle, p.Status())
}

func TestProfileStatus_String(t *testing.T) {
	assert.Equal(t, "loading", ProfileLoading.String())
	assert.Equal(t, "ProfileStatus(9)", ProfileStatus(9).String())
}
