package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeAuth implements services.AuthService without a network.
type fakeAuth struct {
	token   string
	profile *models.Profile
	closed  bool
}

func (f *fakeAuth) Register(context.Context, models.Registration) (*models.Account, error) {
	return &models.Account{}, nil
}
func (f *fakeAuth) Login(context.Context, models.Credentials) (string, error) { return f.token, nil }
func (f *fakeAuth) Profile(context.Context, string) (*models.Profile, error) {
	return f.profile, nil
}
func (f *fakeAuth) Close() error { f.closed = true; return nil }

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "alice",
		"user_id": 1,
		"exp":     exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func newFakeApp(t *testing.T, fa *fakeAuth, input string) (*App, *bytes.Buffer, *observer.ObservedLogs) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SessionDB = filepath.Join(t.TempDir(), "session.db")

	core, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer
	a := newApp(cfg, logging.NewZapLogger(zap.New(core)), fa, strings.NewReader(input), &out)
	t.Cleanup(func() { _ = a.Close() })
	return a, &out, logs
}

func TestGetStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fa := &fakeAuth{profile: &models.Profile{UserID: "1", Username: "alice"}}
	a, _, logs := newFakeApp(t, fa, "")
	a.now = func() time.Time { return now }

	assert.Equal(t, "", a.getStatus())

	a.userName = "alice"
	a.view.SetToken(context.Background(), signedToken(t, now.Add(time.Hour)))
	assert.Equal(t, "(alice) ", a.getStatus())

	a.checkExpiry(context.Background())
	assert.Equal(t, "(alice) ", a.getStatus())

	a.now = func() time.Time { return now.Add(2 * time.Hour) }
	a.checkExpiry(context.Background())
	a.checkExpiry(context.Background())
	assert.Equal(t, "(alice expired) ", a.getStatus())
	assert.Equal(t, 1, logs.FilterMessage("session token expired").Len(), "warned once")
}

func TestCheckExpiry_OpaqueTokenNeverExpires(t *testing.T) {
	fa := &fakeAuth{profile: &models.Profile{UserID: "1", Username: "alice"}}
	a, _, _ := newFakeApp(t, fa, "")
	a.userName = "alice"
	a.view.SetToken(context.Background(), "abc")

	a.checkExpiry(context.Background())

	assert.Equal(t, "(alice) ", a.getStatus())
}

func TestStartExpiryWatcher_StopsWithContext(t *testing.T) {
	a, _, _ := newFakeApp(t, &fakeAuth{}, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartExpiryWatcher(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWhoAmI(t *testing.T) {
	exp := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	fa := &fakeAuth{token: signedToken(t, exp), profile: &models.Profile{UserID: "1", Username: "alice"}}
	a, out, _ := newFakeApp(t, fa, "alice\npw\n")
	a.now = func() time.Time { return exp.Add(-time.Minute) }

	require.ErrorIs(t, a.WhoAmI(context.Background()), errNotLoggedIn)
	assert.Equal(t, "Not logged in\n", out.String())

	require.NoError(t, a.Login(context.Background()))
	out.Reset()

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Equal(t, "Username: alice\nUser ID: 1\nExpires: 2026-03-01 13:00:00 UTC\n", out.String())
}

func TestClose_ReleasesService(t *testing.T) {
	fa := &fakeAuth{}
	a, _, _ := newFakeApp(t, fa, "")

	require.NoError(t, a.Close())
	assert.True(t, fa.closed)
}
