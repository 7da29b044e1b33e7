package views

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeService implements Service. Profile calls for a token listed in gates
// block until the gate is closed; with ignoreCancel set they also ignore
// context cancellation, which simulates a response that arrives late.
type fakeService struct {
	mu sync.Mutex

	regs   []models.Registration
	regErr error

	creds      []models.Credentials
	loginToken string
	loginErr   error

	profiles     map[string]*models.Profile
	profileErr   error
	gates        map[string]chan struct{}
	ignoreCancel bool
	fetched      []string
}

func (f *fakeService) Register(_ context.Context, reg models.Registration) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs = append(f.regs, reg)
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.Account{Message: "User registered successfully"}, nil
}

func (f *fakeService) Login(_ context.Context, cred models.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creds = append(f.creds, cred)
	return f.loginToken, f.loginErr
}

func (f *fakeService) Profile(ctx context.Context, token string) (*models.Profile, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, token)
	gate := f.gates[token]
	prof := f.profiles[token]
	err := f.profileErr
	ignore := f.ignoreCancel
	f.mu.Unlock()

	if gate != nil {
		if ignore {
			<-gate
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, errors.New("unknown token")
	}
	return prof, nil
}

func (f *fakeService) fetchedTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

func newObservedLogger() (logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.NewZapLogger(zap.New(core)), logs
}
