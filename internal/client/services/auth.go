// Package services contains application services for the authkeeper client.
// This file defines the authentication service: the three thin wrappers
// around the remote register, login and profile operations.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// AuthService defines authentication operations for the UI layer.
//
// Contract:
//   - Register: create an account; the returned data is informational.
//   - Login: exchange credentials for a bearer token.
//   - Profile: fetch the profile of the token's owner.
//   - Close: release underlying client resources.
//
// Failures are logged here and returned unchanged to the caller. No call is
// retried. All methods honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, reg models.Registration) (*models.Account, error)
	Login(ctx context.Context, cred models.Credentials) (string, error)
	Profile(ctx context.Context, token string) (*models.Profile, error)
	Close() error
}

// authService is the concrete AuthService backed by a remote Client.
type authService struct {
	client client.Client
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(c client.Client, log logging.Logger) AuthService {
	return &authService{client: c, log: log}
}

func (a *authService) Register(ctx context.Context, reg models.Registration) (*models.Account, error) {
	acc, err := a.client.Register(ctx, reg)
	if err != nil {
		a.log.Error(ctx, "error registering user", "username", reg.Username, "error", err)
		return nil, err
	}
	a.log.Info(ctx, "user registered", "username", reg.Username, "message", acc.Message)
	return acc, nil
}

func (a *authService) Login(ctx context.Context, cred models.Credentials) (string, error) {
	resp, err := a.client.Login(ctx, cred)
	if err != nil {
		a.log.Error(ctx, "error logging in", "username", cred.Username, "error", err)
		return "", err
	}

	token := resp.BearerToken()
	if token == "" {
		a.log.Error(ctx, "error logging in", "username", cred.Username, "error", client.ErrNoToken)
		return "", client.ErrNoToken
	}
	a.log.Info(ctx, "login successful", "username", cred.Username, "token_type", resp.TokenType)
	return token, nil
}

func (a *authService) Profile(ctx context.Context, token string) (*models.Profile, error) {
	if token == "" {
		return nil, fmt.Errorf("fetch profile: %w", client.ErrUnauthorized)
	}

	resp, err := a.client.Profile(ctx, token)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			a.log.Debug(ctx, "profile request canceled")
		} else {
			a.log.Error(ctx, "error fetching profile", "error", err)
		}
		return nil, err
	}
	return &resp.User, nil
}

func (a *authService) Close() error {
	return a.client.Close()
}
