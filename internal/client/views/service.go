package views

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, reg models.Registration) (*models.Account, error)
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, cred models.Credentials) (string, error)
}

// ProfileFetcher loads the profile owned by a token.
type ProfileFetcher interface {
	Profile(ctx context.Context, token string) (*models.Profile, error)
}

// Service is everything the Container needs. services.AuthService satisfies it.
type Service interface {
	Registrar
	Authenticator
	ProfileFetcher
}
