package client

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

// Client is the transport contract for the remote authentication service.
type Client interface {
	Register(ctx context.Context, reg models.Registration) (*models.Account, error)
	Login(ctx context.Context, cred models.Credentials) (*models.TokenResponse, error)
	Profile(ctx context.Context, token string) (*models.ProfileResponse, error)
	Close() error
}
