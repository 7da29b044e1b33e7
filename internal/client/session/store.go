package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
)

// ErrNoSession is returned by Load when nothing has been saved.
var ErrNoSession = errors.New("no saved session")

const (
	keyUsername    = "username"
	keyAccessToken = "access_token"
)

// Saved is a persisted session.
type Saved struct {
	Username string
	Token    string
}

// Store keeps the last successful login in the local database.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save replaces the stored session atomically.
func (s *Store) Save(ctx context.Context, username, token string) error {
	if token == "" {
		return errors.New("refusing to save an empty token")
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyUsername, []byte(username)); err != nil {
			return err
		}
		return repo.Set(ctx, keyAccessToken, []byte(token))
	})
}

// Load returns the stored session or ErrNoSession.
func (s *Store) Load(ctx context.Context) (Saved, error) {
	records, err := metadata.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return Saved{}, fmt.Errorf("load session: %w", err)
	}

	token := records[keyAccessToken]
	if len(token) == 0 {
		return Saved{}, ErrNoSession
	}
	return Saved{Username: string(records[keyUsername]), Token: string(token)}, nil
}

// Clear forgets the stored session. The metadata table holds nothing but
// session keys, so it is emptied. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Clear(ctx)
	})
}
