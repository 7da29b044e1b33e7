package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/client/token"
)

// StartExpiryWatcher checks the held token's exp claim every interval and
// marks the session expired once it has passed. The token is kept: the
// service is the one that rejects it. Blocks until ctx is done.
func (a *App) StartExpiryWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkExpiry(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkExpiry(ctx context.Context) {
	tok, ok := session.TokenOf(a.view.State())
	if !ok {
		return
	}
	info, err := token.Inspect(tok)
	if err != nil {
		// opaque tokens carry no expiry
		return
	}
	if info.Expired(a.now()) && !a.expired.Swap(true) {
		a.log.Warn(ctx, "session token expired", "expired_at", info.ExpiresAt)
	}
}
