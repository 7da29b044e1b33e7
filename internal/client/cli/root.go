package cli

import (
	"context"
	"fmt"
)

// getStatus is the prompt decoration: "(alice)" when logged in,
// "(alice expired)" once the expiry watcher has seen the token run out.
func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	s := a.userName
	if a.expired.Load() {
		s += " expired"
	}
	return fmt.Sprintf("(%s) ", s)
}

// Root runs the interactive shell until the user exits or ctx is done. The
// shell starts logged out.
func (a *App) Root(ctx context.Context) {
	a.log.Info(ctx, "shell started", "server", a.config.ServerURL)
	fmt.Fprintln(a.out, "Welcome to authkeeper (type 'help' for commands)")

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartExpiryWatcher(wctx, a.config.ExpiryCheckInterval)

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.getStatus, a.reader, a.out)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		fmt.Fprintln(a.out)
	}
}
