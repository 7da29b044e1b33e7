package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/dmitrijs2005/authkeeper/internal/client/services"
	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/client/views"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// App is one running client: its services, the view tree, and the terminal
// it talks to.
type App struct {
	config      *config.Config
	log         logging.Logger
	authService services.AuthService
	view        *views.Container

	reader *bufio.Reader
	ttyFd  int
	out    io.Writer

	userName string
	expired  atomic.Bool
	now      func() time.Time

	db    *sql.DB
	store *session.Store
}

// NewApp builds an App talking to the service at c.ServerURL. Input is read
// from in; views and prompts are written to out.
func NewApp(c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, client.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return newApp(c, log, services.NewAuthService(apiClient, log), in, out), nil
}

func newApp(c *config.Config, log logging.Logger, as services.AuthService, in io.Reader, out io.Writer) *App {
	a := &App{
		config:      c,
		log:         log,
		authService: as,
		view:        views.NewContainer(as, log),
		reader:      bufio.NewReader(in),
		ttyFd:       -1,
		out:         out,
		now:         time.Now,
	}
	if f, ok := in.(*os.File); ok {
		a.ttyFd = int(f.Fd())
	}
	return a
}

func (a *App) isLoggedIn() bool {
	_, ok := session.TokenOf(a.view.State())
	return ok
}

// sessionStore opens the session database on first use.
func (a *App) sessionStore(ctx context.Context) (*session.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	db, err := client.InitDatabase(ctx, a.config.SessionDB)
	if err != nil {
		a.log.Error(ctx, "error initializing session database", "path", a.config.SessionDB, "error", err)
		return nil, err
	}
	a.db = db
	a.store = session.NewStore(db)
	return a.store, nil
}

// Close releases the API client and the session database.
func (a *App) Close() error {
	a.view.Logout()
	errs := []error{a.authService.Close()}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
