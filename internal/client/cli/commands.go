package cli

import (
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/spf13/cobra"
)

// runner carries the state shared by the command tree: the terminal streams
// and the App built by the root's PersistentPreRunE.
type runner struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	newApp func(c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error)

	app *App
	log logging.Logger
}

func newRunner(in io.Reader, out, errOut io.Writer) *runner {
	return &runner{in: in, out: out, errOut: errOut, newApp: NewApp}
}

// Execute runs the authcli command tree against the process's terminal.
func Execute(ctx context.Context) error {
	r := newRunner(os.Stdin, os.Stdout, os.Stderr)
	defer r.close()
	return newRootCommand(r).ExecuteContext(ctx)
}

func (r *runner) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogBackend, cfg.LogLevel, r.errOut)
	if err != nil {
		return err
	}
	app, err := r.newApp(cfg, log, r.in, r.out)
	if err != nil {
		return err
	}
	r.log, r.app = log, app
	return nil
}

func (r *runner) close() {
	if r.app != nil {
		if err := r.app.Close(); err != nil {
			r.log.Warn(context.Background(), "error closing app", "error", err)
		}
	}
	if s, ok := r.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

func newRootCommand(r *runner) *cobra.Command {
	root := &cobra.Command{
		Use:          "authcli",
		Short:        "Terminal client for the authentication service",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return r.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			r.app.Root(cmd.Context())
			return nil
		},
	}
	root.SetIn(r.in)
	root.SetOut(r.out)
	root.SetErr(r.errOut)

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		shellCmd(r),
		registerCmd(r),
		loginCmd(r),
		profileCmd(r),
		whoamiCmd(r),
		logoutCmd(r),
		versionCmd(r),
	)
	return root
}

func shellCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r.app.Root(cmd.Context())
			return nil
		},
	}
}

func registerCmd(r *runner) *cobra.Command {
	var username, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.app.register(cmd.Context(), username, email)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username (prompted if empty)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted if empty)")
	return cmd
}

func loginCmd(r *runner) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.app.login(cmd.Context(), username)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username (prompted if empty)")
	return cmd
}

func profileCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Fetch and show the profile of the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.app.Profile(cmd.Context())
		},
	}
}

func whoamiCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the claims of the saved token without contacting the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.app.whoAmISaved(cmd.Context())
		},
	}
}

func logoutCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.app.Logout(cmd.Context())
		},
	}
}

func versionCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(*cobra.Command, []string) error {
			buildinfo.PrintBuildData(r.out)
			return nil
		},
	}
}
