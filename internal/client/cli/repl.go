package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Show(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop over reader.
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - show             render the current view
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - show             render the profile
//	  - whoami           print the token's claims
//	  - logout           log out
//	  - exit | quit      leave the program
//
// Errors returned by command handlers are not printed here; handlers print
// their own one-line feedback and the service layer logs the details. The
// loop exits on EOF, on "exit"/"quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "authkeeper %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: show, whoami, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, show, exit")
			}

		case "register", "login":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Already logged in, run logout first")
				continue
			}
			if cmd == "register" {
				_ = a.Register(ctx)
			} else {
				_ = a.Login(ctx)
			}

		case "show":
			_ = a.Show(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			if !a.isLoggedIn() {
				fmt.Fprintln(w, "Not logged in")
				continue
			}
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
