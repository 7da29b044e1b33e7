// Package cli provides the authkeeper command-line client.
//
// It wires configuration, logging, the HTTP API client and the view layer
// into a cobra command tree. Running the binary without a subcommand starts
// an interactive shell that drives a views.Container: register, log in, and
// look at the profile of the logged-in user.
//
// One-shot commands (login, profile, whoami, logout) share a session through
// a local SQLite database; the shell always starts logged out.
//
// See Execute, App.Root and runREPL for the entry points.
package cli
