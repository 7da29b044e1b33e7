// Package client contains the transport layer of the authkeeper CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the three
//     service operations: Register, Login and Profile.
//  2. An HTTP implementation (see HTTPClient). Registration is sent as JSON,
//     login as an urlencoded form, and the profile request carries an
//     "Authorization: Bearer <token>" header. Each request gets a fresh
//     X-Request-ID.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     session store, backed by SQLite and embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses become *APIError. Errors can be matched with errors.Is:
// ErrUnauthorized (401/403), ErrUnavailable (network failures and 502-504).
// ErrNoToken is returned by higher layers when a login response carries no
// token. Caller cancellation is returned as the context's error.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations honor ctx.
package client
