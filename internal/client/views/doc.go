// Package views holds the terminal components of the client: the session
// Container, the registration and login forms, and the profile view.
//
// Components render plain text into an io.Writer. The Container owns the
// only shared state, the session token; LoginForm pushes a new token through
// the Container's setter and the Container mounts a ProfileView for it.
package views
