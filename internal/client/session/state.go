// Package session models whether the client holds an access token, and
// persists that session between CLI invocations.
package session

// State is either LoggedOut or LoggedIn. There is no third case.
type State interface {
	isState()
}

// LoggedOut means no token is held.
type LoggedOut struct{}

// LoggedIn carries a non-empty access token.
type LoggedIn struct {
	Token string
}

func (LoggedOut) isState() {}
func (LoggedIn) isState()  {}

// FromToken maps a raw token to a State. The token is not validated: any
// non-empty string counts as logged in.
func FromToken(token string) State {
	if token == "" {
		return LoggedOut{}
	}
	return LoggedIn{Token: token}
}

// TokenOf returns the token of s and whether s is LoggedIn.
func TokenOf(s State) (string, bool) {
	in, ok := s.(LoggedIn)
	if !ok {
		return "", false
	}
	return in.Token, true
}
