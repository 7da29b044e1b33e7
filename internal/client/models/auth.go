// Package models defines the data exchanged with the authentication service.
package models

// Registration carries new-account credentials. It only lives for the
// duration of a register call.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials carries login credentials. Email is deliberately absent: the
// login endpoint accepts username and password only.
type Credentials struct {
	Username string
	Password string
}

// TokenResponse is the body returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token,omitempty"`
	TokenType   string `json:"token_type"`
}

// BearerToken returns access_token, falling back to token for services
// that use the shorter name.
func (r TokenResponse) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// Account is the created-account data returned by registration.
type Account struct {
	Message string `json:"message"`
}
