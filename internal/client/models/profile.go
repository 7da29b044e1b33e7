package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque user identifier. The service may send it as a JSON number
// or a JSON string; either way it is kept verbatim.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id must be a number or string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Profile is the authenticated user's public data.
type Profile struct {
	UserID   ID     `json:"user_id"`
	Username string `json:"username"`
}

// ProfileResponse is the body of GET /profile.
type ProfileResponse struct {
	Message string  `json:"message"`
	User    Profile `json:"user"`
}
