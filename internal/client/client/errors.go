package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoToken      = errors.New("no access token in login response")
)

// APIError is a failure reported by the service, either through a non-2xx
// status or through an error envelope embedded in a 2xx body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("service error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("service error (status %d): %s", e.StatusCode, e.Detail)
}

// Unwrap lets callers match auth and availability failures with errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return nil
	}
}

// errorEnvelope matches the service's error bodies. Detail is either a
// string or a list of validation problems.
type errorEnvelope struct {
	StatusCode int             `json:"status_code"`
	Detail     json.RawMessage `json:"detail"`
}

type validationProblem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// newAPIError builds an APIError for status from the raw response body.
func newAPIError(status int, body []byte) *APIError {
	detail := ""
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Detail) > 0 {
		detail = decodeDetail(env.Detail)
	} else {
		detail = strings.TrimSpace(string(body))
	}
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Detail: detail}
}

// embeddedError reports an error envelope carried by a 2xx body, as sent
// by services that return their exception object instead of raising it.
func embeddedError(body []byte) *APIError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	if env.StatusCode < http.StatusBadRequest {
		return nil
	}
	return &APIError{StatusCode: env.StatusCode, Detail: decodeDetail(env.Detail)}
}

func decodeDetail(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var problems []validationProblem
	if err := json.Unmarshal(raw, &problems); err == nil && len(problems) > 0 {
		msgs := make([]string, 0, len(problems))
		for _, p := range problems {
			field := ""
			if n := len(p.Loc); n > 0 {
				field = fmt.Sprint(p.Loc[n-1])
			}
			if field != "" {
				msgs = append(msgs, field+": "+p.Msg)
			} else {
				msgs = append(msgs, p.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}
