package client

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError_Detail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "string detail", status: 400, body: `{"detail":"Invalid username or password"}`, want: "Invalid username or password"},
		{
			name:   "validation list",
			status: 422,
			body:   `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error"}]}`,
			want:   "email: value is not a valid email address",
		},
		{name: "plain text", status: 502, body: "bad gateway\n", want: "bad gateway"},
		{name: "empty body", status: 500, body: "", want: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, tt.want, err.Detail)
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, &APIError{StatusCode: http.StatusUnauthorized}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{StatusCode: http.StatusForbidden}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{StatusCode: http.StatusServiceUnavailable}, ErrUnavailable)
	assert.False(t, errors.Is(&APIError{StatusCode: http.StatusBadRequest}, ErrUnauthorized))
	assert.False(t, errors.Is(&APIError{StatusCode: http.StatusInternalServerError}, ErrUnavailable))
}

func TestEmbeddedError(t *testing.T) {
	got := embeddedError([]byte(`{"status_code":500,"detail":"400: Username or Email already exists","headers":null}`))
	if assert.NotNil(t, got) {
		assert.Equal(t, 500, got.StatusCode)
		assert.Equal(t, "400: Username or Email already exists", got.Detail)
	}

	assert.Nil(t, embeddedError([]byte(`{"message":"User registered successfully"}`)))
	assert.Nil(t, embeddedError([]byte(`not json`)))
}
