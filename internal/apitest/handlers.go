package apitest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type validationProblem struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func writeValidation(w http.ResponseWriter, problems []validationProblem) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": problems})
}

type registration struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeValidation(w, []validationProblem{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}})
		return
	}

	var problems []validationProblem
	for _, f := range []struct {
		name string
		v    *string
	}{{"username", reg.Username}, {"email", reg.Email}, {"password", reg.Password}} {
		if f.v == nil {
			problems = append(problems, validationProblem{Loc: []string{"body", f.name}, Msg: "Field required", Type: "missing"})
		}
	}
	if reg.Email != nil {
		if _, err := mail.ParseAddress(*reg.Email); err != nil {
			problems = append(problems, validationProblem{
				Loc:  []string{"body", "email"},
				Msg:  "value is not a valid email address",
				Type: "value_error",
			})
		}
	}
	if len(problems) > 0 {
		writeValidation(w, problems)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*reg.Password), bcrypt.MinCost)
	if err != nil {
		writeEmbeddedError(w, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.username == *reg.Username || strings.EqualFold(u.email, *reg.Email) {
			writeEmbeddedError(w, "400: Username or Email already exists")
			return
		}
	}
	s.users[*reg.Username] = &user{
		id:           s.nextID,
		username:     *reg.Username,
		email:        *reg.Email,
		passwordHash: hash,
	}
	s.nextID++

	writeJSON(w, http.StatusOK, map[string]any{"message": "User registered successfully"})
}

// writeEmbeddedError answers 200 with an exception object in the body,
// the way the real service reports registration failures.
func writeEmbeddedError(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status_code": http.StatusInternalServerError,
		"detail":      detail,
		"headers":     nil,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeValidation(w, []validationProblem{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}})
		return
	}

	var problems []validationProblem
	for _, name := range []string{"username", "password"} {
		if _, ok := r.PostForm[name]; !ok {
			problems = append(problems, validationProblem{Loc: []string{"body", name}, Msg: "Field required", Type: "missing"})
		}
	}
	if len(problems) > 0 {
		writeValidation(w, problems)
		return
	}

	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")

	s.mu.Lock()
	u, ok := s.users[username]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error: 400: Invalid username or password")
		return
	}

	tok, err := s.issueToken(u.username, u.id)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"access_token": tok, "token_type": "bearer"})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	raw, ok := bearerToken(r)
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	s.mu.Lock()
	gate := s.profileGate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	c, err := s.parseToken(raw)
	if err != nil {
		detail := "Invalid token"
		if errors.Is(err, errTokenExpired) {
			detail = "Token expired"
		}
		writeDetail(w, http.StatusUnauthorized, detail)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome!",
		"user": map[string]any{
			"user_id":  c.UserID,
			"username": c.Subject,
		},
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, tok, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || tok == "" {
		return "", false
	}
	return tok, true
}
