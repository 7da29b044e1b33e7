package apitest

import "golang.org/x/crypto/bcrypt"

// AddUser registers an account directly and returns its id.
func (s *Server) AddUser(username, email, password string) (int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.users[username] = &user{id: id, username: username, email: email, passwordHash: hash}
	s.nextID++
	return id, nil
}
