package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// User is one entry of the credential allow-list.
type User struct {
	Email        string
	Name         string
	PasswordHash string // bcrypt
	TOTPSecret   string // base32 shared secret for the authenticator app
}

// CredentialStore resolves login emails to allow-list entries. Injected so
// deployments and tests choose where credentials live; nothing is hardcoded.
type CredentialStore interface {
	Lookup(email string) (User, bool)
}

// StaticStore is a CredentialStore over an in-memory list.
type StaticStore struct {
	users map[string]User
}

// NewStaticStore builds a store from explicit entries.
func NewStaticStore(users []User) *StaticStore {
	m := make(map[string]User, len(users))
	for _, u := range users {
		m[strings.ToLower(u.Email)] = u
	}
	return &StaticStore{users: m}
}

// ParseUsers parses the AUTH_USERS environment format:
// semicolon-separated "email:name:bcryptHash:totpSecret" records. The bcrypt
// hash contains '$' but never ':', so a plain split is safe.
func ParseUsers(raw string) (*StaticStore, error) {
	var users []User
	for _, record := range strings.Split(raw, ";") {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		parts := strings.Split(record, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("malformed AUTH_USERS record %q", record)
		}
		users = append(users, User{
			Email:        parts[0],
			Name:         parts[1],
			PasswordHash: parts[2],
			TOTPSecret:   parts[3],
		})
	}
	return NewStaticStore(users), nil
}

// Lookup implements CredentialStore.
func (s *StaticStore) Lookup(email string) (User, bool) {
	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	return u, ok
}

// CheckPassword verifies a candidate password against the stored bcrypt hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
