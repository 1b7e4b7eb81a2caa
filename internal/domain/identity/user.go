package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

// UsersCollection holds one document per user, keyed by lowercase username
const UsersCollection = "diversey_users"

// saltBytes is the number of random bytes in a password salt
const saltBytes = 16

// User is the account document read by the web application at login.
// LastLoginAt and LockedUntil are written as null for a new account.
type User struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	Role        Role    `json:"role"`
	Active      bool    `json:"active"`
	Salt        string  `json:"salt"`
	PassHash    string  `json:"passHash"`
	CreatedAt   string  `json:"createdAt"`
	LastLoginAt *string `json:"lastLoginAt"`
	LockedUntil *string `json:"lockedUntil"`
	Attempts    int     `json:"attempts"`
}

// NewUser creates an active account with a freshly salted password hash.
// Salt bytes are read from random; pass nil for crypto/rand.
func NewUser(username, displayName, password string, role Role, now time.Time, random io.Reader) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.InvalidInput("username cannot be empty")
	}
	if strings.Contains(username, "/") {
		return nil, shared.InvalidInput("username cannot contain '/'")
	}
	if password == "" {
		return nil, shared.InvalidInput("password cannot be empty")
	}
	if !role.Valid() {
		return nil, shared.InvalidInput(fmt.Sprintf("invalid role %q", role))
	}

	salt, err := NewSalt(random)
	if err != nil {
		return nil, err
	}

	return &User{
		Username:    username,
		DisplayName: displayName,
		Role:        role,
		Active:      true,
		Salt:        salt,
		PassHash:    HashPassword(salt, password),
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}, nil
}

// Key returns the document key of the user
func (u *User) Key() string {
	return strings.ToLower(u.Username)
}

// Path returns the document path below root
func (u *User) Path(root string) string {
	return shared.JoinPath(root, UsersCollection, u.Key())
}

// NewSalt returns saltBytes random bytes as lowercase hex
func NewSalt(random io.Reader) (string, error) {
	if random == nil {
		random = rand.Reader
	}
	buf := make([]byte, saltBytes)
	if _, err := io.ReadFull(random, buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword returns hex(sha256(salt + password)), the scheme the web
// application checks at login
func HashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
