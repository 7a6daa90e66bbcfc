package auth

import (
	"context"
	"crypto/subtle"
)

// DefaultPassword is used when no admin password is configured.
const DefaultPassword = "moneyroutine-admin"

// SharedSecret accepts exactly one configured password.
type SharedSecret struct {
	secret []byte
}

func NewSharedSecret(password string) *SharedSecret {
	if password == "" {
		password = DefaultPassword
	}
	return &SharedSecret{secret: []byte(password)}
}

func (s *SharedSecret) Verify(_ context.Context, password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), s.secret) == 1
}
