package service

import "context"

// Authenticator decides whether an admin credential is valid.
type Authenticator interface {
	Verify(ctx context.Context, password string) bool
}
