// Package session is the boundary to the authentication transport: it
// exposes the principal asserted for the current session and a logout
// action. Token issuance and refresh live outside this module.
package session

import "context"

// Principal is the identity asserted by the authentication boundary.
type Principal struct {
	ID    string
	Email string
}

// Session supplies the authenticated principal for the duration of a
// session.
type Session interface {
	Principal() Principal
	Logout(ctx context.Context)
}

// StaticSession wraps an already-authenticated principal. Logout invokes
// the callback supplied by the hosting application, if any.
type StaticSession struct {
	principal Principal
	onLogout  func(ctx context.Context)
}

// NewStaticSession creates a session for the given principal.
func NewStaticSession(principal Principal, onLogout func(ctx context.Context)) *StaticSession {
	return &StaticSession{principal: principal, onLogout: onLogout}
}

func (s *StaticSession) Principal() Principal {
	return s.principal
}

func (s *StaticSession) Logout(ctx context.Context) {
	if s.onLogout != nil {
		s.onLogout(ctx)
	}
}
