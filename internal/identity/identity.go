package identity

import "strings"

// Sessions is the identity collaborator. The service only ever asks whether a
// presented credential belongs to an authenticated session; sign-in, sign-out
// and session issuance live outside this codebase.
type Sessions interface {
	IsAuthenticated(token string) bool
}

// StaticSessions authenticates a single pre-shared API token. An empty
// configured token accepts any non-empty bearer token, which keeps local
// development frictionless.
type StaticSessions struct {
	Token string
}

// IsAuthenticated reports whether the token is acceptable.
func (s StaticSessions) IsAuthenticated(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	expected := strings.TrimSpace(s.Token)
	if expected == "" {
		return true
	}
	return token == expected
}

var _ Sessions = StaticSessions{}
