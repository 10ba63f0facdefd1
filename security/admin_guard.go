package security

import (
	"crypto/subtle"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"golang.org/x/crypto/bcrypt"
)

const adminKeyHeader = "X-Admin-Key"

// AdminGuard gates the admin surface with a static shared secret. When a
// bcrypt hash is configured it wins over the plain key, so production never
// stores the secret itself.
type AdminGuard struct {
	key  string
	hash string
}

func NewAdminGuard(key, hash string) *AdminGuard {
	return &AdminGuard{key: key, hash: hash}
}

// Verify reports whether the candidate matches the configured secret.
func (g *AdminGuard) Verify(candidate string) bool {
	if candidate == "" {
		return false
	}
	if g.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.hash), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.key), []byte(candidate)) == 1
}

// Require wraps a handler, rejecting requests without a valid admin key
// header.
func (g *AdminGuard) Require(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !g.Verify(e.Request.Header.Get(adminKeyHeader)) {
			return apis.NewUnauthorizedError("Invalid admin key", nil)
		}
		return next(e)
	}
}
