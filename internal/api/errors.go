package api

import "errors"

// Error taxonomy shared by all resource packages. Handlers map these to HTTP
// classes; repositories wrap them with context via fmt.Errorf + %w.
var (
	// ErrNotFound covers both a genuinely missing record and a record owned
	// by someone else. The conflation is deliberate: callers must not be
	// able to probe for the existence of other users' records.
	ErrNotFound = errors.New("requested item not found")

	// ErrConflict signals a uniqueness violation, e.g. a duplicate email.
	ErrConflict = errors.New("item already exists or conflict")

	// ErrUnauthenticated covers every credential failure: missing, invalid
	// and expired tokens are externally indistinguishable beyond message text.
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")

	// ErrNotConfigured signals a feature disabled by missing configuration
	// (provider credentials, signing secret). Maps to 503, never a crash.
	ErrNotConfigured = errors.New("feature is not configured")
)
