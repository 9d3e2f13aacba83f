package contractor

import "errors"

var (
	// ErrInvalidCredentials signals a failed email/password authentication.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken signals a registration against an existing email.
	ErrEmailTaken = errors.New("a contractor with this email already exists")
	// ErrNotFound signals a missing contractor account.
	ErrNotFound = errors.New("contractor not found")
)

// ValidationError signals a malformed profile update, e.g. an unresolvable
// timezone or an unsupported granularity.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return "validation failed: " + e.Reason
}
