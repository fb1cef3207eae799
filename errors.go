package bring

import "errors"

// The client maps every failure onto a small closed set of error kinds.
// Callers are expected to match with errors.Is rather than on message text;
// the wrapped messages carry the operation-specific context.
var (
	// ErrAuth marks invalid credentials, rejected refresh tokens and
	// authorization failures that survive the single token-refresh retry.
	ErrAuth = errors.New("authentication failed")

	// ErrRequest marks transport-level failures: timeouts, connection
	// errors and non-2xx responses that are not authorization failures.
	ErrRequest = errors.New("request failed")

	// ErrParse marks response bodies that cannot be decoded into the
	// expected shape, including bodies missing required fields.
	ErrParse = errors.New("response parsing failed")

	// ErrTranslation marks catalog dictionary lookups that fail because
	// the dictionary for the requested locale is missing or not loaded.
	ErrTranslation = errors.New("article translation failed")

	// ErrUserUnknown is returned by DoesUserExist when the service reports
	// that no account exists for the given e-mail address.
	ErrUserUnknown = errors.New("user unknown")

	// ErrEmailInvalid is returned by DoesUserExist when the existence
	// check fails for any reason other than a missing account.
	ErrEmailInvalid = errors.New("e-mail invalid")
)
