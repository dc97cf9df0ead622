package errors

import "net/http"

// Kind classifies an error into the taxonomy.
type Kind int

const (
	// KindUnknown is any error outside the taxonomy.
	KindUnknown Kind = iota
	// KindTransport covers network, abort, decode and status failures.
	KindTransport
	// KindNotFound covers missing entities, shelves and store-fronts.
	KindNotFound
	// KindValidation covers caller mistakes.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "TransportFailure"
	case KindNotFound:
		return "NotFound"
	case KindValidation:
		return "ValidationFailure"
	default:
		return "Unknown"
	}
}

// KindOf returns the taxonomy kind of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case IsValidationError(err):
		return KindValidation
	case IsNotFoundError(err):
		return KindNotFound
	case IsTransportError(err):
		return KindTransport
	default:
		return KindUnknown
	}
}

// DefaultCode returns the envelope code used for err when no HTTP status
// applies.
func DefaultCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
