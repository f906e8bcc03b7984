package search

import "fmt"

// Error codes for the search package (spec section 7).
const (
	ErrCodeInvalidRequest             = 1
	ErrCodeCancellationRequested      = 2
	ErrCodeInternalInvariantViolation = 3
)

// Error is a structured error type for the search package, the same
// {code, message, details} shape internal/hasher uses for its own
// structured errors.
type Error struct {
	Code    int
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("search: [%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("search: [%d] %s", e.Code, e.Message)
}

func newError(code int, message string, details string) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// InvalidRequestError reports a request that fails validation before any
// worker starts.
func InvalidRequestError(details string) error {
	return newError(ErrCodeInvalidRequest, "invalid search request", details)
}

// CancellationRequestedError reports that an external caller cancelled a
// search in progress (spec section 7). Search itself still returns a nil
// error and the partial results gathered so far in this case — the
// caller asked to stop, that is not a failure — this constructor exists
// for the diagnostic log line a worker emits when it first observes the
// cancellation.
func CancellationRequestedError(details string) error {
	return newError(ErrCodeCancellationRequested, "cancellation requested", details)
}

// InternalInvariantViolationError reports a fatal invariant break (for
// example, a calendar that doesn't cover all 84 days) that aborts the
// search.
func InternalInvariantViolationError(details string) error {
	return newError(ErrCodeInternalInvariantViolation, "internal invariant violation", details)
}
