package client

import "fmt"

// ErrorKind classifies client errors so callers can branch without matching
// on message text.
type ErrorKind string

const (
	// KindNetwork covers transport failures: the request never produced a
	// decodable response.
	KindNetwork ErrorKind = "network"
	// KindEnvelope covers responses that are not a valid API envelope.
	KindEnvelope ErrorKind = "envelope"
	// KindBusiness covers envelopes with a non-zero error code.
	KindBusiness ErrorKind = "business"
	// KindAuth covers unauthorized responses. The stored session has been
	// cleared by the time the caller sees this error.
	KindAuth ErrorKind = "auth"
)

// Error is the error type returned by all Client operations.
type Error struct {
	Kind    ErrorKind
	Code    int    // envelope error_code, 0 when not applicable
	Message string // envelope error_msg or a transport description
	Raw     error  // underlying error, if any
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error %d: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Raw
}

// IsAuthError reports whether err is a client Error of kind auth.
func IsAuthError(err error) bool {
	clientErr, ok := err.(*Error)
	return ok && clientErr.Kind == KindAuth
}
