package assistant

import (
	"errors"
	"fmt"
)

// ErrEmptyPrompt is returned when the trimmed prompt is empty. No request is
// sent in that case.
var ErrEmptyPrompt = errors.New("prompt cannot be empty")

// Kind groups query failures by how they happened.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindTransport
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// TransportError covers unreachable servers, timeouts and non-2xx replies.
type TransportError struct {
	StatusCode int
	Status     string
	// Detail is the backend's own error description, when it sent one.
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("query endpoint returned %s: %v", e.Status, e.Err)
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("query endpoint returned %s: %s", e.Status, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("query endpoint returned %s", e.Status)
	default:
		return fmt.Sprintf("query endpoint unreachable: %v", e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is a successful status whose body is not a valid answer.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed answer: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed answer: %s", e.Reason)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Classify maps an error returned by Query onto a Kind. Unknown errors count
// as transport failures since they surface the same way to the user.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrEmptyPrompt) {
		return KindValidation
	}
	var protocolErr *ProtocolError
	if errors.As(err, &protocolErr) {
		return KindProtocol
	}
	return KindTransport
}
