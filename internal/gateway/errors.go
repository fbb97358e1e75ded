package gateway

import "fmt"

// NetworkError wraps a transport-level failure. The affected operation
// leaves local state unchanged, so a user-initiated retry re-submits
// the same request; the core never retries on its own.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response from the backend.
type ServerError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.Status)
	}

	return fmt.Sprintf("%s: server returned status %d: %s", e.Op, e.Status, e.Message)
}
