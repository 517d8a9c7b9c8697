package transport

import (
	"errors"
	"fmt"
)

// RemoteError is returned when a service answers with a non-2xx status.
type RemoteError struct {
	Service    string
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	RequestID  string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s %s: unexpected status %d: %s", e.Service, e.Method, e.Path, e.StatusCode, string(e.Body))
}

// StatusCode returns the HTTP status carried by a RemoteError anywhere in
// err's chain, or 0 when there is none.
func StatusCode(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
