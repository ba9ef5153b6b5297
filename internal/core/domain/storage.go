package domain

import "fmt"

// StorageError reports a failed artifact store call. A zero StatusCode means
// no response was received (network or timeout); a non-zero StatusCode means
// the remote service rejected the request, with Body carrying its response
// for diagnostics.
type StorageError struct {
	Op         string // "put" or "delete"
	StatusCode int
	Body       string
	Err        error
}

func (e *StorageError) Error() string {
	if e.Rejected() {
		return fmt.Sprintf("artifact store %s rejected: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("artifact store %s unreachable: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Rejected reports whether a response was received at all.
func (e *StorageError) Rejected() bool { return e.StatusCode != 0 }
