package quiz

import "fmt"

// TransportError means the remote call itself failed: network, auth,
// rate limit or a non-success status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// FormatError means the model output was not valid JSON.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("response is not valid JSON: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ShapeError means the output was JSON but not a list of questions.
// Index is the offending element, or -1 when the problem is the list itself.
type ShapeError struct {
	Index  int
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	if e.Err != nil {
		return fmt.Sprintf("question %d: %s: %v", e.Index+1, e.Reason, e.Err)
	}
	return fmt.Sprintf("question %d: %s", e.Index+1, e.Reason)
}

func (e *ShapeError) Unwrap() error { return e.Err }
