package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork indicates a transport-level failure reaching the
	// completion endpoint. Requests are not retried.
	ErrNetwork = errors.New("llm: request failed")

	// ErrResponseShape indicates the endpoint responded, but without the
	// structure the client expects (e.g. no choices, missing message
	// content).
	ErrResponseShape = errors.New("llm: unexpected response shape")
)

// ArgumentParseError records a tool-call entry whose argument payload was
// not well-formed JSON. The entry is dropped from the batch; remaining
// entries are unaffected.
type ArgumentParseError struct {
	ID   string // tool call id as reported by the endpoint
	Name string // function name of the dropped entry
	Err  error
}

func (e *ArgumentParseError) Error() string {
	return fmt.Sprintf("llm: tool call %s (%s): malformed arguments: %v", e.ID, e.Name, e.Err)
}

func (e *ArgumentParseError) Unwrap() error {
	return e.Err
}
