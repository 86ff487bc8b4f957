package process

import "fmt"

// SpawnError is returned by Instance.Start when a process could not be
// brought up; its Error() text is what the Supervisor renders in the
// FailedToStart process pane.
type SpawnError struct {
	Reason string
	Cause  error
}

func (e *SpawnError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

func (e *SpawnError) Unwrap() error { return e.Cause }

var errEmptyCommand = &SpawnError{Reason: "process config has an empty command vector"}

func newSpawnError(reason string, cause error) *SpawnError {
	return &SpawnError{Reason: reason, Cause: cause}
}
