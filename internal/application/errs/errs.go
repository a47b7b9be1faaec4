package errs

import "fmt"

// ValidationError marks malformed or missing input. Checked before any
// external call is made.
type ValidationError struct {
	Msg string
}

func (t ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", t.Msg)
}

// ModerationError marks content the safety classifier rejected. Not a
// format failure and never retried.
type ModerationError struct {
	Reason string
}

func (t ModerationError) Error() string {
	return fmt.Sprintf("content rejected by moderation: %v", t.Reason)
}

// ContractError marks model output that does not match the expected
// structured format even after recovery. Deterministic, never retried.
type ContractError struct {
	Err error
}

func (t ContractError) Error() string {
	return fmt.Sprintf("model output contract violated: %v", t.Err)
}

// RetryableError marks transient upstream failures (model, payment,
// storage, database transport).
type RetryableError struct {
	Err error
}

func (t RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %v", t.Err)
}

type NotFoundError struct {
	Msg string
}

func (t NotFoundError) Error() string {
	return fmt.Sprintf("not found: %v", t.Msg)
}

// RemoteAuthError carries the credential authority's status and message
// verbatim to the caller.
type RemoteAuthError struct {
	Status  int
	Message string
}

func (t RemoteAuthError) Error() string {
	return fmt.Sprintf("authority returned %d: %v", t.Status, t.Message)
}
