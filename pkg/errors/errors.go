package errors

import (
	"fmt"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when a request is missing required fields or has an unexpected shape
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrPersistence wraps a data store failure (constraint violation, connectivity, pool exhaustion)
type ErrPersistence struct {
	Op  string
	Err error
}

func (e *ErrPersistence) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("persistence error in %s", e.Op)
	}
	return fmt.Sprintf("persistence error in %s: %v", e.Op, e.Err)
}

func (e *ErrPersistence) Unwrap() error {
	return e.Err
}

// ErrUpstreamNotification is returned by notifiers when the email or chat provider rejects a message.
// It is only ever logged.
type ErrUpstreamNotification struct {
	Channel string
	Status  int
	Err     error
}

func (e *ErrUpstreamNotification) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s notification failed with status %d: %v", e.Channel, e.Status, e.Err)
	}
	return fmt.Sprintf("%s notification failed: %v", e.Channel, e.Err)
}

func (e *ErrUpstreamNotification) Unwrap() error {
	return e.Err
}

// Persistence wraps err as an ErrPersistence for op. A nil err stays nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ErrPersistence{Op: op, Err: err}
}
