package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistenceWrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Persistence("create order", cause)

	var pErr *ErrPersistence
	require.True(t, stderrors.As(err, &pErr))
	assert.Equal(t, "create order", pErr.Op)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPersistenceNil(t *testing.T) {
	assert.NoError(t, Persistence("noop", nil))
}

func TestErrorsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", &ErrNotFound{Resource: "order", ID: "42"})

	var nf *ErrNotFound
	require.True(t, stderrors.As(err, &nf))
	assert.Equal(t, "order not found: 42", nf.Error())
}

func TestValidationDefaultMessage(t *testing.T) {
	assert.Equal(t, "validation failed", (&ErrValidation{}).Error())
	assert.Equal(t, "cliente_tienda is required", (&ErrValidation{Message: "cliente_tienda is required"}).Error())
}

func TestUpstreamNotificationMessage(t *testing.T) {
	err := &ErrUpstreamNotification{Channel: "whatsapp", Status: 400, Err: stderrors.New("bad template")}
	assert.Equal(t, "whatsapp notification failed with status 400: bad template", err.Error())

	err = &ErrUpstreamNotification{Channel: "email", Err: stderrors.New("dial tcp: timeout")}
	assert.Equal(t, "email notification failed: dial tcp: timeout", err.Error())
}
