package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: CodeUniqueViolation, Constraint: "bookings_active_slot_uidx"})
	serialization := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", &pq.Error{Code: CodeSerializationFailure}))
	deadlock := &pq.Error{Code: CodeDeadlockDetected}
	plain := errors.New("plain")

	assert.True(t, IsUniqueViolation(unique))
	assert.Equal(t, "bookings_active_slot_uidx", ConstraintName(unique))
	assert.False(t, IsRetryable(unique))

	assert.True(t, IsRetryable(serialization))
	assert.True(t, IsRetryable(deadlock))

	assert.False(t, IsUniqueViolation(plain))
	assert.False(t, IsRetryable(plain))
	assert.False(t, IsForeignKeyViolation(plain))
	assert.Empty(t, ConstraintName(plain))
}
