package errs_test

import (
	"errors"
	"testing"

	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("order", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: order 123 (cause: database connection failed)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 99)

		assert.Equal(t, "value is out of range: 0 is quantity, min value is 1, max value is 99", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("customer_name")

	assert.Equal(t, "value is required: customer_name", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestAuthorizationError(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		err := errs.NewUnauthenticatedError("change order status")

		require.ErrorIs(t, err, errs.ErrUnauthenticated)
		assert.NotErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, "unauthenticated: change order status", err.Error())
	})

	t.Run("forbidden", func(t *testing.T) {
		err := errs.NewForbiddenError("u-1", "change order status")

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, "forbidden: actor u-1 may not change order status", err.Error())
	})
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("tracking_token", "ORD-ABC234")

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, "conflict: tracking_token ORD-ABC234 already exists", err.Error())
}

func TestDependencyFailureError(t *testing.T) {
	cause := errors.New("connection reset")
	err := errs.NewDependencyFailureError("stripe", "create checkout session", cause)

	require.ErrorIs(t, err, errs.ErrDependencyFailure)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "dependency failure: stripe create checkout session (cause: connection reset)", err.Error())

	withoutCause := errs.NewDependencyFailureError("postgres", "insert order", nil)
	require.ErrorIs(t, withoutCause, errs.ErrDependencyFailure)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("a")))
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("a")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("a", 1, 2, 3)))
	assert.True(t, errs.IsValidation(errors.Join(errs.NewValueIsRequiredError("a"), errors.New("x"))))
	assert.False(t, errs.IsValidation(errs.NewConflictError("a", 1)))
	assert.False(t, errs.IsValidation(nil))
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "conflict", errs.ErrConflict.Error())
	assert.Equal(t, "dependency failure", errs.ErrDependencyFailure.Error())
}
