package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NotFound("record", nil), http.StatusNotFound},
		{Validation("bad input", nil), http.StatusBadRequest},
		{Unauthorized("", nil), http.StatusUnauthorized},
		{Forbidden(""), http.StatusForbidden},
		{Conflict("email already registered", nil), http.StatusConflict},
		{InvalidRole("not a doctor"), http.StatusBadRequest},
		{DuplicateGrant("already granted"), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), "code %d", tc.err.Code)
	}
}

func TestIsCode(t *testing.T) {
	err := NotFound("record", nil)
	assert.True(t, IsCode(err, ErrNotFound))
	assert.False(t, IsCode(err, ErrConflict))

	wrapped := fmt.Errorf("loading record: %w", err)
	assert.True(t, IsCode(wrapped, ErrNotFound))

	assert.False(t, IsCode(errors.New("plain"), ErrNotFound))
	assert.False(t, IsCode(nil, ErrNotFound))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("row missing")
	err := NotFound("record", cause)
	assert.ErrorIs(t, err, cause)
}
