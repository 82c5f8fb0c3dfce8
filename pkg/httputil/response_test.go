package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
)

func respond(t *testing.T, err error) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithError(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondWithErrorMapsAppErrors(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{apperrors.NotFound("record", nil), http.StatusNotFound, "record not found"},
		{apperrors.Validation("bad input", nil), http.StatusBadRequest, "bad input"},
		{apperrors.Unauthorized("", nil), http.StatusUnauthorized, "unauthorized"},
		{apperrors.Conflict("email already registered", nil), http.StatusConflict, "email already registered"},
		{apperrors.DuplicateGrant("doctor already has access"), http.StatusConflict, "doctor already has access"},
		{apperrors.InvalidRole("not a doctor"), http.StatusBadRequest, "not a doctor"},
	}

	for _, tc := range cases {
		status, body := respond(t, tc.err)
		assert.Equal(t, tc.wantStatus, status)
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, tc.wantStatus, body.Error.Code)
		assert.Equal(t, tc.wantMsg, body.Error.Message)
	}
}

func TestRespondWithErrorHidesInternalDetail(t *testing.T) {
	status, body := respond(t, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "internal server error", body.Error.Message)
}

func TestRespondWithSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithSuccess(c, gin.H{"message": "ok"})

	assert.Equal(t, http.StatusOK, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
}
