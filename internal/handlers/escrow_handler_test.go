package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iamram3sh/2ndshift-sub002/internal/escrow"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func statusForError(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	mapEscrowError(c, err)
	return rec.Code
}

func TestMapEscrowErrorStatuses(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{escrow.ErrInvalidInput, http.StatusBadRequest},
		{escrow.ErrInvalidAmount, http.StatusBadRequest},
		{escrow.ErrBelowMinimum, http.StatusBadRequest},
		{escrow.ErrRatingRequired, http.StatusBadRequest},
		{escrow.ErrUnauthorized, http.StatusForbidden},
		{escrow.ErrForbidden, http.StatusForbidden},
		{escrow.ErrNotFound, http.StatusNotFound},
		{escrow.ErrInvalidTransition, http.StatusConflict},
		{escrow.ErrConcurrentModification, http.StatusConflict},
		{escrow.ErrRevisionLimitExceeded, http.StatusUnprocessableEntity},
		{escrow.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("something else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, statusForError(t, tc.err), "error: %v", tc.err)
	}
}

func TestMapEscrowErrorWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("%w: minimum is 500.00", escrow.ErrBelowMinimum)
	assert.Equal(t, http.StatusBadRequest, statusForError(t, wrapped))
}

func TestMapEscrowErrorDuplicateCarriesExisting(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	dup := &escrow.DuplicateEscrowError{Existing: &models.Escrow{EscrowID: "esc-123"}}
	mapEscrowError(c, dup)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "esc-123")
}
