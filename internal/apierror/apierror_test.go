package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Unauthenticated("bad credentials"), http.StatusUnauthorized},
		{E(KindForbidden, "no"), http.StatusForbidden},
		{Validation("bad input"), http.StatusBadRequest},
		{InsufficientStock("only 2 left"), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("taken"), http.StatusConflict},
		{E(KindTemplate, "template broken"), http.StatusInternalServerError},
		{E(KindConversion, "render timed out"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), "error: %v", tc.err)
	}
}

func TestMessageHidesInternalCauses(t *testing.T) {
	assert.Equal(t, "Stock item not found.", Message(NotFound("Stock item not found.")))
	assert.Equal(t, "Internal server error.", Message(E(KindTemplate, "parse failed at byte 12")))
	assert.Equal(t, "Internal server error.", Message(E(KindConversion, "soffice exploded")))
	assert.Equal(t, "Internal server error.", Message(errors.New("pq: connection refused")))
}

func TestWrapPreservesCauseChain(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindInternal, "could not persist bill", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "disk full")
	// The wrapped cause stays out of the client message.
	assert.Equal(t, "Internal server error.", Message(err))
}

func TestIsKindThroughWrapping(t *testing.T) {
	inner := InsufficientStock("only 1 left")
	wrapped := fmt.Errorf("generating bill: %w", inner)

	assert.True(t, IsKind(wrapped, KindInsufficientStock))
	assert.False(t, IsKind(wrapped, KindConflict))
	assert.Equal(t, http.StatusBadRequest, Status(wrapped))
}
