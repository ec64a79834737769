package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)
	return w
}

func TestRespond(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation",
			err:    Missing("client_email"),
			status: http.StatusBadRequest,
			body:   `{"error_code":"missing_client_email","message":"Please fill in all the required details."}`,
		},
		{
			name:   "business conflict",
			err:    ErrBusiness("time_conflict"),
			status: http.StatusConflict,
			body:   `{"error_code":"time_conflict","message":"The selected time is no longer available."}`,
		},
		{
			name:   "business default status",
			err:    ErrBusiness("outside_opening_hours"),
			status: http.StatusBadRequest,
			body:   `{"error_code":"outside_opening_hours","message":"The selected time is outside the clinic's opening hours."}`,
		},
		{
			name:   "raw exclusion violation",
			err:    fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"}),
			status: http.StatusConflict,
			body:   `{"error_code":"time_conflict","message":"The selected time is no longer available."}`,
		},
		{
			name:   "fetch",
			err:    Fetch("availability", errors.New("timeout")),
			status: http.StatusServiceUnavailable,
			body:   `{"error_code":"fetch_failed","message":"Could not load availability, please try again."}`,
		},
		{
			name:   "write",
			err:    WriteFailed(errors.New("null value in column \"client_phone\"")),
			status: http.StatusInternalServerError,
			body:   `{"error_code":"write_failed","message":"null value in column \"client_phone\""}`,
		},
		{
			name:   "unknown",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   `{"error_code":"internal_error","message":"Unexpected error."}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := respond(tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestKinds(t *testing.T) {
	assert.EqualError(t, Invalid("date", "expected yyyy-MM-dd"), "invalid_date: expected yyyy-MM-dd")

	cause := errors.New("reset by peer")
	assert.ErrorIs(t, Fetch("services", cause), cause)
	assert.True(t, IsFetch(fmt.Errorf("wrapped: %w", Fetch("services", cause))))

	assert.True(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23503"}))
}
