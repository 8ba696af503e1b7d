package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/employee"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/scheduler"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/setting"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleError_DomainMappings(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{"already checked out", attendance.ErrAlreadyCheckedOut, http.StatusConflict, "CONFLICT"},
		{"not checked in", attendance.ErrNotCheckedIn, http.StatusBadRequest, "BAD_REQUEST"},
		{"attendance not found", attendance.ErrAttendanceNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown job", scheduler.ErrUnknownJob, http.StatusBadRequest, "BAD_REQUEST"},
		{"log not found", scheduler.ErrLogNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"missing setting", setting.ErrSettingNotFound, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			body := decodeEnvelope(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "job_name", Message: "is required"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "is required", body.Error.Details["job_name"])
}

func TestHandleError_PolicyRejection(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, &attendance.PolicyError{Reason: "Check-in is not open yet"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "Check-in is not open yet", body.Error.Message)
}

func TestSuccessEnvelopes(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"status": "PRESENT"})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)

	rec = httptest.NewRecorder()
	SuccessWithMeta(rec, []string{}, &Meta{Page: 2, Limit: 10, TotalItems: 37, TotalPages: 4})

	body = decodeEnvelope(t, rec)
	require.NotNil(t, body.Meta)
	assert.Equal(t, int64(37), body.Meta.TotalItems)
	assert.Equal(t, 4, body.Meta.TotalPages)
}
