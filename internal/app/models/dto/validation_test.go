package dto

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))
	return v
}

func TestCreateExamRequestValidation(t *testing.T) {
	v := newValidator(t)
	valid := CreateExamRequest{
		Name:                "Mid-term",
		CourseCode:          "CS201",
		ExamType:            "T4",
		Date:                "2025-03-10",
		StartTime:           "09:30",
		EndTime:             "10:30",
		InvigilatorsPerRoom: 1,
		Rooms:               []string{"A-101"},
	}
	require.NoError(t, v.Struct(valid))

	tests := []struct {
		name  string
		mut   func(r *CreateExamRequest)
		field string
	}{
		{"bad clock", func(r *CreateExamRequest) { r.StartTime = "9.30" }, "startTime"},
		{"hour out of range", func(r *CreateExamRequest) { r.EndTime = "24:00" }, "endTime"},
		{"bad date", func(r *CreateExamRequest) { r.Date = "10/03/2025" }, "date"},
		{"unknown type", func(r *CreateExamRequest) { r.ExamType = "T9" }, "examType"},
		{"blank room", func(r *CreateExamRequest) { r.Rooms = []string{""} }, "rooms[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mut(&req)
			detail := HandleValidationError(v.Struct(req))
			assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
			assert.Equal(t, tt.field, detail.Field)
		})
	}
}

func TestFacultyRoleTag(t *testing.T) {
	v := newValidator(t)
	req := CreateFacultyRequest{Name: "Asha", Username: "asha", Password: "secret1"}
	assert.NoError(t, v.Struct(req), "role is optional")

	req.Role = "Associate Professor"
	assert.NoError(t, v.Struct(req))

	req.Role = "Dean"
	assert.Error(t, v.Struct(req))
}

func TestHandleValidationErrorJSON(t *testing.T) {
	var req LoginRequest
	err := json.Unmarshal([]byte(`{"username": 5}`), &req)
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Invalid field type", detail.Message)
}

func TestUpdateExamRequestToPatch(t *testing.T) {
	typ := "T1"
	req := UpdateExamRequest{ExamType: &typ, Rooms: []string{"B-2"}}
	patch := req.ToPatch()
	require.NotNil(t, patch.ExamType)
	assert.Equal(t, "T1", string(*patch.ExamType))
	assert.Equal(t, []string{"B-2"}, patch.Rooms)
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Status)
}

func TestValidationErrorsAddError(t *testing.T) {
	fields := NewValidationErrors().AddError("rooms", "rooms is required")
	require.Len(t, fields.Errors, 1)
	got := fields.Errors[0]
	assert.Equal(t, ErrorCodeValidationFailed, got.Code)
	assert.Equal(t, "rooms", got.Field)
	assert.Equal(t, ErrorSeverityError, got.Severity)

	raw, err := json.Marshal(NewErrorResponse(NewErrorDetail(ErrorCodeConflict, "clash")))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "debugInfo")
	assert.Contains(t, string(raw), `"success":false`)
}
