package dto

import (
	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/pkg/schedule"
)

// AssignmentRequest maps one faculty member to one room. A zero facultyId
// marks a slot nobody was found for and is rejected by the allocator.
type AssignmentRequest struct {
	FacultyID int64  `json:"facultyId" example:"3"`
	Room      string `json:"room" example:"A-101"`
}

// AssignDutiesRequest replaces all duties of an exam
type AssignDutiesRequest struct {
	ExamID      int64               `json:"examId" binding:"required,min=1" example:"1"`
	Assignments []AssignmentRequest `json:"assignments" binding:"required"`
}

// ToAssignments converts the request rows for the allocator.
func (r *AssignDutiesRequest) ToAssignments() []schedule.Assignment {
	out := make([]schedule.Assignment, len(r.Assignments))
	for i, a := range r.Assignments {
		out[i] = schedule.Assignment{FacultyID: a.FacultyID, Room: a.Room}
	}
	return out
}

// AutoAssignRequest asks for a random assignment proposal. Seed makes the
// proposal reproducible; when omitted the server picks one and returns it.
type AutoAssignRequest struct {
	ExamID     int64   `json:"examId" binding:"required,min=1" example:"1"`
	FacultyIDs []int64 `json:"facultyIds" binding:"required,min=1,dive,min=1"`
	Seed       *uint64 `json:"seed,omitempty" example:"42"`
}

// CreateDutyRequest adds a single duty without replacing the others
type CreateDutyRequest struct {
	ExamID    int64  `json:"examId" binding:"required,min=1" example:"1"`
	FacultyID int64  `json:"facultyId" binding:"required,min=1" example:"3"`
	Room      string `json:"room" binding:"required" example:"A-101"`
}

// ToModel converts the request into a duty record.
func (r *CreateDutyRequest) ToModel() *models.Duty {
	return &models.Duty{
		ExamID:    r.ExamID,
		FacultyID: r.FacultyID,
		Room:      r.Room,
		Status:    models.DutyStatusAssigned,
	}
}

// UpdateDutyStatusRequest changes the lifecycle state of a duty
type UpdateDutyStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=assigned completed canceled" example:"completed"`
}
