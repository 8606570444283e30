package dto

import "github.com/yigit/invigilate/internal/app/models"

// CreateRequestRequest raises a change request for an exam
type CreateRequestRequest struct {
	RequestType string `json:"requestType" binding:"required,oneof=schedule_change room_change substitute other" example:"substitute"`
	ExamID      int64  `json:"examId" binding:"required,min=1" example:"1"`
	Reason      string `json:"reason" binding:"required" example:"Conference travel"`
}

// ToModel converts the request into a request record.
func (r *CreateRequestRequest) ToModel() *models.Request {
	return &models.Request{
		RequestType: models.RequestType(r.RequestType),
		ExamID:      r.ExamID,
		Reason:      r.Reason,
	}
}

// DecideRequestRequest approves or rejects a pending request
type DecideRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected" example:"approved"`
}
