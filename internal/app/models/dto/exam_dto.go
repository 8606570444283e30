package dto

import "github.com/yigit/invigilate/internal/app/models"

// CreateExamRequest represents exam creation data
type CreateExamRequest struct {
	Name                string   `json:"name" binding:"required" example:"Mid-term"`
	CourseCode          string   `json:"courseCode" binding:"required" example:"CS201"`
	ExamType            string   `json:"examType" binding:"required,oneof=T1 T4 Semester Other" example:"T4"`
	Date                string   `json:"date" binding:"required,examdate" example:"2025-03-10"`
	StartTime           string   `json:"startTime" binding:"required,clock" example:"09:30"`
	EndTime             string   `json:"endTime" binding:"required,clock" example:"10:30"`
	TotalRooms          int      `json:"totalRooms" binding:"min=0" example:"2"`
	InvigilatorsPerRoom int      `json:"invigilatorsPerRoom" binding:"min=0" example:"2"`
	Rooms               []string `json:"rooms" binding:"omitempty,dive,required"`
	Description         *string  `json:"description"`
}

// ToModel converts the request into an exam record.
func (r *CreateExamRequest) ToModel() *models.Exam {
	return &models.Exam{
		Name:                r.Name,
		CourseCode:          r.CourseCode,
		ExamType:            models.ExamType(r.ExamType),
		Date:                r.Date,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		TotalRooms:          r.TotalRooms,
		InvigilatorsPerRoom: r.InvigilatorsPerRoom,
		Rooms:               r.Rooms,
		Description:         r.Description,
	}
}

// UpdateExamRequest represents a partial exam update. Absent fields are kept.
type UpdateExamRequest struct {
	Name                *string  `json:"name" binding:"omitempty,min=1"`
	CourseCode          *string  `json:"courseCode" binding:"omitempty,min=1"`
	ExamType            *string  `json:"examType" binding:"omitempty,oneof=T1 T4 Semester Other"`
	Date                *string  `json:"date" binding:"omitempty,examdate"`
	StartTime           *string  `json:"startTime" binding:"omitempty,clock"`
	EndTime             *string  `json:"endTime" binding:"omitempty,clock"`
	TotalRooms          *int     `json:"totalRooms" binding:"omitempty,min=0"`
	InvigilatorsPerRoom *int     `json:"invigilatorsPerRoom" binding:"omitempty,min=0"`
	Rooms               []string `json:"rooms" binding:"omitempty,dive,required"`
	Description         *string  `json:"description"`
	Status              *string  `json:"status" binding:"omitempty,oneof=pending ready completed"`
}

// ToPatch converts the request into a store patch.
func (r *UpdateExamRequest) ToPatch() models.ExamPatch {
	patch := models.ExamPatch{
		Name:                r.Name,
		CourseCode:          r.CourseCode,
		Date:                r.Date,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		TotalRooms:          r.TotalRooms,
		InvigilatorsPerRoom: r.InvigilatorsPerRoom,
		Rooms:               r.Rooms,
		Description:         r.Description,
	}
	if r.ExamType != nil {
		t := models.ExamType(*r.ExamType)
		patch.ExamType = &t
	}
	if r.Status != nil {
		s := models.ExamStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}
