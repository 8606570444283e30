package models

import "time"

// Request is a change request raised by a faculty member about an exam.
type Request struct {
	ID          int64         `json:"id" db:"id"`
	FacultyID   int64         `json:"facultyId" db:"faculty_id"`
	FacultyName string        `json:"facultyName" db:"faculty_name"`
	RequestType RequestType   `json:"requestType" db:"request_type" example:"substitute"`
	ExamID      int64         `json:"examId" db:"exam_id"`
	Reason      string        `json:"reason" db:"reason"`
	Status      RequestStatus `json:"status" db:"status" example:"pending"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
}

// ExamSummary is the trimmed exam view embedded in request listings.
type ExamSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// RequestDetail is a request enriched with faculty and exam summaries.
type RequestDetail struct {
	Request
	Faculty *FacultySummary `json:"faculty"`
	Exam    *ExamSummary    `json:"exam"`
}

// RequestPatch is a shallow partial update; nil fields are left untouched.
type RequestPatch struct {
	Reason *string
	Status *RequestStatus
}

// Apply merges the patch into r.
func (p RequestPatch) Apply(r *Request) {
	if p.Reason != nil {
		r.Reason = *p.Reason
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
}
