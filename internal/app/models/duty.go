package models

import "time"

// Duty assigns one faculty member to proctor one room of one exam.
type Duty struct {
	ID        int64      `json:"id" db:"id"`
	ExamID    int64      `json:"examId" db:"exam_id"`
	FacultyID int64      `json:"facultyId" db:"faculty_id"`
	Room      string     `json:"room" db:"room" example:"A-101"`
	Status    DutyStatus `json:"status" db:"status" example:"assigned"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// DutyWithExam is a duty enriched with its exam, as shown on faculty pages.
type DutyWithExam struct {
	Duty
	Exam *Exam `json:"exam"`
}

// DutyDetail is a duty enriched with its exam and faculty summary.
type DutyDetail struct {
	Duty
	Exam    *Exam           `json:"exam"`
	Faculty *FacultySummary `json:"faculty"`
}

// DutyPatch is a shallow partial update; nil fields are left untouched.
type DutyPatch struct {
	FacultyID *int64
	Room      *string
	Status    *DutyStatus
}

// Apply merges the patch into d.
func (p DutyPatch) Apply(d *Duty) {
	if p.FacultyID != nil {
		d.FacultyID = *p.FacultyID
	}
	if p.Room != nil {
		d.Room = *p.Room
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
}
