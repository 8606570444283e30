package models

import "time"

// Exam is the scheduling unit duties are assigned against.
type Exam struct {
	ID                  int64      `json:"id" db:"id"`
	Name                string     `json:"name" db:"name" example:"Mid-term"`
	CourseCode          string     `json:"courseCode" db:"course_code" example:"CS201"`
	ExamType            ExamType   `json:"examType" db:"exam_type" example:"T4"`
	Date                string     `json:"date" db:"date" example:"2025-03-10"`
	StartTime           string     `json:"startTime" db:"start_time" example:"09:30"`
	EndTime             string     `json:"endTime" db:"end_time" example:"10:30"`
	TotalRooms          int        `json:"totalRooms" db:"total_rooms" example:"2"`
	InvigilatorsPerRoom int        `json:"invigilatorsPerRoom" db:"invigilators_per_room" example:"2"`
	Rooms               []string   `json:"rooms" db:"rooms"`
	Description         *string    `json:"description" db:"description"`
	Status              ExamStatus `json:"status" db:"status" example:"pending"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	Version             int64      `json:"version" db:"version"`
}

// RequiresConflictCheck reports whether assigning duties for this exam must
// be validated against faculty timetables.
func (e *Exam) RequiresConflictCheck() bool {
	return e.ExamType == ExamTypeT4
}

// SlotCount is the number of duties a complete assignment would create.
func (e *Exam) SlotCount() int {
	return len(e.Rooms) * e.InvigilatorsPerRoom
}

// HasRoom reports whether room is one of the exam's rooms.
func (e *Exam) HasRoom(room string) bool {
	for _, r := range e.Rooms {
		if r == room {
			return true
		}
	}
	return false
}

// ExamPatch is a shallow partial update; nil fields are left untouched.
type ExamPatch struct {
	Name                *string
	CourseCode          *string
	ExamType            *ExamType
	Date                *string
	StartTime           *string
	EndTime             *string
	TotalRooms          *int
	InvigilatorsPerRoom *int
	Rooms               []string
	Description         *string
	Status              *ExamStatus
}

// Apply merges the patch into e.
func (p ExamPatch) Apply(e *Exam) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.CourseCode != nil {
		e.CourseCode = *p.CourseCode
	}
	if p.ExamType != nil {
		e.ExamType = *p.ExamType
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.TotalRooms != nil {
		e.TotalRooms = *p.TotalRooms
	}
	if p.InvigilatorsPerRoom != nil {
		e.InvigilatorsPerRoom = *p.InvigilatorsPerRoom
	}
	if p.Rooms != nil {
		e.Rooms = append([]string(nil), p.Rooms...)
	}
	if p.Description != nil {
		e.Description = p.Description
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
}

// Clone returns a deep copy so callers cannot alias stored slices.
func (e *Exam) Clone() *Exam {
	c := *e
	c.Rooms = append([]string(nil), e.Rooms...)
	if e.Description != nil {
		d := *e.Description
		c.Description = &d
	}
	return &c
}
