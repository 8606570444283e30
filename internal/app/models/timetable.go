package models

// TimetableEntry is one weekly recurring class taught by a faculty member.
// TimeSlot has the form "HH:MM - HH:MM"; Day is a full weekday name or a
// three-letter code such as "MON".
type TimetableEntry struct {
	ID        int64  `json:"id" db:"id"`
	FacultyID int64  `json:"facultyId" db:"faculty_id"`
	Day       string `json:"day" db:"day" example:"Monday"`
	TimeSlot  string `json:"timeSlot" db:"time_slot" example:"09:00 - 10:00"`
	Subject   string `json:"subject" db:"subject" example:"Data Structures"`
}
