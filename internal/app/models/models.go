package models

import "time"

// ExamType is the closed set of exam kinds handled by the scheduler.
type ExamType string

const (
	ExamTypeT1       ExamType = "T1"
	ExamTypeT4       ExamType = "T4"
	ExamTypeSemester ExamType = "Semester"
	ExamTypeOther    ExamType = "Other"
)

// Valid reports whether t is one of the known exam types.
func (t ExamType) Valid() bool {
	switch t {
	case ExamTypeT1, ExamTypeT4, ExamTypeSemester, ExamTypeOther:
		return true
	}
	return false
}

// ExamStatus tracks an exam through assignment.
type ExamStatus string

const (
	ExamStatusPending   ExamStatus = "pending"
	ExamStatusReady     ExamStatus = "ready"
	ExamStatusCompleted ExamStatus = "completed"
)

// Valid reports whether s is a known exam status.
func (s ExamStatus) Valid() bool {
	return s == ExamStatusPending || s == ExamStatusReady || s == ExamStatusCompleted
}

// DutyStatus is the lifecycle of a single invigilation duty.
type DutyStatus string

const (
	DutyStatusAssigned  DutyStatus = "assigned"
	DutyStatusCompleted DutyStatus = "completed"
	DutyStatusCanceled  DutyStatus = "canceled"
)

// Valid reports whether s is a known duty status.
func (s DutyStatus) Valid() bool {
	return s == DutyStatusAssigned || s == DutyStatusCompleted || s == DutyStatusCanceled
}

// RequestType classifies a faculty change request.
type RequestType string

const (
	RequestTypeScheduleChange RequestType = "schedule_change"
	RequestTypeRoomChange     RequestType = "room_change"
	RequestTypeSubstitute     RequestType = "substitute"
	RequestTypeOther          RequestType = "other"
)

// Valid reports whether t is a known request type.
func (t RequestType) Valid() bool {
	switch t {
	case RequestTypeScheduleChange, RequestTypeRoomChange, RequestTypeSubstitute, RequestTypeOther:
		return true
	}
	return false
}

// RequestStatus is the admin-controlled state of a change request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	return s == RequestStatusPending || s == RequestStatusApproved || s == RequestStatusRejected
}

// nowFunc is swapped in tests that need stable timestamps.
var nowFunc = time.Now

// Now returns the current time truncated to microseconds, which is what
// PostgreSQL keeps for timestamp columns.
func Now() time.Time {
	return nowFunc().UTC().Truncate(time.Microsecond)
}
