package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/invigilate/internal/app/models"
)

func seedExam(t *testing.T, s *MemoryStore) *models.Exam {
	t.Helper()
	exam, err := s.CreateExam(context.Background(), &models.Exam{
		Name:       "Mid-term",
		CourseCode: "CS201",
		ExamType:   models.ExamTypeT4,
		Date:       "2025-03-10",
		StartTime:  "09:30",
		EndTime:    "10:30",
		Rooms:      []string{"A-101", "A-102"},
	})
	require.NoError(t, err)
	return exam
}

func TestMemoryStore_ExamRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	exam := seedExam(t, s)
	assert.Equal(t, int64(1), exam.ID)
	assert.Equal(t, models.ExamStatusPending, exam.Status)
	assert.Equal(t, 1, exam.InvigilatorsPerRoom)
	assert.Equal(t, 2, exam.TotalRooms)
	assert.Equal(t, int64(1), exam.Version)
	assert.False(t, exam.CreatedAt.IsZero())

	got, err := s.GetExam(ctx, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, exam, got)

	// callers must not be able to alias stored slices
	got.Rooms[0] = "Z-999"
	again, err := s.GetExam(ctx, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, "A-101", again.Rooms[0])

	_, err = s.GetExam(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateExamBumpsVersion(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	exam := seedExam(t, s)

	name := "Final"
	updated, err := s.UpdateExam(ctx, exam.ID, models.ExamPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Name)
	assert.Equal(t, "CS201", updated.CourseCode, "unset fields untouched")
	assert.Equal(t, exam.Version+1, updated.Version)

	_, err = s.UpdateExam(ctx, 42, models.ExamPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteExamKeepsDuties(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	exam := seedExam(t, s)

	_, err := s.CreateDuty(ctx, &models.Duty{ExamID: exam.ID, FacultyID: 3, Room: "A-101"})
	require.NoError(t, err)

	existed, err := s.DeleteExam(ctx, exam.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.DeleteExam(ctx, exam.ID)
	require.NoError(t, err)
	assert.False(t, existed)

	duties, err := s.GetDutiesForExam(ctx, exam.ID)
	require.NoError(t, err)
	assert.Len(t, duties, 1)
}

func TestMemoryStore_FacultyUsernameUnique(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	f, err := s.CreateFaculty(ctx, &models.Faculty{Name: "Asha Rao", Username: "asharao", Department: "CSE"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAssistantProfessor, f.Role)

	_, err = s.CreateFaculty(ctx, &models.Faculty{Name: "Other", Username: "asharao"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	byName, err := s.GetFacultyByUsername(ctx, "asharao")
	require.NoError(t, err)
	assert.Equal(t, f.ID, byName.ID)

	admin := true
	updated, err := s.UpdateFaculty(ctx, f.ID, models.FacultyPatch{IsAdmin: &admin})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.Equal(t, "Asha Rao", updated.Name)
}

func TestMemoryStore_DutyIndexes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	exam := seedExam(t, s)

	d, err := s.CreateDuty(ctx, &models.Duty{ExamID: exam.ID, FacultyID: 1, Room: "A-101"})
	require.NoError(t, err)
	assert.Equal(t, models.DutyStatusAssigned, d.Status)

	other := int64(2)
	_, err = s.UpdateDuty(ctx, d.ID, models.DutyPatch{FacultyID: &other})
	require.NoError(t, err)

	mine, err := s.GetDutiesForFaculty(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := s.GetDutiesForFaculty(ctx, 2)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, d.ID, theirs[0].ID)

	existed, err := s.DeleteDuty(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, existed)
	all, err := s.ListDuties(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryStore_ReplaceExamDuties(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	exam := seedExam(t, s)

	_, err := s.CreateDuty(ctx, &models.Duty{ExamID: exam.ID, FacultyID: 9, Room: "A-101"})
	require.NoError(t, err)

	created, updated, err := s.ReplaceExamDuties(ctx, exam.ID, exam.Version, []models.Duty{
		{FacultyID: 1, Room: "A-101"},
		{FacultyID: 2, Room: "A-102"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, models.ExamStatusReady, updated.Status)
	assert.Equal(t, exam.Version+1, updated.Version)

	duties, err := s.GetDutiesForExam(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, duties, 2)
	for _, d := range duties {
		assert.Equal(t, models.DutyStatusAssigned, d.Status)
		assert.NotEqual(t, int64(9), d.FacultyID)
	}

	stale, err := s.GetDutiesForFaculty(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestMemoryStore_ReplaceExamDutiesVersionMismatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	exam := seedExam(t, s)

	_, err := s.CreateDuty(ctx, &models.Duty{ExamID: exam.ID, FacultyID: 9, Room: "A-101"})
	require.NoError(t, err)

	_, _, err = s.ReplaceExamDuties(ctx, exam.ID, exam.Version+5, []models.Duty{{FacultyID: 1, Room: "A-101"}})
	assert.ErrorIs(t, err, ErrVersionMismatch)

	duties, err := s.GetDutiesForExam(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, duties, 1)
	assert.Equal(t, int64(9), duties[0].FacultyID)

	after, err := s.GetExam(ctx, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, exam.Status, after.Status)
	assert.Equal(t, exam.Version, after.Version)

	_, _, err = s.ReplaceExamDuties(ctx, 404, 1, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ConcurrentReplaceOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	exam := seedExam(t, s)

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(faculty int64) {
			defer wg.Done()
			_, _, err := s.ReplaceExamDuties(ctx, exam.ID, exam.Version, []models.Duty{{FacultyID: faculty, Room: "A-101"}})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	duties, err := s.GetDutiesForExam(ctx, exam.ID)
	require.NoError(t, err)
	assert.Len(t, duties, 1)
}

func TestMemoryStore_ReplaceTimetable(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.CreateTimetableEntry(ctx, &models.TimetableEntry{FacultyID: 1, Day: "Monday", TimeSlot: "08:00 - 09:00", Subject: "Old"})
	require.NoError(t, err)

	n, err := s.ReplaceTimetable(ctx, []models.TimetableEntry{
		{FacultyID: 1, Day: "Tuesday", TimeSlot: "09:00 - 10:00", Subject: "Algorithms"},
		{FacultyID: 2, Day: "MON", TimeSlot: "10:00 - 11:00", Subject: "Networks"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	first, err := s.GetTimetableForFaculty(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Algorithms", first[0].Subject)
	assert.Greater(t, first[0].ID, int64(1), "ids are never reused")

	all, err := s.ListTimetable(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryStore_Requests(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	r, err := s.CreateRequest(ctx, &models.Request{FacultyID: 4, FacultyName: "Asha", RequestType: models.RequestTypeSubstitute, ExamID: 1, Reason: "conference"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, r.Status)
	assert.False(t, r.CreatedAt.IsZero())

	approved := models.RequestStatusApproved
	updated, err := s.UpdateRequest(ctx, r.ID, models.RequestPatch{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, approved, updated.Status)
	assert.Equal(t, "conference", updated.Reason)

	mine, err := s.GetRequestsForFaculty(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = s.UpdateRequest(ctx, 77, models.RequestPatch{Status: &approved})
	assert.ErrorIs(t, err, ErrNotFound)
}
