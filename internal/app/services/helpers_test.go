package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/app/repositories"
	"github.com/yigit/invigilate/internal/pkg/auth"
)

var quiet = zerolog.Nop()

func fastHash(password string) (string, error) {
	return auth.HashPasswordWithCost(password, bcrypt.MinCost)
}

// fixture bundles a memory store with helpers that seed it.
type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *repositories.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, ctx: context.Background(), store: repositories.NewMemoryStore()}
}

func (f *fixture) faculty(name string, classes ...models.TimetableEntry) *models.Faculty {
	f.t.Helper()
	created, err := f.store.CreateFaculty(f.ctx, &models.Faculty{
		Name:       name,
		Username:   name,
		Password:   "x",
		Department: "CSE",
	})
	require.NoError(f.t, err)
	for _, c := range classes {
		c.FacultyID = created.ID
		_, err := f.store.CreateTimetableEntry(f.ctx, &c)
		require.NoError(f.t, err)
	}
	return created
}

func (f *fixture) exam(examType models.ExamType, rooms ...string) *models.Exam {
	f.t.Helper()
	created, err := f.store.CreateExam(f.ctx, &models.Exam{
		Name:       "Mid-term",
		CourseCode: "CS201",
		ExamType:   examType,
		Date:       "2025-03-10", // a Monday
		StartTime:  "09:30",
		EndTime:    "10:30",
		Rooms:      rooms,
	})
	require.NoError(f.t, err)
	return created
}

func class(day, slot string) models.TimetableEntry {
	return models.TimetableEntry{Day: day, TimeSlot: slot, Subject: "Data Structures"}
}
