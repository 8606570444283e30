package repositories

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/yigit/invigilate/internal/app/models"
)

var _ Store = (*MemoryStore)(nil)

// table is an arena of rows keyed by a monotonically increasing id.
type table[T any] struct {
	rows map[int64]*T
	last int64
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[int64]*T)}
}

func (t *table[T]) nextID() int64 {
	t.last++
	return t.last
}

// sorted returns the rows ordered by id.
func (t *table[T]) sorted(id func(*T) int64) []*T {
	rows := make([]*T, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b *T) int { return cmp.Compare(id(a), id(b)) })
	return rows
}

// index maps a foreign key to the set of row ids referencing it.
type index map[int64]map[int64]struct{}

func (ix index) add(key, id int64) {
	set, ok := ix[key]
	if !ok {
		set = make(map[int64]struct{})
		ix[key] = set
	}
	set[id] = struct{}{}
}

func (ix index) remove(key, id int64) {
	if set, ok := ix[key]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(ix, key)
		}
	}
}

func (ix index) ids(key int64) []int64 {
	ids := make([]int64, 0, len(ix[key]))
	for id := range ix[key] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// MemoryStore is a Store kept entirely in process memory. It is safe for
// concurrent use; compound operations run under a single write lock.
type MemoryStore struct {
	mu sync.RWMutex

	faculty    table[models.Faculty]
	timetable  table[models.TimetableEntry]
	exams      table[models.Exam]
	duties     table[models.Duty]
	requests   table[models.Request]
	byUsername map[string]int64

	timetableByFaculty index
	dutiesByExam       index
	dutiesByFaculty    index
	requestsByFaculty  index
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		faculty:            newTable[models.Faculty](),
		timetable:          newTable[models.TimetableEntry](),
		exams:              newTable[models.Exam](),
		duties:             newTable[models.Duty](),
		requests:           newTable[models.Request](),
		byUsername:         make(map[string]int64),
		timetableByFaculty: make(index),
		dutiesByExam:       make(index),
		dutiesByFaculty:    make(index),
		requestsByFaculty:  make(index),
	}
}

func copyOf[T any](v *T) *T {
	c := *v
	return &c
}

// Faculty

func (s *MemoryStore) CreateFaculty(_ context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[faculty.Username]; taken {
		return nil, ErrAlreadyExists
	}

	row := copyOf(faculty)
	row.ID = s.faculty.nextID()
	if row.Role == "" {
		row.Role = models.RoleAssistantProfessor
	}
	s.faculty.rows[row.ID] = row
	s.byUsername[row.Username] = row.ID
	return copyOf(row), nil
}

func (s *MemoryStore) GetFaculty(_ context.Context, id int64) (*models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.faculty.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyOf(row), nil
}

func (s *MemoryStore) GetFacultyByUsername(_ context.Context, username string) (*models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	return copyOf(s.faculty.rows[id]), nil
}

func (s *MemoryStore) ListFaculty(_ context.Context) ([]*models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.faculty.sorted(func(f *models.Faculty) int64 { return f.ID })
	out := make([]*models.Faculty, len(rows))
	for i, row := range rows {
		out[i] = copyOf(row)
	}
	return out, nil
}

func (s *MemoryStore) UpdateFaculty(_ context.Context, id int64, patch models.FacultyPatch) (*models.Faculty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.faculty.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(row)
	return copyOf(row), nil
}

// Timetable

func (s *MemoryStore) CreateTimetableEntry(_ context.Context, entry *models.TimetableEntry) (*models.TimetableEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := copyOf(entry)
	row.ID = s.timetable.nextID()
	s.timetable.rows[row.ID] = row
	s.timetableByFaculty.add(row.FacultyID, row.ID)
	return copyOf(row), nil
}

func (s *MemoryStore) GetTimetableForFaculty(_ context.Context, facultyID int64) ([]*models.TimetableEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.timetableByFaculty.ids(facultyID)
	out := make([]*models.TimetableEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyOf(s.timetable.rows[id]))
	}
	return out, nil
}

func (s *MemoryStore) ListTimetable(_ context.Context) ([]*models.TimetableEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.timetable.sorted(func(e *models.TimetableEntry) int64 { return e.ID })
	out := make([]*models.TimetableEntry, len(rows))
	for i, row := range rows {
		out[i] = copyOf(row)
	}
	return out, nil
}

func (s *MemoryStore) ReplaceTimetable(_ context.Context, entries []models.TimetableEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := table[models.TimetableEntry]{rows: make(map[int64]*models.TimetableEntry, len(entries)), last: s.timetable.last}
	byFaculty := make(index)
	for i := range entries {
		row := copyOf(&entries[i])
		row.ID = next.nextID()
		next.rows[row.ID] = row
		byFaculty.add(row.FacultyID, row.ID)
	}

	s.timetable = next
	s.timetableByFaculty = byFaculty
	return len(entries), nil
}

// Exams

func (s *MemoryStore) CreateExam(_ context.Context, exam *models.Exam) (*models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := exam.Clone()
	applyExamDefaults(row)
	row.ID = s.exams.nextID()
	row.CreatedAt = models.Now()
	row.Version = 1
	s.exams.rows[row.ID] = row
	return row.Clone(), nil
}

func (s *MemoryStore) GetExam(_ context.Context, id int64) (*models.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.exams.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return row.Clone(), nil
}

func (s *MemoryStore) ListExams(_ context.Context) ([]*models.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.exams.sorted(func(e *models.Exam) int64 { return e.ID })
	out := make([]*models.Exam, len(rows))
	for i, row := range rows {
		out[i] = row.Clone()
	}
	return out, nil
}

func (s *MemoryStore) UpdateExam(_ context.Context, id int64, patch models.ExamPatch) (*models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.exams.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(row)
	row.Version++
	return row.Clone(), nil
}

// DeleteExam removes the exam only. Its duties and requests are kept.
func (s *MemoryStore) DeleteExam(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.exams.rows[id]; !ok {
		return false, nil
	}
	delete(s.exams.rows, id)
	return true, nil
}

// Duties

func (s *MemoryStore) insertDuty(duty *models.Duty) *models.Duty {
	row := copyOf(duty)
	row.ID = s.duties.nextID()
	row.CreatedAt = models.Now()
	if row.Status == "" {
		row.Status = models.DutyStatusAssigned
	}
	s.duties.rows[row.ID] = row
	s.dutiesByExam.add(row.ExamID, row.ID)
	s.dutiesByFaculty.add(row.FacultyID, row.ID)
	return row
}

func (s *MemoryStore) removeDuty(id int64) bool {
	row, ok := s.duties.rows[id]
	if !ok {
		return false
	}
	delete(s.duties.rows, id)
	s.dutiesByExam.remove(row.ExamID, id)
	s.dutiesByFaculty.remove(row.FacultyID, id)
	return true
}

func (s *MemoryStore) dutiesFor(ix index, key int64) []*models.Duty {
	ids := ix.ids(key)
	out := make([]*models.Duty, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyOf(s.duties.rows[id]))
	}
	return out
}

func (s *MemoryStore) CreateDuty(_ context.Context, duty *models.Duty) (*models.Duty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyOf(s.insertDuty(duty)), nil
}

func (s *MemoryStore) GetDuty(_ context.Context, id int64) (*models.Duty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.duties.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyOf(row), nil
}

func (s *MemoryStore) ListDuties(_ context.Context) ([]*models.Duty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.duties.sorted(func(d *models.Duty) int64 { return d.ID })
	out := make([]*models.Duty, len(rows))
	for i, row := range rows {
		out[i] = copyOf(row)
	}
	return out, nil
}

func (s *MemoryStore) GetDutiesForExam(_ context.Context, examID int64) ([]*models.Duty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dutiesFor(s.dutiesByExam, examID), nil
}

func (s *MemoryStore) GetDutiesForFaculty(_ context.Context, facultyID int64) ([]*models.Duty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dutiesFor(s.dutiesByFaculty, facultyID), nil
}

func (s *MemoryStore) UpdateDuty(_ context.Context, id int64, patch models.DutyPatch) (*models.Duty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.duties.rows[id]
	if !ok {
		return nil, ErrNotFound
	}

	oldFaculty := row.FacultyID
	patch.Apply(row)
	if row.FacultyID != oldFaculty {
		s.dutiesByFaculty.remove(oldFaculty, id)
		s.dutiesByFaculty.add(row.FacultyID, id)
	}
	return copyOf(row), nil
}

func (s *MemoryStore) DeleteDuty(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeDuty(id), nil
}

func (s *MemoryStore) ReplaceExamDuties(_ context.Context, examID, expectedVersion int64, duties []models.Duty) ([]*models.Duty, *models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, ok := s.exams.rows[examID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	if exam.Version != expectedVersion {
		return nil, nil, ErrVersionMismatch
	}

	for _, id := range s.dutiesByExam.ids(examID) {
		s.removeDuty(id)
	}

	created := make([]*models.Duty, 0, len(duties))
	for i := range duties {
		duty := duties[i]
		duty.ExamID = examID
		duty.Status = models.DutyStatusAssigned
		created = append(created, copyOf(s.insertDuty(&duty)))
	}

	exam.Status = models.ExamStatusReady
	exam.Version++
	return created, exam.Clone(), nil
}

// Requests

func (s *MemoryStore) CreateRequest(_ context.Context, request *models.Request) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := copyOf(request)
	row.ID = s.requests.nextID()
	row.CreatedAt = models.Now()
	if row.Status == "" {
		row.Status = models.RequestStatusPending
	}
	s.requests.rows[row.ID] = row
	s.requestsByFaculty.add(row.FacultyID, row.ID)
	return copyOf(row), nil
}

func (s *MemoryStore) GetRequest(_ context.Context, id int64) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.requests.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyOf(row), nil
}

func (s *MemoryStore) ListRequests(_ context.Context) ([]*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.requests.sorted(func(r *models.Request) int64 { return r.ID })
	out := make([]*models.Request, len(rows))
	for i, row := range rows {
		out[i] = copyOf(row)
	}
	return out, nil
}

func (s *MemoryStore) GetRequestsForFaculty(_ context.Context, facultyID int64) ([]*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.requestsByFaculty.ids(facultyID)
	out := make([]*models.Request, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyOf(s.requests.rows[id]))
	}
	return out, nil
}

func (s *MemoryStore) UpdateRequest(_ context.Context, id int64, patch models.RequestPatch) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.requests.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(row)
	return copyOf(row), nil
}
