package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/repository"
)

// memoryStore is an in-memory stand-in for the Postgres repositories. It
// applies the same uniqueness, cascade and clamped counter rules and keeps
// every mutation all-or-nothing.
type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	students map[int64]models.Student
	subjects map[int64]models.Subject
	records  map[int64]models.AttendanceRecord
	failWith error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		students: map[int64]models.Student{},
		subjects: map[int64]models.Subject{},
		records:  map[int64]models.AttendanceRecord{},
	}
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryStore) applyDelta(subjectID int64, delta models.CounterDelta) {
	subject, ok := m.subjects[subjectID]
	if !ok || delta.IsZero() {
		return
	}
	c := delta.Apply(subject.Counters())
	subject.TotalClasses, subject.Present, subject.Absent = c.TotalClasses, c.Present, c.Absent
	m.subjects[subjectID] = subject
}

func (m *memoryStore) duplicate(studentID, subjectID int64, date string) bool {
	for _, rec := range m.records {
		if rec.StudentID == studentID && rec.SubjectID == subjectID && rec.Date == date {
			return true
		}
	}
	return false
}

func (m *memoryStore) injected() error {
	err := m.failWith
	m.failWith = nil
	return err
}

func (m *memoryStore) List(_ context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AttendanceRecord, 0)
	for _, rec := range m.records {
		if filter.SubjectID > 0 && rec.SubjectID != filter.SubjectID {
			continue
		}
		if filter.StudentID > 0 && rec.StudentID != filter.StudentID {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memoryStore) MarkOne(_ context.Context, record *models.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	student, ok := m.students[record.StudentID]
	if !ok {
		return repository.ErrStudentNotFound
	}
	subject, ok := m.subjects[record.SubjectID]
	if !ok {
		return repository.ErrSubjectNotFound
	}
	if m.duplicate(record.StudentID, record.SubjectID, record.Date) {
		return repository.ErrDuplicateAttendance
	}
	if err := m.injected(); err != nil {
		return err
	}
	record.ID = m.id()
	record.EnrollID = student.EnrollID
	record.SubjectName = subject.Name
	m.records[record.ID] = *record
	m.applyDelta(record.SubjectID, models.DeltaFor(record.Status, 1))
	return nil
}

func (m *memoryStore) MarkBulk(_ context.Context, subjectID int64, date string, marks []models.AttendanceMark) (models.AttendanceTally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tally models.AttendanceTally
	subject, ok := m.subjects[subjectID]
	if !ok {
		return tally, repository.ErrSubjectNotFound
	}
	if err := m.injected(); err != nil {
		return tally, err
	}
	for _, mark := range marks {
		student, ok := m.students[mark.StudentID]
		if !ok || m.duplicate(mark.StudentID, subjectID, date) {
			continue
		}
		rec := models.AttendanceRecord{
			ID: m.id(), StudentID: mark.StudentID, EnrollID: student.EnrollID,
			SubjectID: subjectID, SubjectName: subject.Name, Date: date, Status: mark.Status,
		}
		m.records[rec.ID] = rec
		tally.Count(mark.Status)
	}
	m.applyDelta(subjectID, tally.Delta(1))
	return tally, nil
}

func (m *memoryStore) DeleteOne(_ context.Context, id int64) (*models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	if err := m.injected(); err != nil {
		return nil, err
	}
	delete(m.records, id)
	m.applyDelta(rec.SubjectID, models.DeltaFor(rec.Status, -1))
	return &rec, nil
}

func (m *memoryStore) DeleteFiltered(_ context.Context, filter models.AttendanceDeleteFilter) (models.AttendanceTally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var (
		tally   models.AttendanceTally
		matched []int64
	)
	for id, rec := range m.records {
		if rec.SubjectID != filter.SubjectID || rec.Date != filter.Date {
			continue
		}
		if filter.StudentID > 0 && rec.StudentID != filter.StudentID {
			continue
		}
		matched = append(matched, id)
		tally.Count(rec.Status)
	}
	if len(matched) == 0 {
		return models.AttendanceTally{}, repository.ErrRecordNotFound
	}
	if err := m.injected(); err != nil {
		return models.AttendanceTally{}, err
	}
	for _, id := range matched {
		delete(m.records, id)
	}
	m.applyDelta(filter.SubjectID, tally.Delta(-1))
	return tally, nil
}

// memSubjects exposes the subject half of memoryStore.
type memSubjects struct{ *memoryStore }

func (s memSubjects) List(context.Context) ([]models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Subject, 0, len(s.subjects))
	for _, sub := range s.subjects {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s memSubjects) FindByID(_ context.Context, id int64) (*models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subjects[id]
	if !ok {
		return nil, repository.ErrSubjectNotFound
	}
	return &sub, nil
}

func (s memSubjects) Create(_ context.Context, subject *models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subjects {
		if existing.Name == subject.Name {
			return repository.ErrDuplicate
		}
	}
	subject.ID = s.id()
	s.subjects[subject.ID] = *subject
	return nil
}

func (s memSubjects) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subjects, id)
	for rid, rec := range s.records {
		if rec.SubjectID == id {
			delete(s.records, rid)
		}
	}
	return nil
}

func (s memSubjects) Recount(_ context.Context, id int64) (models.SubjectCounters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recount(id), nil
}

func (m *memoryStore) recount(subjectID int64) models.SubjectCounters {
	var tally models.AttendanceTally
	for _, rec := range m.records {
		if rec.SubjectID == subjectID {
			tally.Count(rec.Status)
		}
	}
	return models.SubjectCounters{TotalClasses: tally.Total(), Present: tally.Present, Absent: tally.Absent}
}

// memStudents exposes the student half of memoryStore.
type memStudents struct{ *memoryStore }

func (s memStudents) List(context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s memStudents) FindByID(_ context.Context, id int64) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	return &st, nil
}

func (s memStudents) Create(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.students {
		if existing.EnrollID == student.EnrollID {
			return repository.ErrDuplicate
		}
	}
	student.ID = s.id()
	s.students[student.ID] = *student
	return nil
}

func (s memStudents) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deltas := map[int64]models.CounterDelta{}
	for rid, rec := range s.records {
		if rec.StudentID == id {
			deltas[rec.SubjectID] = deltas[rec.SubjectID].Add(models.DeltaFor(rec.Status, -1))
			delete(s.records, rid)
		}
	}
	for subjectID, delta := range deltas {
		s.applyDelta(subjectID, delta)
	}
	delete(s.students, id)
	return nil
}

func (s memStudents) Roster(_ context.Context, subjectID int64, date string) ([]models.RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.RosterEntry, 0, len(s.students))
	for _, st := range s.students {
		entry := models.RosterEntry{ID: st.ID, EnrollID: st.EnrollID, Name: st.Name}
		if date != "" {
			for _, rec := range s.records {
				if rec.StudentID == st.ID && rec.SubjectID == subjectID && rec.Date == date {
					status := rec.Status
					entry.Status = &status
				}
			}
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s memStudents) StudentSummaries(_ context.Context, studentID int64) ([]models.StudentSubjectSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bySubject := map[int64]*models.StudentSubjectSummary{}
	for _, rec := range s.records {
		if rec.StudentID != studentID {
			continue
		}
		sum, ok := bySubject[rec.SubjectID]
		if !ok {
			sum = &models.StudentSubjectSummary{SubjectID: rec.SubjectID, SubjectName: s.subjects[rec.SubjectID].Name}
			bySubject[rec.SubjectID] = sum
		}
		sum.Total++
		if rec.Status == models.AttendanceStatusPresent {
			sum.Present++
		} else {
			sum.Absent++
		}
	}
	out := make([]models.StudentSubjectSummary, 0, len(bySubject))
	for _, sum := range bySubject {
		out = append(out, sum.WithPercentage())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectName < out[j].SubjectName })
	return out, nil
}

// assertCountersConsistent checks every subject's counters against its records.
func assertCountersConsistent(t *testing.T, m *memoryStore) {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, subject := range m.subjects {
		assert.Equal(t, m.recount(id), subject.Counters(), "subject %d", id)
		assert.Equal(t, subject.TotalClasses-subject.Present, subject.Absent, "subject %d", id)
	}
}

func (m *memoryStore) snapshot() (map[int64]models.Subject, map[int64]models.AttendanceRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subjects := make(map[int64]models.Subject, len(m.subjects))
	for k, v := range m.subjects {
		subjects[k] = v
	}
	records := make(map[int64]models.AttendanceRecord, len(m.records))
	for k, v := range m.records {
		records[k] = v
	}
	return subjects, records
}

var errInjected = errors.New("injected storage failure")
