package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/noah-isme/sma-remedial-api/internal/models"
	"github.com/noah-isme/sma-remedial-api/internal/repository"
	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

type studentStoreStub struct {
	students []models.Student
	listErr  error
	replaced [][]models.Student
}

func (s *studentStoreStub) List(ctx context.Context) ([]models.Student, error) {
	return s.students, s.listErr
}

func (s *studentStoreStub) ReplaceAll(ctx context.Context, students []models.Student) error {
	s.replaced = append(s.replaced, students)
	s.students = students
	return nil
}

type assignmentStoreStub struct {
	items   []models.TeacherAssignment
	created []*models.TeacherAssignment
	nextID  int
}

func (s *assignmentStoreStub) List(ctx context.Context) ([]models.TeacherAssignment, error) {
	return s.items, nil
}

func (s *assignmentStoreStub) Create(ctx context.Context, a *models.TeacherAssignment) error {
	s.nextID++
	a.ID = fmt.Sprintf("assign-%d", s.nextID)
	s.created = append(s.created, a)
	s.items = append(s.items, *a)
	return nil
}

func (s *assignmentStoreStub) Delete(ctx context.Context, id string) (bool, error) {
	for i, a := range s.items {
		if a.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type slotStoreStub struct {
	mu        sync.Mutex
	slots     []models.TimetableSlot
	insertErr error
	deleted   []models.SlotKey
}

func (s *slotStoreStub) List(ctx context.Context) ([]models.TimetableSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TimetableSlot(nil), s.slots...), nil
}

func (s *slotStoreStub) Insert(ctx context.Context, slot *models.TimetableSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, existing := range s.slots {
		if existing.Key() == slot.Key() {
			return repository.ErrDuplicateKey
		}
	}
	slot.ID = "slot-" + slot.Key().String()
	s.slots = append(s.slots, *slot)
	return nil
}

func (s *slotStoreStub) DeleteByKey(ctx context.Context, key models.SlotKey) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	kept := s.slots[:0]
	var removed int64
	for _, slot := range s.slots {
		if slot.Key() == key {
			removed++
			continue
		}
		kept = append(kept, slot)
	}
	s.slots = kept
	return removed, nil
}

type periodStoreStub struct {
	times    []models.PeriodTime
	replaced []models.PeriodTime
}

func (s *periodStoreStub) List(ctx context.Context) ([]models.PeriodTime, error) {
	return s.times, nil
}

func (s *periodStoreStub) ReplaceAll(ctx context.Context, times []models.PeriodTime) error {
	s.replaced = times
	s.times = times
	return nil
}

// memoryCache is a CacheRepository keeping values as-is.
type memoryCache struct {
	values      map[string]interface{}
	invalidated []string
	getErr      error
	counterErr  error
	counters    map[string]int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]interface{}), counters: make(map[string]int64)}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if result, ok := dest.(*models.ScheduleResult); ok {
		*result = v.(models.ScheduleResult)
	}
	return nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	m.invalidated = append(m.invalidated, pattern)
	n := len(m.values)
	m.values = make(map[string]interface{})
	return n, nil
}

func (m *memoryCache) Counter(ctx context.Context, key string) (int64, error) {
	if m.counterErr != nil {
		return 0, m.counterErr
	}
	return m.counters[key], nil
}

func (m *memoryCache) Incr(ctx context.Context, key string) (int64, error) {
	m.counters[key]++
	return m.counters[key], nil
}

// interleavedSlots runs afterList once, right after the first List returns.
type interleavedSlots struct {
	*slotStoreStub
	afterList func()
}

func (s *interleavedSlots) List(ctx context.Context) ([]models.TimetableSlot, error) {
	slots, err := s.slotStoreStub.List(ctx)
	if hook := s.afterList; hook != nil {
		s.afterList = nil
		hook()
	}
	return slots, err
}

func intPtr(v int) *int { return &v }

func fixtureStudents() []models.Student {
	return []models.Student{
		{ID: "10101", Name: "Kim", Grade: "1", Section: "01", Number: "01", RequiredSubjects: []string{"Math_4", "Eng_3"}},
		{ID: "10102", Name: "Lee", Grade: "1", Section: "01", Number: "02", RequiredSubjects: []string{"Math_4", "Sci_2"}},
		{ID: "10201", Name: "Park", Grade: "1", Section: "02", Number: "01", RequiredSubjects: []string{"Math_4"}, Exempt: true},
	}
}

func fixtureAssignments() []models.TeacherAssignment {
	return []models.TeacherAssignment{
		{ID: "a1", SubjectID: "Math_4", TeacherName: "Kim", Classes: []string{"1-1"}, Room: "101"},
		{ID: "a2", SubjectID: "Eng_3", TeacherName: "Choi", Classes: []string{"1-1", "1-2"}, Room: "202"},
	}
}

func fixtureSlots() []models.TimetableSlot {
	return []models.TimetableSlot{
		{ID: "s1", Week: 1, Day: models.Monday, Period: 1, SubjectID: "Math_4"},
		{ID: "s2", Week: 1, Day: models.Tuesday, Period: 2, SubjectID: "Eng_3"},
		{ID: "s3", Week: 2, Day: models.Monday, Period: 1, SubjectID: "Sci_2"},
	}
}

type fixture struct {
	students    *studentStoreStub
	assignments *assignmentStoreStub
	slots       *slotStoreStub
	periods     *periodStoreStub
	cacheRepo   *memoryCache
	cache       *CacheService
	metrics     *MetricsService
	loader      *SnapshotLoader
}

func newFixture() *fixture {
	f := &fixture{
		students:    &studentStoreStub{students: fixtureStudents()},
		assignments: &assignmentStoreStub{items: fixtureAssignments()},
		slots:       &slotStoreStub{slots: fixtureSlots()},
		periods:     &periodStoreStub{},
		cacheRepo:   newMemoryCache(),
		metrics:     NewMetricsService(),
	}
	f.cache = NewCacheService(f.cacheRepo, f.metrics, time.Minute, nil, true)
	f.loader = NewSnapshotLoader(f.students, f.assignments, f.slots, 7, f.metrics, nil)
	return f
}

func staticReader(records []models.RawStudentRecord, err error) RosterReader {
	return func(r io.Reader) ([]models.RawStudentRecord, error) {
		return records, err
	}
}
