// Package records implements the student record operations on top of a
// snapshot store: list, get, sort, create, partial update and delete.
//
// Every mutation is a full load → change → validate → save cycle against
// the store. Service serializes those cycles with a mutex, so two requests
// in this process cannot overwrite each other's changes. Processes sharing
// one store are not coordinated.
package records

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aanand-mishra/student-records/internal/merge"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/validation"
)

var (
	ErrNotFound         = errors.New("student not found")
	ErrAlreadyExists    = errors.New("student already exists")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order")
)

// SortField is a field the list can be ordered by.
type SortField string

const (
	SortByRollNo SortField = "roll_no"
	SortByName   SortField = "name"
)

// legacyRollNo is the sort_by value older clients send for roll_no.
const legacyRollNo = "Roll no"

// SortFields lists the accepted sort fields, for error messages.
var SortFields = []SortField{SortByRollNo, SortByName}

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseSortField accepts "roll_no", "name", and the legacy "Roll no".
func ParseSortField(s string) (SortField, error) {
	switch s {
	case string(SortByRollNo), legacyRollNo:
		return SortByRollNo, nil
	case string(SortByName):
		return SortByName, nil
	}
	return "", fmt.Errorf("%w %q: select from %v", ErrInvalidSortField, s, SortFields)
}

// ParseOrder accepts "asc" and "desc"; an empty string means asc.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case Asc, "":
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("%w %q: select from [asc desc]", ErrInvalidSortOrder, s)
}

// Service runs record operations against a store.
type Service struct {
	store storage.Storage

	// mu serializes load-modify-save cycles.
	mu sync.Mutex
}

// New returns a Service over store.
func New(store storage.Storage) *Service {
	return &Service{store: store}
}

// List returns the full mapping of roll_no to record.
func (s *Service) List() (types.Records, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("records.List: %w", err)
	}
	return records, nil
}

// Get returns the record stored under rollNo.
func (s *Service) Get(rollNo string) (types.Record, error) {
	records, err := s.store.Load()
	if err != nil {
		return types.Record{}, fmt.Errorf("records.Get: %w", err)
	}

	rec, ok := records[rollNo]
	if !ok {
		return types.Record{}, fmt.Errorf("records.Get %s: %w", rollNo, ErrNotFound)
	}
	return rec, nil
}

// Sort returns every student ordered by field. Ties are broken by roll_no
// in the same direction, so the result is deterministic.
func (s *Service) Sort(field SortField, order Order) ([]types.Student, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("records.Sort: %w", err)
	}

	students := make([]types.Student, 0, len(records))
	for id, rec := range records {
		students = append(students, rec.Student(id))
	}

	key := func(st types.Student) string { return st.RollNo }
	if field == SortByName {
		key = func(st types.Student) string { return st.Name }
	}

	sort.Slice(students, func(i, j int) bool {
		a, b := students[i], students[j]
		if order == Desc {
			a, b = b, a
		}
		if c := strings.Compare(key(a), key(b)); c != 0 {
			return c < 0
		}
		return a.RollNo < b.RollNo
	})

	return students, nil
}

// Create validates st and stores it under its roll_no.
func (s *Service) Create(st types.Student) error {
	// Subjects left out of a new marks object default to 0.
	if st.Marks != nil {
		m := st.Marks.WithDefaults()
		st.Marks = &m
	}

	if err := validation.Validate(st); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("records.Create: %w", err)
	}

	if _, ok := records[st.RollNo]; ok {
		return fmt.Errorf("records.Create %s: %w", st.RollNo, ErrAlreadyExists)
	}
	if records == nil {
		records = make(types.Records)
	}

	records[st.RollNo] = st.Record()

	if err := s.store.Save(records); err != nil {
		return fmt.Errorf("records.Create: %w", err)
	}
	return nil
}

// Update merges upd into the record stored under rollNo and saves the
// result if it still validates. On any error the store is untouched.
// It returns the merged student.
func (s *Service) Update(rollNo string, upd types.StudentUpdate) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return types.Student{}, fmt.Errorf("records.Update: %w", err)
	}

	existing, ok := records[rollNo]
	if !ok {
		return types.Student{}, fmt.Errorf("records.Update %s: %w", rollNo, ErrNotFound)
	}

	merged := merge.Apply(rollNo, existing, upd)
	if err := validation.Validate(merged); err != nil {
		return types.Student{}, err
	}

	records[rollNo] = merged.Record()

	if err := s.store.Save(records); err != nil {
		return types.Student{}, fmt.Errorf("records.Update: %w", err)
	}
	return merged, nil
}

// Delete removes the record stored under rollNo.
func (s *Service) Delete(rollNo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("records.Delete: %w", err)
	}

	if _, ok := records[rollNo]; !ok {
		return fmt.Errorf("records.Delete %s: %w", rollNo, ErrNotFound)
	}
	delete(records, rollNo)

	if err := s.store.Save(records); err != nil {
		return fmt.Errorf("records.Delete: %w", err)
	}
	return nil
}

// Violation is a stored record that no longer passes validation.
type Violation struct {
	RollNo string
	Err    error
}

// Audit validates every stored record and returns the failures ordered
// by roll_no.
func (s *Service) Audit() ([]Violation, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("records.Audit: %w", err)
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var violations []Violation
	for _, id := range ids {
		if err := validation.Validate(records[id].Student(id)); err != nil {
			violations = append(violations, Violation{RollNo: id, Err: err})
		}
	}
	return violations, nil
}
