package store

import "studentresults/internal/model"

// MemoryStore keeps the roster in a slice.
type MemoryStore struct {
	students []model.Student
	nextID   uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Append(student model.Student) error {
	student.ID = s.nextID
	s.nextID++
	s.students = append(s.students, student)
	return nil
}

func (s *MemoryStore) RemoveByName(name string) (int, error) {
	kept := s.students[:0]
	for _, student := range s.students {
		if student.Name != name {
			kept = append(kept, student)
		}
	}
	removed := len(s.students) - len(kept)
	s.students = kept
	return removed, nil
}

func (s *MemoryStore) Clear() error {
	s.students = nil
	return nil
}

func (s *MemoryStore) Snapshot() ([]model.Student, error) {
	snapshot := make([]model.Student, len(s.students))
	copy(snapshot, s.students)
	return snapshot, nil
}
