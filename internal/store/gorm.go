package store

import (
	"fmt"

	"gorm.io/gorm"
	"studentresults/internal/model"
)

// GormStore keeps the roster in the students table. The table is emptied when
// the store is opened, so a roster never outlives the process that built it.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the students table and clears any rows left behind by
// an earlier session.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&model.Student{}); err != nil {
		return nil, fmt.Errorf("auto-migrate students: %w", err)
	}

	s := &GormStore{db: db}
	if err := s.Clear(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *GormStore) Append(student model.Student) error {
	student.ID = 0
	if err := s.db.Create(&student).Error; err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

func (s *GormStore) RemoveByName(name string) (int, error) {
	result := s.db.Where("name = ?", name).Delete(&model.Student{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete students named %q: %w", name, result.Error)
	}
	return int(result.RowsAffected), nil
}

func (s *GormStore) Clear() error {
	if err := s.db.Where("1 = 1").Delete(&model.Student{}).Error; err != nil {
		return fmt.Errorf("clear students: %w", err)
	}
	return nil
}

func (s *GormStore) Snapshot() ([]model.Student, error) {
	students := []model.Student{}
	if err := s.db.Order("id asc").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}
