package model

// SubjectCount is the number of marks every student record carries.
const SubjectCount = 3

// Subjects names the mark positions in order.
var Subjects = [SubjectCount]string{"Math", "Science", "English"}

// MaxMarkMagnitude bounds the absolute value of a single mark so totals and
// class averages stay finite for any roster size.
const MaxMarkMagnitude = 1e12

// Student is one roster entry. ID is the insertion sequence assigned by the
// store; lookups and deletion key on Name, never on ID.
type Student struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	Name    string  `gorm:"index;not null" json:"name"`
	Math    float64 `json:"math"`
	Science float64 `json:"science"`
	English float64 `json:"english"`
}

// NewStudent builds a record from a name and marks in subject order.
func NewStudent(name string, marks [SubjectCount]float64) Student {
	return Student{
		Name:    name,
		Math:    marks[0],
		Science: marks[1],
		English: marks[2],
	}
}

// Marks returns the marks in subject order.
func (s Student) Marks() [SubjectCount]float64 {
	return [SubjectCount]float64{s.Math, s.Science, s.English}
}
