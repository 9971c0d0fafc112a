// Package stats derives totals, averages, grades and class-wide summaries
// from a roster snapshot. Everything here is recomputed from scratch on each
// call and holds no state between calls.
package stats

import (
	"studentresults/internal/model"
)

// Row is the table line for one student.
type Row struct {
	Name    string                      `json:"name"`
	Marks   [model.SubjectCount]float64 `json:"marks"`
	Total   float64                     `json:"total"`
	Average float64                     `json:"average"`
	Grade   string                      `json:"grade"`
}

// Topper is the student holding the highest value for some measure.
type Topper struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// SubjectTopper is the topper of a single subject.
type SubjectTopper struct {
	Subject string `json:"subject"`
	Topper
}

// Report is everything the presentation layer renders for a roster.
// ClassAverage, TopPerformer and SubjectToppers are nil when the roster is
// empty, which keeps "no data" apart from a real average of zero.
type Report struct {
	Rows              []Row           `json:"rows"`
	ClassAverage      *float64        `json:"classAverage"`
	TopPerformer      *Topper         `json:"topPerformer"`
	SubjectToppers    []SubjectTopper `json:"subjectToppers"`
	GradeDistribution map[string]int  `json:"gradeDistribution"`
}

// GradeOf maps an average to a letter grade. Each boundary is inclusive at
// its lower edge.
func GradeOf(avg float64) string {
	switch {
	case avg >= 90:
		return "A"
	case avg >= 80:
		return "B"
	case avg >= 70:
		return "C"
	case avg >= 60:
		return "D"
	default:
		return "F"
	}
}

// ComputeReport builds the report for students in the order given.
func ComputeReport(students []model.Student) *Report {
	report := &Report{
		Rows:              make([]Row, 0, len(students)),
		GradeDistribution: make(map[string]int),
	}
	if len(students) == 0 {
		return report
	}

	var sumOfAverages float64
	topIdx := 0
	var subjectIdx [model.SubjectCount]int

	for i, student := range students {
		marks := student.Marks()

		var total float64
		for _, mark := range marks {
			total += mark
		}
		avg := total / model.SubjectCount
		grade := GradeOf(avg)

		report.Rows = append(report.Rows, Row{
			Name:    student.Name,
			Marks:   marks,
			Total:   total,
			Average: avg,
			Grade:   grade,
		})
		report.GradeDistribution[grade]++
		sumOfAverages += avg

		// strict comparisons keep the first occurrence on ties
		if total > report.Rows[topIdx].Total {
			topIdx = i
		}
		for subject := range marks {
			if marks[subject] > report.Rows[subjectIdx[subject]].Marks[subject] {
				subjectIdx[subject] = i
			}
		}
	}

	classAvg := sumOfAverages / float64(len(students))
	report.ClassAverage = &classAvg

	top := report.Rows[topIdx]
	report.TopPerformer = &Topper{Name: top.Name, Score: top.Total}

	report.SubjectToppers = make([]SubjectTopper, model.SubjectCount)
	for subject, idx := range subjectIdx {
		row := report.Rows[idx]
		report.SubjectToppers[subject] = SubjectTopper{
			Subject: model.Subjects[subject],
			Topper:  Topper{Name: row.Name, Score: row.Marks[subject]},
		}
	}

	return report
}

// Empty reports whether the report was computed from an empty roster.
func (r *Report) Empty() bool {
	return len(r.Rows) == 0
}
