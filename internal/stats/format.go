package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Placeholder is shown for every summary value of an empty roster.
const Placeholder = "--"

// Summary holds the display strings for a report.
type Summary struct {
	TotalStudents  string   `json:"totalStudents"`
	ClassAverage   string   `json:"classAverage"`
	TopPerformer   string   `json:"topPerformer"`
	SubjectToppers []string `json:"subjectToppers"`
	GradeSummary   string   `json:"gradeSummary"`
}

// FormatAverage renders an average with two decimal places.
func FormatAverage(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatMark renders a mark or total in its shortest natural form.
func FormatMark(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Grades returns the grade letters present in the distribution in ascending
// order.
func (r *Report) Grades() []string {
	grades := make([]string, 0, len(r.GradeDistribution))
	for grade := range r.GradeDistribution {
		grades = append(grades, grade)
	}
	sort.Strings(grades)
	return grades
}

// DistributionString renders the grade distribution as "A: 2  B: 3  D: 1".
func (r *Report) DistributionString() string {
	parts := make([]string, 0, len(r.GradeDistribution))
	for _, grade := range r.Grades() {
		parts = append(parts, fmt.Sprintf("%s: %d", grade, r.GradeDistribution[grade]))
	}
	return strings.Join(parts, "  ")
}

// Summary renders the summary lines shown under the table.
func (r *Report) Summary() Summary {
	s := Summary{
		TotalStudents: fmt.Sprintf("Total Students: %d", len(r.Rows)),
		ClassAverage:  "Class Average: " + Placeholder,
		TopPerformer:  "Top Performer: " + Placeholder,
		GradeSummary:  "Grade Summary: " + Placeholder,
	}
	if r.Empty() {
		s.SubjectToppers = []string{Placeholder}
		return s
	}

	if r.ClassAverage != nil {
		s.ClassAverage = "Class Average: " + FormatAverage(*r.ClassAverage)
	}
	if r.TopPerformer != nil {
		s.TopPerformer = fmt.Sprintf("Top Performer: %s (%s marks)", r.TopPerformer.Name, FormatMark(r.TopPerformer.Score))
	}
	for _, t := range r.SubjectToppers {
		s.SubjectToppers = append(s.SubjectToppers, fmt.Sprintf("%s → %s (%s)", t.Subject, t.Name, FormatMark(t.Score)))
	}
	s.GradeSummary = "Grade Summary: " + r.DistributionString()

	return s
}
