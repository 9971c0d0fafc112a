package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"studentresults/internal/model"
)

func student(name string, math, science, english float64) model.Student {
	return model.NewStudent(name, [model.SubjectCount]float64{math, science, english})
}

func TestGradeOf(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{100, "A"},
		{90, "A"},
		{89.99, "B"},
		{80, "B"},
		{79.99, "C"},
		{70, "C"},
		{69.99, "D"},
		{60, "D"},
		{59.99, "F"},
		{0, "F"},
		{-5, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeOf(tt.avg), "GradeOf(%v)", tt.avg)
	}
}

func TestComputeReportEmpty(t *testing.T) {
	for _, roster := range [][]model.Student{nil, {}} {
		report := ComputeReport(roster)

		require.NotNil(t, report)
		assert.True(t, report.Empty())
		assert.Empty(t, report.Rows)
		assert.Nil(t, report.ClassAverage)
		assert.Nil(t, report.TopPerformer)
		assert.Nil(t, report.SubjectToppers)
		assert.Empty(t, report.GradeDistribution)
	}
}

func TestComputeReportZeroMarksIsNotEmpty(t *testing.T) {
	report := ComputeReport([]model.Student{student("Zed", 0, 0, 0)})

	assert.False(t, report.Empty())
	require.NotNil(t, report.ClassAverage)
	assert.Equal(t, 0.0, *report.ClassAverage)
	assert.Equal(t, map[string]int{"F": 1}, report.GradeDistribution)
}

func TestComputeReport(t *testing.T) {
	report := ComputeReport([]model.Student{
		student("Alice", 90, 80, 70),
		student("Bob", 60, 100, 100),
	})

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Alice", report.Rows[0].Name)
	assert.Equal(t, 240.0, report.Rows[0].Total)
	assert.Equal(t, 80.0, report.Rows[0].Average)
	assert.Equal(t, "B", report.Rows[0].Grade)
	assert.Equal(t, "Bob", report.Rows[1].Name)
	assert.Equal(t, 260.0, report.Rows[1].Total)
	assert.InDelta(t, 86.6667, report.Rows[1].Average, 0.0001)
	assert.Equal(t, "B", report.Rows[1].Grade)

	require.NotNil(t, report.ClassAverage)
	assert.InDelta(t, 83.3333, *report.ClassAverage, 0.0001)

	require.NotNil(t, report.TopPerformer)
	assert.Equal(t, Topper{Name: "Bob", Score: 260}, *report.TopPerformer)

	assert.Equal(t, []SubjectTopper{
		{Subject: "Math", Topper: Topper{Name: "Alice", Score: 90}},
		{Subject: "Science", Topper: Topper{Name: "Bob", Score: 100}},
		{Subject: "English", Topper: Topper{Name: "Bob", Score: 100}},
	}, report.SubjectToppers)

	assert.Equal(t, map[string]int{"B": 2}, report.GradeDistribution)
}

func TestComputeReportTiesKeepFirstInserted(t *testing.T) {
	report := ComputeReport([]model.Student{
		student("First", 80, 70, 90),
		student("Second", 90, 70, 80),
		student("Third", 70, 90, 80),
	})

	assert.Equal(t, "First", report.TopPerformer.Name)
	assert.Equal(t, "Second", report.SubjectToppers[0].Name)
	assert.Equal(t, "Third", report.SubjectToppers[1].Name)
	assert.Equal(t, "First", report.SubjectToppers[2].Name)
}

func TestComputeReportKeepsInsertionOrder(t *testing.T) {
	report := ComputeReport([]model.Student{
		student("Carl", 50, 50, 50),
		student("Anna", 95, 95, 95),
		student("Bea", 75, 75, 75),
	})

	names := make([]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		names = append(names, row.Name)
	}
	assert.Equal(t, []string{"Carl", "Anna", "Bea"}, names)
	assert.Equal(t, map[string]int{"A": 1, "C": 1, "F": 1}, report.GradeDistribution)
}

func TestComputeReportIsRepeatable(t *testing.T) {
	roster := []model.Student{
		student("Alice", 90, 80, 70),
		student("Bob", 60, 100, 100),
		student("Alice", 10, 20, 30),
	}

	assert.Equal(t, ComputeReport(roster), ComputeReport(roster))
}
