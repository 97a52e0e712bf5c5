package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/campus/core/campus"
)

func student(id, intakeCourse, status string) campus.Student {
	return campus.Student{Document: campus.Document{ID: id}, IntakeCourseID: intakeCourse, Status: status}
}

func result(studentID, moduleID, grade string, credits int) campus.Result {
	return campus.Result{StudentID: studentID, ModuleID: moduleID, Grade: grade, CreditHours: credits}
}

func attendance(studentID, status string) campus.Attendance {
	return campus.Attendance{StudentID: studentID, Status: status}
}

func TestStanding(t *testing.T) {
	tests := []struct {
		cgpa float64
		want campus.Standing
	}{
		{4.0, campus.StandingGood},
		{3.5, campus.StandingGood},
		{3.49, campus.StandingWarning},
		{2.5, campus.StandingWarning},
		{2.49, campus.StandingProbation},
		{2.0, campus.StandingProbation},
		{1.99, campus.StandingSuspended},
		{0, campus.StandingSuspended},
	}
	for _, tt := range tests {
		if got := Standing(tt.cgpa); got != tt.want {
			t.Errorf("Standing(%v) = %v, want %v", tt.cgpa, got, tt.want)
		}
	}
}

func TestStanding_bandsAreContiguous(t *testing.T) {
	valid := map[campus.Standing]bool{
		campus.StandingGood:      true,
		campus.StandingWarning:   true,
		campus.StandingProbation: true,
		campus.StandingSuspended: true,
	}
	rank := map[campus.Standing]int{
		campus.StandingSuspended: 0,
		campus.StandingProbation: 1,
		campus.StandingWarning:   2,
		campus.StandingGood:      3,
	}
	prev := Standing(0)
	for i := 0; i <= 400; i++ {
		cgpa := float64(i) / 100
		got := Standing(cgpa)
		if !valid[got] {
			t.Fatalf("Standing(%v) = %q is not a known band", cgpa, got)
		}
		// bands only ever go up with the cgpa
		if rank[got] < rank[prev] {
			t.Fatalf("Standing(%v) = %v is below the band of a lower cgpa (%v)", cgpa, got, prev)
		}
		prev = got
	}
}

func TestCGPA(t *testing.T) {
	results := []campus.Result{
		result("s1", "m1", campus.GradeA, 3), // 12
		result("s1", "m2", campus.GradeB, 4), // 12
		result("s1", "m3", campus.GradeF, 2), // 0
		result("s2", "m1", campus.GradeC, 3),
		result("s3", "m1", campus.GradeA, 0),
	}

	tests := []struct {
		name      string
		studentID string
		results   []campus.Result
		want      float64
	}{
		{name: "weighted and rounded", studentID: "s1", results: results, want: 2.67}, // 24/9 = 2.666..
		{name: "single result", studentID: "s2", results: results, want: 2},
		{name: "zero credit hours", studentID: "s3", results: results, want: 0},
		{name: "no results", studentID: "s4", results: results, want: 0},
		{name: "nil results", studentID: "s1", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CGPA(tt.studentID, tt.results)
			assert.False(t, math.IsNaN(got))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, CGPA(tt.studentID, tt.results), "CGPA must be idempotent")
		})
	}
}

func TestCompletedCreditHours(t *testing.T) {
	results := []campus.Result{
		result("s1", "m1", campus.GradeA, 3),
		result("s1", "m2", campus.GradeB, 4),
		result("s1", "m3", campus.GradeC, 2),
		result("s1", "m4", campus.GradeD, 1),
		result("s1", "m5", campus.GradeF, 5),
		result("s2", "m1", campus.GradeA, 3),
	}
	assert.Equal(t, 10, CompletedCreditHours("s1", results))
	assert.Equal(t, 3, CompletedCreditHours("s2", results))
	assert.Equal(t, 0, CompletedCreditHours("s3", results))
}

func TestRates(t *testing.T) {
	students := []campus.Student{
		student("s1", "ic1", campus.StudentGraduated),
		student("s2", "ic1", campus.StudentEnrolled),
		student("s3", "ic1", campus.StudentGraduated),
		student("s4", "ic2", campus.StudentDropped),
	}
	results := []campus.Result{
		result("s1", "m1", campus.GradeA, 3),
		result("s2", "m1", campus.GradeF, 3),
		result("s3", "m1", campus.GradeD, 3),
		result("s4", "m1", campus.GradeC, 3),
	}
	records := []campus.Attendance{
		attendance("s1", campus.AttendancePresent),
		attendance("s1", campus.AttendanceAbsent),
		attendance("s1", campus.AttendancePresent),
		attendance("s1", campus.AttendanceLate),
	}

	assert.InDelta(t, 66.666, CourseCompletionRate(students, "ic1"), 0.001)
	assert.Equal(t, 0.0, CourseCompletionRate(students, "ic2"))
	assert.Equal(t, 50.0, OverallCompletionRate(students))
	assert.Equal(t, 75.0, ExamPassRate(results, "m1"))
	assert.Equal(t, 50.0, AverageAttendance(records, "s1"))
}

func TestRates_emptyInputIsZero(t *testing.T) {
	for name, got := range map[string]float64{
		"CourseCompletionRate":  CourseCompletionRate(nil, "ic1"),
		"OverallCompletionRate": OverallCompletionRate(nil),
		"ExamPassRate":          ExamPassRate([]campus.Result{result("s1", "m1", campus.GradeA, 3)}, "m9"),
		"AverageAttendance":     AverageAttendance(nil, "s1"),
	} {
		if got != 0 || math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("%s() on empty input = %v, want 0", name, got)
		}
	}
}

func TestMetrics(t *testing.T) {
	m := Metrics{
		Students: []campus.Student{student("s1", "ic1", campus.StudentGraduated)},
		Results: []campus.Result{
			result("s1", "m1", campus.GradeA, 3),
			result("s1", "m2", campus.GradeB, 3),
		},
		Attendance: []campus.Attendance{attendance("s1", campus.AttendancePresent)},
	}

	assert.Equal(t, 100.0, m.CourseCompletionRate("ic1"))
	assert.Equal(t, 100.0, m.OverallCompletionRate())
	assert.Equal(t, 100.0, m.ExamPassRate("m2"))
	assert.Equal(t, 100.0, m.AverageAttendance("s1"))
	assert.Equal(t, 3.5, m.CGPA("s1"))
	assert.Equal(t, 6, m.CompletedCreditHours("s1"))
	assert.Equal(t, Summary{CGPA: 3.5, Standing: campus.StandingGood, CompletedCreditHours: 6}, m.Summarize("s1"))
}
