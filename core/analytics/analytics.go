// Package analytics derives academic metrics from collections already held in memory.
// Every function is pure: same input slices, same output.
package analytics

import (
	"math"

	"github.com/trezcool/campus/core/campus"
)

// GradePoints maps a grade to its points on a 4.0 scale.
var GradePoints = map[string]float64{
	campus.GradeA: 4.0,
	campus.GradeB: 3.0,
	campus.GradeC: 2.0,
	campus.GradeD: 1.0,
	campus.GradeF: 0.0,
}

// Standing thresholds (lower bounds, inclusive)
const (
	GoodThreshold      = 3.5
	WarningThreshold   = 2.5
	ProbationThreshold = 2.0
)

// percent returns part/total*100, or 0 when total is 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// round2 rounds x to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// CourseCompletionRate is the percentage of graduated students among those of an intake course.
func CourseCompletionRate(students []campus.Student, intakeCourseID string) float64 {
	var total, graduated int
	for _, s := range students {
		if s.IntakeCourseID != intakeCourseID {
			continue
		}
		total++
		if s.Status == campus.StudentGraduated {
			graduated++
		}
	}
	return percent(graduated, total)
}

// OverallCompletionRate is the percentage of graduated students.
func OverallCompletionRate(students []campus.Student) float64 {
	var graduated int
	for _, s := range students {
		if s.Status == campus.StudentGraduated {
			graduated++
		}
	}
	return percent(graduated, len(students))
}

// ExamPassRate is the percentage of a module's results that are not an F.
func ExamPassRate(results []campus.Result, moduleID string) float64 {
	var total, passed int
	for _, r := range results {
		if r.ModuleID != moduleID {
			continue
		}
		total++
		if r.Grade != campus.GradeF {
			passed++
		}
	}
	return percent(passed, total)
}

// AverageAttendance is the percentage of a student's attendance records marked present.
func AverageAttendance(records []campus.Attendance, studentID string) float64 {
	var total, present int
	for _, a := range records {
		if a.StudentID != studentID {
			continue
		}
		total++
		if a.Status == campus.AttendancePresent {
			present++
		}
	}
	return percent(present, total)
}

// CGPA is the credit-weighted grade point average of a student, rounded to 2 decimals.
// Unknown grades weigh 0 points. Returns 0 when there are no results or no credit hours.
func CGPA(studentID string, results []campus.Result) float64 {
	var points float64
	var credits int
	for _, r := range results {
		if r.StudentID != studentID {
			continue
		}
		points += GradePoints[r.Grade] * float64(r.CreditHours)
		credits += r.CreditHours
	}
	if credits == 0 {
		return 0
	}
	return round2(points / float64(credits))
}

// Standing returns the academic standing band of a CGPA.
func Standing(cgpa float64) campus.Standing {
	switch {
	case cgpa >= GoodThreshold:
		return campus.StandingGood
	case cgpa >= WarningThreshold:
		return campus.StandingWarning
	case cgpa >= ProbationThreshold:
		return campus.StandingProbation
	default:
		return campus.StandingSuspended
	}
}

// CompletedCreditHours sums the credit hours of a student's passed (A to D) results.
func CompletedCreditHours(studentID string, results []campus.Result) int {
	var credits int
	for _, r := range results {
		if r.StudentID != studentID {
			continue
		}
		switch r.Grade {
		case campus.GradeA, campus.GradeB, campus.GradeC, campus.GradeD:
			credits += r.CreditHours
		}
	}
	return credits
}

// Summary holds the derived academic record of one student.
type Summary struct {
	CGPA                 float64         `json:"cgpa"`
	Standing             campus.Standing `json:"academicStanding"`
	CompletedCreditHours int             `json:"completedCreditHours"`
}

func Summarize(studentID string, results []campus.Result) Summary {
	cgpa := CGPA(studentID, results)
	return Summary{
		CGPA:                 cgpa,
		Standing:             Standing(cgpa),
		CompletedCreditHours: CompletedCreditHours(studentID, results),
	}
}

// Metrics binds the analytics to a snapshot of the collections.
type Metrics struct {
	Students   []campus.Student
	Results    []campus.Result
	Attendance []campus.Attendance
}

func (m Metrics) CourseCompletionRate(intakeCourseID string) float64 {
	return CourseCompletionRate(m.Students, intakeCourseID)
}

func (m Metrics) OverallCompletionRate() float64 {
	return OverallCompletionRate(m.Students)
}

func (m Metrics) ExamPassRate(moduleID string) float64 {
	return ExamPassRate(m.Results, moduleID)
}

func (m Metrics) AverageAttendance(studentID string) float64 {
	return AverageAttendance(m.Attendance, studentID)
}

func (m Metrics) CGPA(studentID string) float64 {
	return CGPA(studentID, m.Results)
}

func (m Metrics) CompletedCreditHours(studentID string) int {
	return CompletedCreditHours(studentID, m.Results)
}

func (m Metrics) Summarize(studentID string) Summary {
	return Summarize(studentID, m.Results)
}
