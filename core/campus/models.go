package campus

import (
	"time"

	"github.com/pkg/errors"
)

// Entity is any record of a collection, keyed by the identifier the API assigned.
type Entity interface {
	EntityID() string
}

// Document holds the attributes shared by every campus record.
type Document struct {
	ID       string `json:"_id,omitempty"`
	SchoolID string `json:"schoolId,omitempty"`
}

func (d Document) EntityID() string { return d.ID }

// School statuses
const (
	SchoolActive   = "Active"
	SchoolInactive = "Inactive"
)

// School is a tenant.
type School struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	Status      string `json:"status" validate:"required,oneof=Active Inactive"`
	AdminUserID string `json:"adminUserId,omitempty"`
}

func (s School) EntityID() string { return s.ID }

// Student statuses
const (
	StudentEnrolled  = "enrolled"
	StudentGraduated = "graduated"
	StudentDropped   = "dropped"
)

type Standing string

// Academic standings
const (
	StandingGood      Standing = "good"
	StandingWarning   Standing = "warning"
	StandingProbation Standing = "probation"
	StandingSuspended Standing = "suspended"
)

type Student struct {
	Document
	UserID               string   `json:"userId" validate:"required"`
	IntakeCourseID       string   `json:"intakeCourseId" validate:"required"`
	CurrentYear          int      `json:"currentYear,omitempty" validate:"gte=0"`
	CurrentSemester      int      `json:"currentSemester,omitempty" validate:"gte=0"`
	Status               string   `json:"status" validate:"required,oneof=enrolled graduated dropped"`
	CGPA                 float64  `json:"cgpa" validate:"gte=0,lte=4"`
	AcademicStanding     Standing `json:"academicStanding,omitempty" validate:"omitempty,oneof=good warning probation suspended"`
	CompletedCreditHours int      `json:"completedCreditHours" validate:"gte=0"`
}

// StudentUpdate defines what information may be provided to modify an existing Student.
// Only set fields are sent.
type StudentUpdate struct {
	IntakeCourseID       *string   `json:"intakeCourseId,omitempty"`
	CurrentYear          *int      `json:"currentYear,omitempty" validate:"omitempty,gte=0"`
	CurrentSemester      *int      `json:"currentSemester,omitempty" validate:"omitempty,gte=0"`
	Status               *string   `json:"status,omitempty" validate:"omitempty,oneof=enrolled graduated dropped"`
	CGPA                 *float64  `json:"cgpa,omitempty" validate:"omitempty,gte=0,lte=4"`
	AcademicStanding     *Standing `json:"academicStanding,omitempty" validate:"omitempty,oneof=good warning probation suspended"`
	CompletedCreditHours *int      `json:"completedCreditHours,omitempty" validate:"omitempty,gte=0"`
}

// OfficeHour is a weekly slot during which a Lecturer receives students.
type OfficeHour struct {
	Day       string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
}

// ErrDuplicateWeekday is returned when a Lecturer already has office hours on that day.
var ErrDuplicateWeekday = errors.New("office hours already set for this day")

type Lecturer struct {
	Document
	UserID         string       `json:"userId" validate:"required"`
	DepartmentID   string       `json:"departmentId" validate:"required"`
	ModuleIDs      []string     `json:"moduleIds"`
	Title          []string     `json:"title,omitempty"`
	Specialization []string     `json:"specialization,omitempty"`
	Qualification  string       `json:"qualification,omitempty"`
	Experience     int          `json:"experience" validate:"gte=0"`
	OfficeHours    []OfficeHour `json:"officeHours" validate:"weekdays,dive"`
	IsActive       bool         `json:"isActive"`
}

// AddOfficeHour appends oh unless the Lecturer already has office hours on the same day.
func (l *Lecturer) AddOfficeHour(oh OfficeHour) error {
	if HasOfficeHourOn(l.OfficeHours, oh.Day) {
		return ErrDuplicateWeekday
	}
	l.OfficeHours = append(l.OfficeHours, oh)
	return nil
}

// HasOfficeHourOn reports whether ohs already contains an entry for day.
func HasOfficeHourOn(ohs []OfficeHour, day string) bool {
	for _, oh := range ohs {
		if oh.Day == day {
			return true
		}
	}
	return false
}

// LecturerUpdate defines what information may be provided to modify an existing Lecturer.
type LecturerUpdate struct {
	DepartmentID   *string      `json:"departmentId,omitempty"`
	ModuleIDs      []string     `json:"moduleIds,omitempty"`
	Title          []string     `json:"title,omitempty"`
	Specialization []string     `json:"specialization,omitempty"`
	Qualification  *string      `json:"qualification,omitempty"`
	Experience     *int         `json:"experience,omitempty" validate:"omitempty,gte=0"`
	OfficeHours    []OfficeHour `json:"officeHours,omitempty" validate:"omitempty,weekdays,dive"`
	IsActive       *bool        `json:"isActive,omitempty"`
}

type Course struct {
	Document
	Name         string `json:"name" validate:"required"`
	Code         string `json:"code" validate:"required"`
	Description  string `json:"description,omitempty"`
	DepartmentID string `json:"departmentId,omitempty"`
	Duration     int    `json:"duration,omitempty" validate:"gte=0"` // in years
	CreditHours  int    `json:"creditHours,omitempty" validate:"gte=0"`
}

type Intake struct {
	Document
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status,omitempty"`
}

// Enrollment actions
const (
	EnrollmentEnroll   = "enroll"
	EnrollmentUnenroll = "unenroll"
)

// IntakeCourse links a Course to an Intake. Enrollment never exceeds MaxStudents (enforced by the API).
type IntakeCourse struct {
	Document
	IntakeID          string `json:"intakeId" validate:"required"`
	CourseID          string `json:"courseId" validate:"required"`
	MaxStudents       int    `json:"maxStudents" validate:"gte=0"`
	CurrentEnrollment int    `json:"currentEnrollment" validate:"gte=0"`
	Status            string `json:"status,omitempty"`
}

type Module struct {
	Document
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	CourseID    string `json:"courseId,omitempty"`
	CreditHours int    `json:"creditHours" validate:"gte=0"`
}

type Department struct {
	Document
	Name string `json:"name" validate:"required"`
	Code string `json:"code,omitempty"`
}

// Semester statuses
const (
	SemesterUpcoming  = "upcoming"
	SemesterActive    = "active"
	SemesterCompleted = "completed"
	SemesterCancelled = "cancelled"
)

type Semester struct {
	Document
	IntakeCourseID string    `json:"intakeCourseId" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Year           int       `json:"year" validate:"gte=0"`
	Number         int       `json:"semesterNumber" validate:"gte=0"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Status         string    `json:"status" validate:"omitempty,oneof=upcoming active completed cancelled"`
}

type Room struct {
	Document
	Name     string `json:"name" validate:"required"`
	Building string `json:"building,omitempty"`
	Capacity int    `json:"capacity" validate:"gte=0"`
	Type     string `json:"type,omitempty"`
}

type ClassSchedule struct {
	Document
	ModuleID       string `json:"moduleId" validate:"required"`
	LecturerID     string `json:"lecturerId" validate:"required"`
	RoomID         string `json:"roomId" validate:"required"`
	IntakeCourseID string `json:"intakeCourseId,omitempty"`
	DayOfWeek      string `json:"dayOfWeek" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime      string `json:"startTime" validate:"required,clock"`
	EndTime        string `json:"endTime" validate:"required,clock"`
}

type ExamSchedule struct {
	Document
	ModuleID       string    `json:"moduleId" validate:"required"`
	IntakeCourseID string    `json:"intakeCourseId,omitempty"`
	RoomID         string    `json:"roomId,omitempty"`
	InvigilatorIDs []string  `json:"invigilatorIds,omitempty"`
	Date           time.Time `json:"date"`
	StartTime      string    `json:"startTime" validate:"required,clock"`
	Duration       int       `json:"duration" validate:"gte=0"` // in minutes
}

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

type Attendance struct {
	Document
	StudentID       string    `json:"studentId" validate:"required"`
	ClassScheduleID string    `json:"classScheduleId,omitempty"`
	Date            time.Time `json:"date"`
	Status          string    `json:"status" validate:"required,oneof=present absent late excused"`
}

// Grades
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
	GradeF = "F"
)

type Result struct {
	Document
	StudentID   string `json:"studentId" validate:"required"`
	ModuleID    string `json:"moduleId" validate:"required"`
	SemesterID  string `json:"semesterId,omitempty"`
	Grade       string `json:"grade" validate:"required,oneof=A B C D F"`
	CreditHours int    `json:"creditHours" validate:"gte=0"`
	Marks       int    `json:"marks,omitempty" validate:"gte=0,lte=100"`
}
