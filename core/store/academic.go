package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/analytics"
	"github.com/trezcool/campus/core/campus"
)

// API endpoints
const (
	SchoolsEndpoint        = "/api/school"
	StudentsEndpoint       = "/api/student"
	LecturersEndpoint      = "/api/lecturer"
	CoursesEndpoint        = "/api/course"
	IntakesEndpoint        = "/api/intake"
	IntakeCoursesEndpoint  = "/api/intake-course"
	ModulesEndpoint        = "/api/module"
	DepartmentsEndpoint    = "/api/department"
	SemestersEndpoint      = "/api/semester"
	RoomsEndpoint          = "/api/room"
	ClassSchedulesEndpoint = "/api/class-schedule"
	ExamSchedulesEndpoint  = "/api/exam-schedule"
	AttendanceEndpoint     = "/api/attendance"
	ResultsEndpoint        = "/api/result"
)

// Academic holds the academic collections of the signed in user's school (every school for platform admins).
type Academic struct {
	Schools        *Resource[campus.School]
	Students       *Resource[campus.Student]
	Lecturers      *Resource[campus.Lecturer]
	Courses        *Resource[campus.Course]
	Intakes        *Resource[campus.Intake]
	IntakeCourses  *Resource[campus.IntakeCourse]
	Modules        *Resource[campus.Module]
	Departments    *Resource[campus.Department]
	Semesters      *Resource[campus.Semester]
	Rooms          *Resource[campus.Room]
	ClassSchedules *Resource[campus.ClassSchedule]
	ExamSchedules  *Resource[campus.ExamSchedule]
	Attendance     *Resource[campus.Attendance]
	Results        *Resource[campus.Result]
}

func NewAcademic(deps Deps) (*Academic, error) {
	if err := deps.check("store.NewAcademic"); err != nil {
		return nil, err
	}
	return &Academic{
		Schools:        newUnscopedResource[campus.School]("schools", SchoolsEndpoint, deps),
		Students:       newResource[campus.Student]("students", StudentsEndpoint, deps),
		Lecturers:      newResource[campus.Lecturer]("lecturers", LecturersEndpoint, deps),
		Courses:        newResource[campus.Course]("courses", CoursesEndpoint, deps),
		Intakes:        newResource[campus.Intake]("intakes", IntakesEndpoint, deps),
		IntakeCourses:  newResource[campus.IntakeCourse]("intakeCourses", IntakeCoursesEndpoint, deps),
		Modules:        newResource[campus.Module]("modules", ModulesEndpoint, deps),
		Departments:    newResource[campus.Department]("departments", DepartmentsEndpoint, deps),
		Semesters:      newResource[campus.Semester]("semesters", SemestersEndpoint, deps),
		Rooms:          newResource[campus.Room]("rooms", RoomsEndpoint, deps),
		ClassSchedules: newResource[campus.ClassSchedule]("classSchedules", ClassSchedulesEndpoint, deps),
		ExamSchedules:  newResource[campus.ExamSchedule]("examSchedules", ExamSchedulesEndpoint, deps),
		Attendance:     newResource[campus.Attendance]("attendance", AttendanceEndpoint, deps),
		Results:        newResource[campus.Result]("results", ResultsEndpoint, deps),
	}, nil
}

// Fetchers returns every collection of the store.
func (a *Academic) Fetchers() []Fetcher {
	return []Fetcher{
		a.Schools, a.Students, a.Lecturers, a.Courses, a.Intakes, a.IntakeCourses, a.Modules,
		a.Departments, a.Semesters, a.Rooms, a.ClassSchedules, a.ExamSchedules, a.Attendance, a.Results,
	}
}

func (a *Academic) FetchStudents(ctx context.Context) error {
	return a.Students.Fetch(ctx, nil)
}

func (a *Academic) FetchResults(ctx context.Context) error {
	return a.Results.Fetch(ctx, nil)
}

func (a *Academic) UpdateStudent(ctx context.Context, id string, upd campus.StudentUpdate) (campus.Student, error) {
	return a.Students.Update(ctx, id, upd)
}

// UpdateIntakeCourseEnrollment enrolls (or unenrolls) one student in the intake course id.
// The API rejects an enrollment beyond the intake course capacity.
func (a *Academic) UpdateIntakeCourseEnrollment(ctx context.Context, id, action string) (campus.IntakeCourse, error) {
	if action != campus.EnrollmentEnroll && action != campus.EnrollmentUnenroll {
		return campus.IntakeCourse{}, core.NewValidationError(
			errors.Errorf("invalid enrollment action %q", action),
			core.FieldError{Field: "action", Error: "must be one of [enroll unenroll]"},
		)
	}
	return a.IntakeCourses.patch(ctx, id, "enrollment", map[string]string{"action": action})
}

func (a *Academic) UpdateSemesterStatus(ctx context.Context, id, status string) (campus.Semester, error) {
	switch status {
	case campus.SemesterUpcoming, campus.SemesterActive, campus.SemesterCompleted, campus.SemesterCancelled:
	default:
		return campus.Semester{}, core.NewValidationError(
			errors.Errorf("invalid semester status %q", status),
			core.FieldError{Field: "status", Error: "must be one of [upcoming active completed cancelled]"},
		)
	}
	return a.Semesters.patch(ctx, id, "status", map[string]string{"status": status})
}

// ErrNotLoaded is returned when an operation needs a record that was never fetched.
var ErrNotLoaded = errors.New("record is not loaded")

// AddLecturerOfficeHour adds oh to the office hours of the loaded lecturer id.
// It fails with campus.ErrDuplicateWeekday without sending anything when that day is already taken.
func (a *Academic) AddLecturerOfficeHour(ctx context.Context, id string, oh campus.OfficeHour) (campus.Lecturer, error) {
	lec, ok := a.Lecturers.Get(id)
	if !ok {
		return campus.Lecturer{}, errors.Wrapf(ErrNotLoaded, "lecturer %s", id)
	}
	lec.OfficeHours = append([]campus.OfficeHour(nil), lec.OfficeHours...)
	if err := lec.AddOfficeHour(oh); err != nil {
		return campus.Lecturer{}, err
	}
	return a.Lecturers.Update(ctx, id, campus.LecturerUpdate{OfficeHours: lec.OfficeHours})
}

// Snapshot binds the analytics to the records currently held.
func (a *Academic) Snapshot() analytics.Metrics {
	return analytics.Metrics{
		Students:   a.Students.Items(),
		Results:    a.Results.Items(),
		Attendance: a.Attendance.Items(),
	}
}
