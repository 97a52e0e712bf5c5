package store

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/campus/core/analytics"
	"github.com/trezcool/campus/core/campus"
	"github.com/trezcool/campus/core/request"
)

// API endpoints
const (
	FeedbackEndpoint = "/api/feedback"
)

var (
	// ErrNotStudent is returned when the portal is used by someone who is not a student.
	ErrNotStudent = errors.New("signed in user is not a student")
	// ErrNoProfile is returned when no student record belongs to the signed in user.
	ErrNoProfile = errors.New("no student profile for the signed in user")
)

// Portal holds the records of the signed in student.
type Portal struct {
	client *request.Client

	Profile    *Resource[campus.Student]
	Results    *Resource[campus.Result]
	Attendance *Resource[campus.Attendance]
	Bookings   *Resource[campus.Booking]
	Feedback   *Resource[campus.Feedback]
}

func NewPortal(deps Deps) (*Portal, error) {
	if err := deps.check("store.NewPortal"); err != nil {
		return nil, err
	}
	return &Portal{
		client:     deps.Client,
		Profile:    newResource[campus.Student]("profile", StudentsEndpoint, deps),
		Results:    newResource[campus.Result]("results", ResultsEndpoint, deps),
		Attendance: newResource[campus.Attendance]("attendance", AttendanceEndpoint, deps),
		Bookings:   newResource[campus.Booking]("bookings", BookingsEndpoint, deps),
		Feedback:   newResource[campus.Feedback]("feedback", FeedbackEndpoint, deps),
	}, nil
}

// Load fetches the profile of the signed in student, then its results, attendance, bookings and feedback.
func (p *Portal) Load(ctx context.Context) error {
	if _, err := p.client.TenantID(ctx); err != nil {
		return err
	}
	usr, ok := p.client.Auth().CurrentUser()
	if !ok || !usr.IsStudent() {
		return ErrNotStudent
	}

	if err := p.Profile.Fetch(ctx, request.Filters{"userId": usr.ID}); err != nil {
		return errors.Wrap(err, "fetching profile")
	}
	student, ok := p.Student()
	if !ok {
		return ErrNoProfile
	}

	own := request.Filters{"studentId": student.ID}
	return FetchAll(ctx, own, p.Results, p.Attendance, p.Bookings, p.Feedback)
}

// Student returns the loaded profile.
func (p *Portal) Student() (campus.Student, bool) {
	items := p.Profile.Items()
	if len(items) == 0 {
		return campus.Student{}, false
	}
	return items[0], true
}

// Summary derives the academic record of the loaded student from its results.
func (p *Portal) Summary() analytics.Summary {
	student, _ := p.Student()
	return analytics.Summarize(student.ID, p.Results.Items())
}

// AttendanceRate is the percentage of the loaded student's classes attended.
func (p *Portal) AttendanceRate() float64 {
	student, _ := p.Student()
	return analytics.AverageAttendance(p.Attendance.Items(), student.ID)
}

// SubmitFeedback sends fb on behalf of the loaded student.
func (p *Portal) SubmitFeedback(ctx context.Context, fb campus.Feedback) (campus.Feedback, error) {
	student, ok := p.Student()
	if !ok {
		return campus.Feedback{}, ErrNoProfile
	}
	fb.StudentID = student.ID
	return p.Feedback.Create(ctx, fb)
}

// BookRoute books a seat on a route for the loaded student.
func (p *Portal) BookRoute(ctx context.Context, routeID string, date time.Time) (campus.Booking, error) {
	student, ok := p.Student()
	if !ok {
		return campus.Booking{}, ErrNoProfile
	}
	return p.Bookings.Create(ctx, campus.Booking{
		StudentID: student.ID,
		RouteID:   routeID,
		Date:      date,
		Status:    campus.BookingPending,
	})
}
