package store

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campus/core/auth"
	"github.com/trezcool/campus/core/campus"
	"github.com/trezcool/campus/tests"
)

func portalAPI(t *testing.T) testutil.RespondFunc {
	return func(req rest.Request) (*rest.Response, error) {
		var data interface{}
		switch {
		case req.Method != rest.Get:
			return echoRecord(t, "new1")(req)
		case strings.HasPrefix(req.BaseURL, "/api/student/school/S1?userId=u-student"):
			data = []campus.Student{{Document: campus.Document{ID: "st1", SchoolID: "S1"}, UserID: "u-student"}}
		case strings.HasPrefix(req.BaseURL, "/api/result/school/S1?studentId=st1"):
			data = []campus.Result{
				{StudentID: "st1", ModuleID: "m1", Grade: campus.GradeA, CreditHours: 4},
				{StudentID: "st1", ModuleID: "m2", Grade: campus.GradeF, CreditHours: 2},
			}
		case strings.HasPrefix(req.BaseURL, "/api/attendance/school/S1?studentId=st1"):
			data = []campus.Attendance{
				{StudentID: "st1", Status: campus.AttendancePresent},
				{StudentID: "st1", Status: campus.AttendanceLate},
			}
		case strings.Contains(req.BaseURL, "studentId=st1"):
			data = []interface{}{}
		default:
			return &rest.Response{StatusCode: http.StatusNotFound, Body: testutil.Envelope(t, false, nil, "unexpected "+req.BaseURL)}, nil
		}
		return &rest.Response{StatusCode: http.StatusOK, Body: testutil.Envelope(t, true, data, "")}, nil
	}
}

func TestPortal(t *testing.T) {
	ctx := context.Background()
	doer := testutil.NewDoer(portalAPI(t))
	p, err := NewPortal(newDeps(t, testutil.SignedIn(auth.RoleStudent, "S1"), doer))
	require.NoError(t, err)

	require.NoError(t, p.Load(ctx))
	student, ok := p.Student()
	require.True(t, ok)
	assert.Equal(t, "st1", student.ID)
	assert.Len(t, doer.Requests(), 5)

	// 16 / 6 = 2.666..
	assert.Equal(t, 2.67, p.Summary().CGPA)
	assert.Equal(t, campus.StandingWarning, p.Summary().Standing)
	assert.Equal(t, 4, p.Summary().CompletedCreditHours)
	assert.Equal(t, 50.0, p.AttendanceRate())

	fb, err := p.SubmitFeedback(ctx, campus.Feedback{Subject: "Library hours", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, "st1", fb.StudentID)
	assert.Equal(t, "S1", fb.SchoolID)
	assert.Equal(t, 1, p.Feedback.Len())

	booking, err := p.BookRoute(ctx, "r1", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, campus.BookingPending, booking.Status)
	assert.Equal(t, "/api/booking", doer.Last(t).BaseURL)
}

func TestPortal_Load_requiresStudent(t *testing.T) {
	doer := testutil.NewDoer(portalAPI(t))
	p, err := NewPortal(newDeps(t, testutil.SignedIn(auth.RoleSchoolAdmin, "S1"), doer))
	require.NoError(t, err)

	assert.Equal(t, ErrNotStudent, p.Load(context.Background()))
	assert.Empty(t, doer.Requests())
}

func TestPortal_Load_noProfile(t *testing.T) {
	doer := testutil.NewDoer(testutil.ReplyOK(t, []campus.Student{}))
	p, err := NewPortal(newDeps(t, testutil.SignedIn(auth.RoleStudent, "S1"), doer))
	require.NoError(t, err)

	assert.Equal(t, ErrNoProfile, p.Load(context.Background()))
	_, err = p.SubmitFeedback(context.Background(), campus.Feedback{Subject: "x", Rating: 3})
	assert.Equal(t, ErrNoProfile, err)
}
