package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/campus"
	"github.com/trezcool/campus/storage/docdb"
)

var (
	errCapacityReached = echo.NewHTTPError(http.StatusBadRequest, "intake course is full")
	errNoEnrollment    = echo.NewHTTPError(http.StatusBadRequest, "no student is enrolled in this intake course")
)

// actionFunc modifies a document from the body of a PATCH /:resource/:id/:action request.
type actionFunc func(doc docdb.Doc, body map[string]string) error

var actions = map[string]actionFunc{
	"intake-course/enrollment": enrollmentAction,
	"semester/status": statusAction(
		campus.SemesterUpcoming, campus.SemesterActive, campus.SemesterCompleted, campus.SemesterCancelled,
	),
	"booking/status": statusAction(
		campus.BookingPending, campus.BookingConfirmed, campus.BookingCancelled,
	),
}

// checkRules enforces the invariants spanning several fields of a document.
func checkRules(res string, doc docdb.Doc) error {
	if res == "intake-course" && doc.Int("currentEnrollment") > doc.Int("maxStudents") {
		return core.NewValidationError(nil, core.FieldError{
			Field: "currentEnrollment",
			Error: "must not exceed maxStudents",
		})
	}
	return nil
}

func enrollmentAction(doc docdb.Doc, body map[string]string) error {
	current, capacity := doc.Int("currentEnrollment"), doc.Int("maxStudents")

	switch body["action"] {
	case campus.EnrollmentEnroll:
		if current >= capacity {
			return errCapacityReached
		}
		doc["currentEnrollment"] = current + 1
	case campus.EnrollmentUnenroll:
		if current <= 0 {
			return errNoEnrollment
		}
		doc["currentEnrollment"] = current - 1
	default:
		return core.NewValidationError(nil, core.FieldError{Field: "action", Error: "must be one of [enroll unenroll]"})
	}
	return nil
}

func statusAction(statuses ...string) actionFunc {
	return func(doc docdb.Doc, body map[string]string) error {
		for _, s := range statuses {
			if body["status"] == s {
				doc["status"] = s
				return nil
			}
		}
		return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "invalid status"})
	}
}
