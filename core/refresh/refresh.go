// Package refresh recomputes the CGPA of every student and writes back the ones that drifted.
package refresh

import (
	"context"
	"math"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/analytics"
	"github.com/trezcool/campus/core/campus"
)

const instrumentationName = "github.com/trezcool/campus/core/refresh"

// Tolerance is the CGPA drift under which a student is left untouched.
const Tolerance = 0.01

// Store is what the refresh needs from the academic store.
type Store interface {
	FetchStudents(ctx context.Context) error
	FetchResults(ctx context.Context) error
	Snapshot() analytics.Metrics
	UpdateStudent(ctx context.Context, id string, upd campus.StudentUpdate) (campus.Student, error)
}

// drifted reports whether the stored and computed CGPA differ by more than Tolerance.
// The difference is compared in millionths so that float noise never crosses the boundary.
func drifted(stored, computed float64) bool {
	return math.Round(math.Abs(stored-computed)*1e6) > math.Round(Tolerance*1e6)
}

// Change is the CGPA update planned (or made) for one student.
type Change struct {
	StudentID            string          `json:"studentId"`
	OldCGPA              float64         `json:"oldCgpa"`
	NewCGPA              float64         `json:"newCgpa"`
	Standing             campus.Standing `json:"academicStanding"`
	CompletedCreditHours int             `json:"completedCreditHours"`
}

// Failure is a write that did not go through.
type Failure struct {
	StudentID string `json:"studentId"`
	Message   string `json:"message"`
}

type Report struct {
	UpdatedStudents []Change  `json:"updatedStudents"`
	Failures        []Failure `json:"failures,omitempty"`
	SuccessCount    int       `json:"successCount"`
	ErrorCount      int       `json:"errorCount"`
}

type Refresher struct {
	store   Store
	logger  core.Logger
	tracer  trace.Tracer
	updates metric.Int64Counter
}

func NewRefresher(store Store, logger core.Logger) (*Refresher, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(logger, "logger"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "refresh.NewRefresher")
	}

	updates, err := otel.Meter(instrumentationName).Int64Counter(
		"campus.refresh.updates",
		metric.WithDescription("CGPA write-backs by outcome"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "refresh.NewRefresher")
	}
	return &Refresher{
		store:   store,
		logger:  logger,
		tracer:  otel.Tracer(instrumentationName),
		updates: updates,
	}, nil
}

// Plan loads students and results and returns the students whose CGPA drifted by more than Tolerance.
// Nothing is written.
func (r *Refresher) Plan(ctx context.Context) ([]Change, error) {
	ctx, span := r.tracer.Start(ctx, "refresh.Plan")
	defer span.End()

	if err := r.store.FetchStudents(ctx); err != nil {
		return nil, errors.Wrap(err, "fetching students")
	}
	if err := r.store.FetchResults(ctx); err != nil {
		return nil, errors.Wrap(err, "fetching results")
	}

	snap := r.store.Snapshot()
	var changes []Change
	for _, student := range snap.Students {
		sum := snap.Summarize(student.ID)
		if !drifted(student.CGPA, sum.CGPA) {
			continue
		}
		changes = append(changes, Change{
			StudentID:            student.ID,
			OldCGPA:              student.CGPA,
			NewCGPA:              sum.CGPA,
			Standing:             sum.Standing,
			CompletedCreditHours: sum.CompletedCreditHours,
		})
	}
	span.SetAttributes(attribute.Int("refresh.students", len(snap.Students)), attribute.Int("refresh.changes", len(changes)))
	return changes, nil
}

// Run writes back every planned change, one student at a time, then re-fetches the students.
// A failed write is counted and does not stop the batch. An error is only returned when
// students or results could not be loaded, in which case nothing was written.
func (r *Refresher) Run(ctx context.Context) (Report, error) {
	changes, err := r.Plan(ctx)
	if err != nil {
		return Report{}, err
	}

	ctx, span := r.tracer.Start(ctx, "refresh.Run")
	defer span.End()

	report := Report{UpdatedStudents: []Change{}}
	for _, ch := range changes {
		cgpa, standing, credits := ch.NewCGPA, ch.Standing, ch.CompletedCreditHours
		_, err := r.store.UpdateStudent(ctx, ch.StudentID, campus.StudentUpdate{
			CGPA:                 &cgpa,
			AcademicStanding:     &standing,
			CompletedCreditHours: &credits,
		})
		if err != nil {
			report.ErrorCount++
			report.Failures = append(report.Failures, Failure{StudentID: ch.StudentID, Message: core.Message(err)})
			r.updates.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
			r.logger.Error("refresh: updating student", err, map[string]interface{}{"student_id": ch.StudentID})
			continue
		}
		report.SuccessCount++
		report.UpdatedStudents = append(report.UpdatedStudents, ch)
		r.updates.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	}

	if err := r.store.FetchStudents(ctx); err != nil {
		r.logger.Warn("refresh: re-fetching students", err)
	}

	span.SetAttributes(attribute.Int("refresh.success", report.SuccessCount), attribute.Int("refresh.errors", report.ErrorCount))
	r.logger.Info("refresh: done", map[string]interface{}{
		"planned": len(changes), "success": report.SuccessCount, "errors": report.ErrorCount,
	})
	return report, nil
}
