package main

import (
	"context"
	"fmt"

	"github.com/trezcool/campus/core/store"
)

type statsOptions struct {
	overall      *bool
	studentID    *string
	moduleID     *string
	intakeCourse *string
}

// valid reports whether exactly one metric was asked for.
func (o statsOptions) valid() bool {
	n := 0
	if *o.overall {
		n++
	}
	for _, s := range []*string{o.studentID, o.moduleID, o.intakeCourse} {
		if *s != "" {
			n++
		}
	}
	return n == 1
}

func (cli *commandLine) stats(ctx context.Context, opts statsOptions) error {
	academic, err := cli.academic()
	if err != nil {
		return err
	}
	if err = store.FetchAll(ctx, nil, academic.Students, academic.Results, academic.Attendance); err != nil {
		return err
	}
	m := academic.Snapshot()

	switch {
	case *opts.overall:
		fmt.Fprintf(cli.out, "students: %d\ncompletion rate: %.2f%%\n", len(m.Students), m.OverallCompletionRate())
	case *opts.studentID != "":
		if _, found := academic.Students.Get(*opts.studentID); !found {
			return fmt.Errorf("student %q not found", *opts.studentID)
		}
		sum := m.Summarize(*opts.studentID)
		fmt.Fprintf(cli.out, "cgpa: %.2f\nstanding: %s\ncompleted credit hours: %d\nattendance: %.2f%%\n",
			sum.CGPA, sum.Standing, sum.CompletedCreditHours, m.AverageAttendance(*opts.studentID))
	case *opts.moduleID != "":
		fmt.Fprintf(cli.out, "exam pass rate: %.2f%%\n", m.ExamPassRate(*opts.moduleID))
	case *opts.intakeCourse != "":
		fmt.Fprintf(cli.out, "completion rate: %.2f%%\n", m.CourseCompletionRate(*opts.intakeCourse))
	}
	return nil
}
