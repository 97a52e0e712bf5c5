package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/campus/core/refresh"
	"github.com/trezcool/campus/core/store"
)

func (cli *commandLine) academic() (*store.Academic, error) {
	session, err := cli.backend.Session()
	if err != nil {
		return nil, err
	}
	deps, err := cli.backend.Deps(session)
	if err != nil {
		return nil, err
	}
	return store.NewAcademic(deps)
}

func (cli *commandLine) refresh(ctx context.Context, dryRun bool) error {
	academic, err := cli.academic()
	if err != nil {
		return err
	}
	refresher, err := refresh.NewRefresher(academic, cli.logger)
	if err != nil {
		return err
	}

	if dryRun {
		changes, err := refresher.Plan(ctx)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			fmt.Fprintln(cli.out, "Every CGPA is up to date.")
			return nil
		}
		diff, err := planDiff(academic, changes)
		if err != nil {
			return err
		}
		fmt.Fprint(cli.out, diff)
		return nil
	}

	report, err := refresher.Run(ctx)
	if err != nil {
		return err
	}
	for _, ch := range report.UpdatedStudents {
		fmt.Fprintf(cli.out, "%s: %.2f -> %.2f (%s)\n", ch.StudentID, ch.OldCGPA, ch.NewCGPA, ch.Standing)
	}
	for _, f := range report.Failures {
		fmt.Fprintf(cli.out, "%s: FAILED: %s\n", f.StudentID, f.Message)
	}
	fmt.Fprintf(cli.out, "%d updated, %d failed\n", report.SuccessCount, report.ErrorCount)
	return nil
}

// planDiff renders the planned changes as a unified diff of the stored records against the computed ones.
func planDiff(academic *store.Academic, changes []refresh.Change) (string, error) {
	var stored, computed strings.Builder
	for _, ch := range changes {
		student, _ := academic.Students.Get(ch.StudentID)
		fmt.Fprintf(&stored, "%s cgpa=%.2f standing=%s credits=%d\n",
			ch.StudentID, student.CGPA, student.AcademicStanding, student.CompletedCreditHours)
		fmt.Fprintf(&computed, "%s cgpa=%.2f standing=%s credits=%d\n",
			ch.StudentID, ch.NewCGPA, ch.Standing, ch.CompletedCreditHours)
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(stored.String()),
		B:        difflib.SplitLines(computed.String()),
		FromFile: "stored",
		ToFile:   "computed",
		Context:  0,
	})
}
