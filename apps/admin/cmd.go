package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/campus/apps/shared"
	"github.com/trezcool/campus/core"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	backend *shared.Backend
	logger  core.Logger
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username EMAIL - sign in and print the API token (the password is prompted)")
	fmt.Fprintln(cli.out, "  refresh [-dry-run] - recompute every student's CGPA and save the ones that changed")
	fmt.Fprintln(cli.out, "  stats -overall|-student ID|-module ID|-intake-course ID - print academic metrics")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginUname := loginCmd.String("username", "", "The user's email. The password will be prompted next.")

	refreshCmd := flag.NewFlagSet("refresh", flag.ExitOnError)
	refreshDryRun := refreshCmd.Bool("dry-run", false, "Only print the changes that would be saved.")

	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)
	statsOpts := statsOptions{
		overall:      statsCmd.Bool("overall", false, "Overall completion rate."),
		studentID:    statsCmd.String("student", "", "Academic record and attendance of a student."),
		moduleID:     statsCmd.String("module", "", "Exam pass rate of a module."),
		intakeCourse: statsCmd.String("intake-course", "", "Completion rate of an intake course."),
	}

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginUname == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(ctx, *loginUname, string(pwd))
	case "refresh":
		if err := refreshCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.refresh(ctx, *refreshDryRun)
	case "stats":
		if err := statsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if !statsOpts.valid() {
			statsCmd.Usage()
			return errHelp
		}
		return cli.stats(ctx, statsOpts)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(ctx context.Context, email, pwd string) error {
	_, resp, err := cli.backend.Login(ctx, email, pwd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Signed in as %s (%s)\n%s\n", resp.User.Email, resp.User.Role, resp.Token)
	return nil
}
