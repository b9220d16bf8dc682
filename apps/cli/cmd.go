package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/madarasa/gradebook/core"
	"github.com/madarasa/gradebook/core/roster"
)

var errInputClosed = errors.New("input closed")

type commandLine struct {
	svc  *roster.Service
	conf *core.Config

	in  *bufio.Scanner
	out io.Writer
}

func newCommandLine(svc *roster.Service, conf *core.Config, in io.Reader, out io.Writer) *commandLine {
	return &commandLine{
		svc:  svc,
		conf: conf,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

func (cli *commandLine) printMenu() {
	fmt.Fprintln(cli.out, "\n======== Student Grade Management System ========")
	fmt.Fprintln(cli.out, "1. Add student")
	fmt.Fprintln(cli.out, "2. Remove student")
	fmt.Fprintln(cli.out, "3. Enroll student in a course")
	fmt.Fprintln(cli.out, "4. Remove a course from a student")
	fmt.Fprintln(cli.out, "5. Add grade for a course")
	fmt.Fprintln(cli.out, "6. Display student info")
	fmt.Fprintln(cli.out, "7. Display all students")
	fmt.Fprintln(cli.out, "8. Save data")
	fmt.Fprintln(cli.out, "9. Load data")
	fmt.Fprintln(cli.out, "10. Exit")
}

// prompt reads one input line, trimmed. errInputClosed signals exhausted input.
func (cli *commandLine) prompt(msg string) (string, error) {
	fmt.Fprint(cli.out, msg)
	if !cli.in.Scan() {
		if err := cli.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return core.CleanString(cli.in.Text()), nil
}

// promptFloat keeps asking until a valid number is entered.
func (cli *commandLine) promptFloat(msg string) (float64, error) {
	for {
		raw, err := cli.prompt(msg)
		if err != nil {
			return 0, err
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f, nil
		}
		fmt.Fprintln(cli.out, "Please enter a valid number.")
	}
}

func (cli *commandLine) run() {
	for {
		cli.printMenu()
		choice, err := cli.prompt("Select an option (1-10): ")
		if err != nil {
			return
		}

		done, err := cli.dispatch(choice)
		if done {
			return
		}
		if err == errInputClosed {
			return
		}
		if err != nil {
			cli.printError(err)
		}
	}
}

func (cli *commandLine) printError(err error) {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		for _, fld := range vErr.Fields {
			fmt.Fprintf(cli.out, "Error: %s: %s\n", fld.Field, fld.Error)
		}
		return
	}
	fmt.Fprintf(cli.out, "Error: %v\n", err)
}

func (cli *commandLine) dispatch(choice string) (done bool, err error) {
	switch choice {
	case "1":
		name, err := cli.prompt("Enter student name: ")
		if err != nil {
			return false, err
		}
		id, err := cli.prompt("Enter student ID: ")
		if err != nil {
			return false, err
		}
		ns := roster.NewStudent{Name: name, StudentID: id}
		if err = ns.Validate(); err != nil {
			return false, err
		}
		if _, err = cli.svc.Create(ns); err != nil {
			return false, err
		}
		fmt.Fprintf(cli.out, "Student %s added.\n", ns.Name)

	case "2":
		name, err := cli.prompt("Enter student name: ")
		if err != nil {
			return false, err
		}
		if err = cli.svc.Delete(name); err != nil {
			return false, err
		}
		fmt.Fprintf(cli.out, "Student %s removed.\n", name)

	case "3":
		name, course, err := cli.promptStudentCourse()
		if err != nil {
			return false, err
		}
		if err = cli.svc.Enroll(name, course); err != nil {
			return false, err
		}
		fmt.Fprintf(cli.out, "Student %s enrolled in %s.\n", name, course)

	case "4":
		name, course, err := cli.promptStudentCourse()
		if err != nil {
			return false, err
		}
		if err = cli.svc.Unenroll(name, course); err != nil {
			return false, err
		}
		fmt.Fprintf(cli.out, "Course %s removed from student %s.\n", course, name)

	case "5":
		name, course, err := cli.promptStudentCourse()
		if err != nil {
			return false, err
		}
		grade, err := cli.promptFloat("Enter grade (numeric): ")
		if err != nil {
			return false, err
		}
		if err = cli.svc.RecordGrade(name, course, grade); err != nil {
			return false, err
		}
		if avg, ok, err := cli.svc.CourseAverage(name, course); err == nil && ok {
			fmt.Fprintf(cli.out, "Grade added for %s. %s average now: %.2f\n", name, course, avg)
		} else {
			fmt.Fprintln(cli.out, "Grade added.")
		}

	case "6":
		name, err := cli.prompt("Enter student name: ")
		if err != nil {
			return false, err
		}
		report, err := cli.svc.RenderStudent(name)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(cli.out, report)

	case "7":
		report, err := cli.svc.RenderAll()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(cli.out, report)

	case "8":
		path, err := cli.promptPath("save")
		if err != nil {
			return false, err
		}
		if err = cli.svc.Save(path); err != nil {
			return false, err
		}
		fmt.Fprintf(cli.out, "Data saved to '%s'.\n", path)

	case "9":
		path, err := cli.promptPath("load")
		if err != nil {
			return false, err
		}
		if err = cli.svc.Load(path); err != nil {
			return false, err
		}
		fmt.Fprintf(cli.out, "Data loaded from '%s'.\n", path)

	case "10":
		fmt.Fprintln(cli.out, "Exiting...")
		return true, nil

	default:
		fmt.Fprintln(cli.out, "Invalid choice. Please select 1-10.")
	}
	return false, nil
}

func (cli *commandLine) promptStudentCourse() (name, course string, err error) {
	if name, err = cli.prompt("Enter student name: "); err != nil {
		return "", "", err
	}
	if course, err = cli.prompt("Enter course name: "); err != nil {
		return "", "", err
	}
	enr := roster.Enrollment{Course: course}
	if err = enr.Validate(); err != nil {
		return "", "", err
	}
	return name, enr.Course, nil
}

func (cli *commandLine) promptPath(verb string) (string, error) {
	path, err := cli.prompt(fmt.Sprintf("Enter filename to %s [%s]: ", verb, cli.conf.DataFile))
	if err != nil {
		return "", err
	}
	if path == "" {
		path = cli.conf.DataFile
	}
	return path, nil
}
