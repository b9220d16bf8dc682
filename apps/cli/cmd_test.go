package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madarasa/gradebook/core"
	"github.com/madarasa/gradebook/core/roster"
	inmemdb "github.com/madarasa/gradebook/storage/database/inmem"
	"github.com/madarasa/gradebook/storage/snapshot"
)

func newTestCLI(t *testing.T, input string) (*commandLine, *bytes.Buffer, *core.Config) {
	t.Helper()

	conf := &core.Config{DataFile: filepath.Join(t.TempDir(), "students.json")}
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	svc := roster.NewService(inmemdb.NewRosterRepository(db), snapshot.NewFileStore(), roster.PolicyFourPointScale)

	out := new(bytes.Buffer)
	return newCommandLine(svc, conf, strings.NewReader(input), out), out, conf
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestCLIStudentLifecycle(t *testing.T) {
	cli, out, _ := newTestCLI(t, script(
		"1", "alice", "S1", // add student
		"3", "alice", "Math", // enroll
		"5", "alice", "Math", "abc", "90", // add grade, first attempt not a number
		"6", "alice", // display
		"10", // exit
	))
	cli.run()

	for _, want := range []string{
		"Student alice added.",
		"Student alice enrolled in Math.",
		"Please enter a valid number.",
		"Grade added for alice. Math average now: 90.00",
		"Name: alice",
		"Student ID: S1",
		"  - Math: grades=[90] | avg=90.00",
		"  Overall GPA: 4.00",
		"Exiting...",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCLIErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown student", script("2", "ghost"), "Error: student not found"},
		{"blank name", script("1", "", "S1"), "Error: name: this field is required"},
		{"blank course", script("3", "alice", ""), "Error: course: this field is required"},
		{"invalid choice", script("42"), "Invalid choice. Please select 1-10."},
		{"load missing file", script("9", "/nonexistent/students.json"), "Error: persistence failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out, _ := newTestCLI(t, tt.input)
			cli.run()
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestCLISaveLoadDefaultPath(t *testing.T) {
	cli, out, conf := newTestCLI(t, script(
		"1", "alice", "S1",
		"8", "", // save, accept the default path
		"2", "alice",
		"9", "", // load, accept the default path
		"6", "alice",
		"10",
	))
	cli.run()

	if _, err := os.Stat(conf.DataFile); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
	for _, want := range []string{
		"Data saved to '" + conf.DataFile + "'.",
		"Student alice removed.",
		"Data loaded from '" + conf.DataFile + "'.",
		"Name: alice",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCLIExitsOnEOF(t *testing.T) {
	cli, out, _ := newTestCLI(t, "")
	cli.run() // must return, not loop

	if !strings.Contains(out.String(), "1. Add student") {
		t.Errorf("menu not printed:\n%s", out.String())
	}
}

func TestCLIUnenrollAndDisplayAll(t *testing.T) {
	cli, out, _ := newTestCLI(t, script(
		"7", // empty roster
		"1", "bob", "S2",
		"1", "alice", "S1",
		"3", "alice", "Math",
		"4", "alice", "Math",
		"7",
		"10",
	))
	cli.run()

	for _, want := range []string{
		"(no students)",
		"Course Math removed from student alice.",
		"Name: alice",
		"Name: bob",
		"  (no courses)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
