package roster

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NoStudentsPlaceholder is returned by RenderAll on an empty roster.
const NoStudentsPlaceholder = "(no students)"

// RenderStudent returns a deterministic multi-line report for one student:
// identity lines, each course (sorted by name) with its grade sequence and
// average, then the overall GPA. Unavailable aggregates render as "N/A".
func (svc *Service) RenderStudent(name string) (string, error) {
	std, err := svc.repo.GetStudent(name)
	if err != nil {
		return "", err
	}
	return svc.renderStudent(std), nil
}

// RenderAll concatenates every student's report sorted by name, separated by
// a blank line.
func (svc *Service) RenderAll() (string, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return "", err
	}
	if len(students) == 0 {
		return NoStudentsPlaceholder, nil
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })

	reports := make([]string, 0, len(students))
	for _, std := range students {
		reports = append(reports, svc.renderStudent(std))
	}
	return strings.Join(reports, "\n\n"), nil
}

func (svc *Service) renderStudent(std Student) string {
	lines := []string{
		"Name: " + std.Name,
		"Student ID: " + std.StudentID,
	}
	if len(std.Courses) == 0 {
		lines = append(lines, "  (no courses)")
	} else {
		for _, courseName := range std.CourseNames() {
			crs := std.Courses[courseName]
			avg := "N/A"
			if mean, ok := crs.Average(); ok {
				avg = fmt.Sprintf("%.2f", mean)
			}
			lines = append(lines, fmt.Sprintf("  - %s: grades=%s | avg=%s", courseName, formatGrades(crs.Grades), avg))
		}
	}

	gpaStr := "N/A"
	if gpa, ok := std.GPA(svc.policy); ok {
		gpaStr = fmt.Sprintf("%.2f", gpa)
	}
	lines = append(lines, "  Overall GPA: "+gpaStr)

	return strings.Join(lines, "\n")
}

func formatGrades(grades []float64) string {
	strs := make([]string, 0, len(grades))
	for _, g := range grades {
		strs = append(strs, strconv.FormatFloat(g, 'g', -1, 64))
	}
	return "[" + strings.Join(strs, ", ") + "]"
}
