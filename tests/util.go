package testutil

import (
	"testing"

	"github.com/madarasa/gradebook/core/roster"
)

// CreateStudent seeds a student straight into the repository, pre-enrolled
// with the given courses and grades.
func CreateStudent(t *testing.T, repo roster.Repository, name, id string, courses map[string][]float64) roster.Student {
	t.Helper()

	std := roster.Student{
		Name:      name,
		StudentID: id,
		Courses:   make(map[string]*roster.Course, len(courses)),
	}
	for courseName, grades := range courses {
		crs := roster.NewCourse(courseName)
		for _, g := range grades {
			if err := crs.AddGrade(g); err != nil {
				t.Fatalf("adding grade %v to %s: %v", g, courseName, err)
			}
		}
		std.Courses[courseName] = crs
	}

	created, err := repo.CreateStudent(std)
	if err != nil {
		t.Fatalf("creating student %s: %v", name, err)
	}
	return created
}
