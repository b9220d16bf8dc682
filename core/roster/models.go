package roster

import (
	"math"
	"sort"

	"github.com/madarasa/gradebook/core"
)

// UnknownStudentID is the placeholder used when a persisted student record
// carries no student ID.
const UnknownStudentID = "N/A"

// Course holds the ordered sequence of grades a student earned in one subject.
type Course struct {
	Name   string
	Grades []float64
}

func NewCourse(name string) *Course {
	return &Course{Name: name}
}

// AddGrade appends a grade to the course. Only finite values are accepted;
// insertion order is preserved and duplicates are allowed.
func (c *Course) AddGrade(grade float64) error {
	if math.IsNaN(grade) || math.IsInf(grade, 0) {
		return ErrInvalidGrade
	}
	c.Grades = append(c.Grades, grade)
	return nil
}

// ClearGrades removes all recorded grades.
func (c *Course) ClearGrades() {
	c.Grades = nil
}

// Average returns the arithmetic mean of the recorded grades.
// ok is false when no grade has been recorded yet.
func (c *Course) Average() (avg float64, ok bool) {
	if len(c.Grades) == 0 {
		return 0, false
	}
	var sum float64
	for _, g := range c.Grades {
		sum += g
	}
	return sum / float64(len(c.Grades)), true
}

// Student is one roster entry: a display name (the identity key), an optional
// secondary ID and the courses they are enrolled in, keyed by course name.
type Student struct {
	Name      string
	StudentID string
	Courses   map[string]*Course
}

func (s *Student) EnrollCourse(courseName string) error {
	if _, ok := s.Courses[courseName]; ok {
		return ErrAlreadyEnrolled
	}
	if s.Courses == nil {
		s.Courses = make(map[string]*Course)
	}
	s.Courses[courseName] = NewCourse(courseName)
	return nil
}

func (s *Student) RemoveCourse(courseName string) error {
	if _, ok := s.Courses[courseName]; !ok {
		return ErrNotEnrolled
	}
	delete(s.Courses, courseName)
	return nil
}

func (s *Student) AddGrade(courseName string, grade float64) error {
	crs, ok := s.Courses[courseName]
	if !ok {
		return ErrNotEnrolled
	}
	return crs.AddGrade(grade)
}

func (s *Student) CourseAverage(courseName string) (avg float64, ok bool, err error) {
	crs, enrolled := s.Courses[courseName]
	if !enrolled {
		return 0, false, ErrNotEnrolled
	}
	avg, ok = crs.Average()
	return avg, ok, nil
}

// CourseNames returns the enrolled course names, sorted for deterministic display.
func (s *Student) CourseNames() []string {
	names := make([]string, 0, len(s.Courses))
	for name := range s.Courses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewStudent contains information needed to add a new Student to the roster.
type NewStudent struct {
	Name      string `json:"name" validate:"required"`
	StudentID string `json:"student_id"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.StudentID = core.CleanString(ns.StudentID)
	return core.TranslateValidationErrors(core.Validate.Struct(ns))
}

// Enrollment names the course to enroll a student in (or withdraw them from).
type Enrollment struct {
	Course string `json:"course" validate:"required"`
}

func (e *Enrollment) Validate() error {
	e.Course = core.CleanString(e.Course)
	return core.TranslateValidationErrors(core.Validate.Struct(e))
}

// NewGrade carries one grade to record on an enrolled course.
type NewGrade struct {
	Value float64 `json:"value" validate:"finite"`
}

func (ng *NewGrade) Validate() error {
	return core.TranslateValidationErrors(core.Validate.Struct(ng))
}
