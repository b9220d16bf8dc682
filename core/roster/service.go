package roster

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound        = errors.New("student not found")
	ErrStudentExists   = errors.New("a student with this name already exists")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")
	ErrNotEnrolled     = errors.New("student is not enrolled in this course")
	ErrInvalidGrade    = errors.New("grade must be a finite number")
)

type (
	Repository interface {
		CreateStudent(student Student) (Student, error)
		GetStudent(name string) (Student, error)
		QueryAllStudents() ([]Student, error)
		UpdateStudent(student Student) (Student, error)
		DeleteStudent(name string) error
		// ReplaceAllStudents atomically swaps the entire roster contents.
		ReplaceAllStudents(students []Student) error
	}

	// SnapshotStore persists and restores whole-roster snapshots.
	SnapshotStore interface {
		Write(path string, snap Snapshot) error
		Read(path string) (Snapshot, error)
	}

	Service struct {
		repo   Repository
		store  SnapshotStore
		policy GPAPolicy
	}
)

func NewService(repo Repository, store SnapshotStore, policy GPAPolicy) *Service {
	return &Service{repo: repo, store: store, policy: policy}
}

// Policy returns the GPA policy the service was configured with.
func (svc *Service) Policy() GPAPolicy {
	return svc.policy
}

// Create adds a new student under their name. A student ID is generated when
// none is supplied.
func (svc *Service) Create(ns NewStudent) (Student, error) {
	if ns.StudentID == "" {
		ns.StudentID = uuid.New().String()
	}
	std := Student{
		Name:      ns.Name,
		StudentID: ns.StudentID,
		Courses:   make(map[string]*Course),
	}
	return svc.repo.CreateStudent(std)
}

func (svc *Service) Get(name string) (Student, error) {
	return svc.repo.GetStudent(name)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) Delete(name string) error {
	return svc.repo.DeleteStudent(name)
}

func (svc *Service) Enroll(name, courseName string) error {
	std, err := svc.repo.GetStudent(name)
	if err != nil {
		return err
	}
	if err = std.EnrollCourse(courseName); err != nil {
		return err
	}
	_, err = svc.repo.UpdateStudent(std)
	return err
}

func (svc *Service) Unenroll(name, courseName string) error {
	std, err := svc.repo.GetStudent(name)
	if err != nil {
		return err
	}
	if err = std.RemoveCourse(courseName); err != nil {
		return err
	}
	_, err = svc.repo.UpdateStudent(std)
	return err
}

func (svc *Service) RecordGrade(name, courseName string, grade float64) error {
	std, err := svc.repo.GetStudent(name)
	if err != nil {
		return err
	}
	if err = std.AddGrade(courseName, grade); err != nil {
		return err
	}
	_, err = svc.repo.UpdateStudent(std)
	return err
}

func (svc *Service) ClearGrades(name, courseName string) error {
	std, err := svc.repo.GetStudent(name)
	if err != nil {
		return err
	}
	crs, ok := std.Courses[courseName]
	if !ok {
		return ErrNotEnrolled
	}
	crs.ClearGrades()
	_, err = svc.repo.UpdateStudent(std)
	return err
}

func (svc *Service) CourseAverage(name, courseName string) (avg float64, ok bool, err error) {
	std, err := svc.repo.GetStudent(name)
	if err != nil {
		return 0, false, err
	}
	return std.CourseAverage(courseName)
}

func (svc *Service) GPA(name string) (gpa float64, ok bool, err error) {
	std, err := svc.repo.GetStudent(name)
	if err != nil {
		return 0, false, err
	}
	gpa, ok = std.GPA(svc.policy)
	return gpa, ok, nil
}
