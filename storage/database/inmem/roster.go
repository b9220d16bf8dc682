package inmemdb

import (
	"sync"

	"github.com/madarasa/gradebook/core/roster"
)

type (
	DB struct {
		roster *rosterTable
	}

	rosterTable struct {
		sync.RWMutex
		table map[string]*roster.Student
	}
)

func Open() (*DB, error) {
	db := &DB{
		roster: &rosterTable{table: make(map[string]*roster.Student)},
	}
	return db, nil
}

type rosterRepository struct {
	db *rosterTable
}

func NewRosterRepository(db *DB) roster.Repository {
	return &rosterRepository{db: db.roster}
}

func (repo *rosterRepository) CreateStudent(std roster.Student) (roster.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[std.Name]; ok {
		return roster.Student{}, roster.ErrStudentExists
	}
	cp := copyStudent(std)
	repo.db.table[cp.Name] = &cp
	return copyStudent(cp), nil
}

func (repo *rosterRepository) GetStudent(name string) (roster.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if std, ok := repo.db.table[name]; ok {
		return copyStudent(*std), nil
	}
	return roster.Student{}, roster.ErrNotFound
}

func (repo *rosterRepository) QueryAllStudents() ([]roster.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]roster.Student, 0, len(repo.db.table))
	for _, std := range repo.db.table {
		students = append(students, copyStudent(*std))
	}
	return students, nil
}

func (repo *rosterRepository) UpdateStudent(std roster.Student) (roster.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[std.Name]; !ok {
		return roster.Student{}, roster.ErrNotFound
	}
	cp := copyStudent(std)
	repo.db.table[cp.Name] = &cp
	return copyStudent(cp), nil
}

func (repo *rosterRepository) DeleteStudent(name string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[name]; !ok {
		return roster.ErrNotFound
	}
	delete(repo.db.table, name)
	return nil
}

func (repo *rosterRepository) ReplaceAllStudents(students []roster.Student) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	table := make(map[string]*roster.Student, len(students))
	for _, std := range students {
		cp := copyStudent(std)
		table[cp.Name] = &cp
	}
	repo.db.table = table
	return nil
}

// copyStudent deep-copies a student so callers never alias stored state.
func copyStudent(std roster.Student) roster.Student {
	courses := make(map[string]*roster.Course, len(std.Courses))
	for name, crs := range std.Courses {
		grades := make([]float64, len(crs.Grades))
		copy(grades, crs.Grades)
		courses[name] = &roster.Course{Name: crs.Name, Grades: grades}
	}
	std.Courses = courses
	return std
}
