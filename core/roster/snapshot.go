package roster

type (
	// Snapshot is the canonical persisted representation of a whole roster:
	// {"students": {name: {"student_id": ..., "courses": {course: [grades...]}}}}
	Snapshot struct {
		Students map[string]StudentSnapshot `json:"students"`
	}

	StudentSnapshot struct {
		StudentID string               `json:"student_id"`
		Courses   map[string][]float64 `json:"courses"`
	}
)

// Snapshot captures the current roster contents.
func (svc *Service) Snapshot() (Snapshot, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Students: make(map[string]StudentSnapshot, len(students))}
	for _, std := range students {
		ss := StudentSnapshot{
			StudentID: std.StudentID,
			Courses:   make(map[string][]float64, len(std.Courses)),
		}
		for name, crs := range std.Courses {
			grades := make([]float64, len(crs.Grades))
			copy(grades, crs.Grades)
			ss.Courses[name] = grades
		}
		snap.Students[std.Name] = ss
	}
	return snap, nil
}

// Restore replaces the entire roster with the snapshot contents. Grades go
// through the same finite check as RecordGrade; a missing student ID falls
// back to UnknownStudentID and missing courses yield an empty course map.
func (svc *Service) Restore(snap Snapshot) error {
	students := make([]Student, 0, len(snap.Students))
	for name, ss := range snap.Students {
		std := Student{
			Name:      name,
			StudentID: ss.StudentID,
			Courses:   make(map[string]*Course, len(ss.Courses)),
		}
		if std.StudentID == "" {
			std.StudentID = UnknownStudentID
		}
		for courseName, grades := range ss.Courses {
			crs := NewCourse(courseName)
			for _, g := range grades {
				if err := crs.AddGrade(g); err != nil {
					return err
				}
			}
			std.Courses[courseName] = crs
		}
		students = append(students, std)
	}
	return svc.repo.ReplaceAllStudents(students)
}

// Save persists the whole roster to path, overwriting any previous snapshot.
func (svc *Service) Save(path string) error {
	snap, err := svc.Snapshot()
	if err != nil {
		return err
	}
	return svc.store.Write(path, snap)
}

// Load replaces the in-memory roster with the snapshot at path.
func (svc *Service) Load(path string) error {
	snap, err := svc.store.Read(path)
	if err != nil {
		return err
	}
	return svc.Restore(snap)
}
