package roster_test

import (
	"math"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/madarasa/gradebook/core/roster"
	inmemdb "github.com/madarasa/gradebook/storage/database/inmem"
	testutil "github.com/madarasa/gradebook/tests"
)

// fakeStore keeps snapshots in memory so Save/Load can be exercised without
// touching the filesystem.
type fakeStore struct {
	snaps   map[string]roster.Snapshot
	readErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{snaps: make(map[string]roster.Snapshot)}
}

func (fs *fakeStore) Write(path string, snap roster.Snapshot) error {
	fs.snaps[path] = snap
	return nil
}

func (fs *fakeStore) Read(path string) (roster.Snapshot, error) {
	if fs.readErr != nil {
		return roster.Snapshot{}, fs.readErr
	}
	return fs.snaps[path], nil
}

func setup(t *testing.T, policy roster.GPAPolicy) (*roster.Service, roster.Repository, *fakeStore) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	repo := inmemdb.NewRosterRepository(db)
	store := newFakeStore()
	return roster.NewService(repo, store, policy), repo, store
}

func TestServiceCreate(t *testing.T) {
	svc, _, _ := setup(t, roster.PolicyFourPointScale)

	std, err := svc.Create(roster.NewStudent{Name: "alice", StudentID: "S1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if std.StudentID != "S1" {
		t.Errorf("StudentID = %q; want S1", std.StudentID)
	}
	if std.Courses == nil || len(std.Courses) != 0 {
		t.Errorf("Courses = %v; want empty map", std.Courses)
	}

	if _, err = svc.Create(roster.NewStudent{Name: "alice"}); err != roster.ErrStudentExists {
		t.Errorf("duplicate Create = %v; want ErrStudentExists", err)
	}

	// a student ID is generated when none is supplied
	std, err = svc.Create(roster.NewStudent{Name: "bob"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if std.StudentID == "" {
		t.Error("StudentID not generated")
	}
}

func TestServiceDelete(t *testing.T) {
	svc, _, _ := setup(t, roster.PolicyFourPointScale)

	if err := svc.Delete("ghost"); err != roster.ErrNotFound {
		t.Errorf("Delete = %v; want ErrNotFound", err)
	}

	if _, err := svc.Create(roster.NewStudent{Name: "alice"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete("alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get("alice"); err != roster.ErrNotFound {
		t.Errorf("Get after Delete = %v; want ErrNotFound", err)
	}
}

func TestServiceEnrollUnenroll(t *testing.T) {
	svc, _, _ := setup(t, roster.PolicyFourPointScale)

	if err := svc.Enroll("ghost", "Math"); err != roster.ErrNotFound {
		t.Errorf("Enroll unknown student = %v; want ErrNotFound", err)
	}

	if _, err := svc.Create(roster.NewStudent{Name: "alice"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Enroll("alice", "Math"); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := svc.RecordGrade("alice", "Math", 90); err != nil {
		t.Fatalf("RecordGrade: %v", err)
	}

	// duplicate enrollment must fail and leave grades intact
	if err := svc.Enroll("alice", "Math"); err != roster.ErrAlreadyEnrolled {
		t.Errorf("duplicate Enroll = %v; want ErrAlreadyEnrolled", err)
	}
	std, err := svc.Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := std.Courses["Math"].Grades; !reflect.DeepEqual(got, []float64{90}) {
		t.Errorf("Grades = %v; want [90]", got)
	}

	if err = svc.Unenroll("alice", "Art"); err != roster.ErrNotEnrolled {
		t.Errorf("Unenroll = %v; want ErrNotEnrolled", err)
	}
	if err = svc.Unenroll("alice", "Math"); err != nil {
		t.Fatalf("Unenroll: %v", err)
	}
	std, _ = svc.Get("alice")
	if len(std.Courses) != 0 {
		t.Errorf("Courses = %v; want empty", std.Courses)
	}
}

func TestServiceRecordGrade(t *testing.T) {
	svc, _, _ := setup(t, roster.PolicyFourPointScale)

	if _, err := svc.Create(roster.NewStudent{Name: "alice"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.RecordGrade("alice", "Math", 90); err != roster.ErrNotEnrolled {
		t.Errorf("RecordGrade unenrolled = %v; want ErrNotEnrolled", err)
	}

	if err := svc.Enroll("alice", "Math"); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := svc.RecordGrade("alice", "Math", math.NaN()); err != roster.ErrInvalidGrade {
		t.Errorf("RecordGrade(NaN) = %v; want ErrInvalidGrade", err)
	}
	std, _ := svc.Get("alice")
	if got := std.Courses["Math"].Grades; len(got) != 0 {
		t.Errorf("Grades after rejected value = %v; want empty", got)
	}
}

func TestServiceClearGrades(t *testing.T) {
	svc, repo, _ := setup(t, roster.PolicyFourPointScale)
	testutil.CreateStudent(t, repo, "alice", "S1", map[string][]float64{"Math": {90, 80}})

	if err := svc.ClearGrades("alice", "Art"); err != roster.ErrNotEnrolled {
		t.Errorf("ClearGrades = %v; want ErrNotEnrolled", err)
	}
	if err := svc.ClearGrades("alice", "Math"); err != nil {
		t.Fatalf("ClearGrades: %v", err)
	}
	if _, ok, err := svc.CourseAverage("alice", "Math"); err != nil || ok {
		t.Errorf("CourseAverage after clear = (ok=%v, err=%v); want (false, nil)", ok, err)
	}
}

func TestServiceCourseAverageAndGPA(t *testing.T) {
	svc, repo, _ := setup(t, roster.PolicyFourPointScale)
	testutil.CreateStudent(t, repo, "alice", "S1", map[string][]float64{
		"Math": {90, 80},
		"Art":  {},
	})

	avg, ok, err := svc.CourseAverage("alice", "Math")
	if err != nil || !ok || avg != 85 {
		t.Errorf("CourseAverage = (%v, %v, %v); want (85, true, nil)", avg, ok, err)
	}
	if _, ok, err = svc.CourseAverage("alice", "Art"); err != nil || ok {
		t.Errorf("CourseAverage on empty course = (ok=%v, err=%v); want (false, nil)", ok, err)
	}
	if _, _, err = svc.CourseAverage("alice", "Physics"); err != roster.ErrNotEnrolled {
		t.Errorf("CourseAverage = %v; want ErrNotEnrolled", err)
	}

	gpa, ok, err := svc.GPA("alice")
	if err != nil || !ok || gpa != 3.0 {
		t.Errorf("GPA = (%v, %v, %v); want (3, true, nil)", gpa, ok, err)
	}
	if _, _, err = svc.GPA("ghost"); err != roster.ErrNotFound {
		t.Errorf("GPA unknown student = %v; want ErrNotFound", err)
	}
}

func TestServiceGPAMeanPolicy(t *testing.T) {
	svc, repo, _ := setup(t, roster.PolicyMeanOfAverages)
	testutil.CreateStudent(t, repo, "alice", "S1", map[string][]float64{
		"Math":    {90, 80},
		"Physics": {72},
	})

	gpa, ok, err := svc.GPA("alice")
	if err != nil || !ok || gpa != 78.5 {
		t.Errorf("GPA = (%v, %v, %v); want (78.5, true, nil)", gpa, ok, err)
	}
}

func TestServiceRenderStudent(t *testing.T) {
	svc, repo, _ := setup(t, roster.PolicyFourPointScale)
	testutil.CreateStudent(t, repo, "alice", "S1", map[string][]float64{
		"Math": {90, 80},
		"Art":  {},
	})

	got, err := svc.RenderStudent("alice")
	if err != nil {
		t.Fatalf("RenderStudent: %v", err)
	}
	want := strings.Join([]string{
		"Name: alice",
		"Student ID: S1",
		"  - Art: grades=[] | avg=N/A",
		"  - Math: grades=[90, 80] | avg=85.00",
		"  Overall GPA: 3.00",
	}, "\n")
	if got != want {
		t.Errorf("RenderStudent =\n%s\nwant:\n%s", got, want)
	}

	if _, err = svc.RenderStudent("ghost"); err != roster.ErrNotFound {
		t.Errorf("RenderStudent = %v; want ErrNotFound", err)
	}
}

func TestServiceRenderStudentNoCourses(t *testing.T) {
	svc, repo, _ := setup(t, roster.PolicyFourPointScale)
	testutil.CreateStudent(t, repo, "bob", "S2", nil)

	got, err := svc.RenderStudent("bob")
	if err != nil {
		t.Fatalf("RenderStudent: %v", err)
	}
	want := strings.Join([]string{
		"Name: bob",
		"Student ID: S2",
		"  (no courses)",
		"  Overall GPA: N/A",
	}, "\n")
	if got != want {
		t.Errorf("RenderStudent =\n%s\nwant:\n%s", got, want)
	}
}

func TestServiceRenderAll(t *testing.T) {
	svc, repo, _ := setup(t, roster.PolicyFourPointScale)

	got, err := svc.RenderAll()
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if got != roster.NoStudentsPlaceholder {
		t.Errorf("RenderAll = %q; want %q", got, roster.NoStudentsPlaceholder)
	}

	testutil.CreateStudent(t, repo, "bob", "S2", nil)
	testutil.CreateStudent(t, repo, "alice", "S1", map[string][]float64{"Math": {90}})

	got, err = svc.RenderAll()
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	// sorted by name, blank line between reports
	want := strings.Join([]string{
		"Name: alice",
		"Student ID: S1",
		"  - Math: grades=[90] | avg=90.00",
		"  Overall GPA: 4.00",
		"",
		"Name: bob",
		"Student ID: S2",
		"  (no courses)",
		"  Overall GPA: N/A",
	}, "\n")
	if got != want {
		t.Errorf("RenderAll =\n%s\nwant:\n%s", got, want)
	}
}

func TestServiceSaveLoadRoundTrip(t *testing.T) {
	svc, repo, store := setup(t, roster.PolicyFourPointScale)
	testutil.CreateStudent(t, repo, "alice", "S1", map[string][]float64{"Math": {90, 80}})
	testutil.CreateStudent(t, repo, "bob", "S2", nil)

	if err := svc.Save("roster.json"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	before := store.snaps["roster.json"]

	// mutate, then load the snapshot back
	if err := svc.Delete("alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.RecordGrade("bob", "Art", 50); err != roster.ErrNotEnrolled {
		t.Fatalf("RecordGrade = %v; want ErrNotEnrolled", err)
	}
	if err := svc.Load("roster.json"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	after, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("round trip mismatch:\nbefore: %+v\nafter:  %+v", before, after)
	}

	students, err := svc.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll: %v", err)
	}
	names := make([]string, 0, len(students))
	for _, std := range students {
		names = append(names, std.Name)
	}
	sort.Strings(names)
	if !reflect.DeepEqual(names, []string{"alice", "bob"}) {
		t.Errorf("names after Load = %v", names)
	}
}

func TestServiceRestoreDefaults(t *testing.T) {
	svc, _, _ := setup(t, roster.PolicyFourPointScale)

	snap := roster.Snapshot{Students: map[string]roster.StudentSnapshot{
		"alice": {}, // no student ID, no courses
	}}
	if err := svc.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	std, err := svc.Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if std.StudentID != roster.UnknownStudentID {
		t.Errorf("StudentID = %q; want %q", std.StudentID, roster.UnknownStudentID)
	}
	if std.Courses == nil || len(std.Courses) != 0 {
		t.Errorf("Courses = %v; want empty map", std.Courses)
	}
}

func TestServiceRestoreRejectsNonFiniteGrades(t *testing.T) {
	svc, repo, _ := setup(t, roster.PolicyFourPointScale)
	testutil.CreateStudent(t, repo, "bob", "S2", nil)

	snap := roster.Snapshot{Students: map[string]roster.StudentSnapshot{
		"alice": {Courses: map[string][]float64{"Math": {math.Inf(1)}}},
	}}
	if err := svc.Restore(snap); err != roster.ErrInvalidGrade {
		t.Fatalf("Restore = %v; want ErrInvalidGrade", err)
	}

	// the roster is untouched on a failed restore
	if _, err := svc.Get("bob"); err != nil {
		t.Errorf("Get after failed Restore: %v", err)
	}
}

func TestServiceLoadPropagatesStoreError(t *testing.T) {
	svc, _, store := setup(t, roster.PolicyFourPointScale)
	store.readErr = errReadFailed

	if err := svc.Load("roster.json"); err != errReadFailed {
		t.Errorf("Load = %v; want %v", err, errReadFailed)
	}
}

var errReadFailed = errFake("read failed")

type errFake string

func (e errFake) Error() string { return string(e) }
