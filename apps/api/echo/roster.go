package echoapi

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/madarasa/gradebook/core"
	"github.com/madarasa/gradebook/core/roster"
)

type rosterApi struct {
	svc  *roster.Service
	conf *core.Config
}

func registerRosterAPI(g *echo.Group, svc *roster.Service, conf *core.Config) {
	api := rosterApi{svc: svc, conf: conf}

	sg := g.Group("/students")
	sg.POST("", api.studentCreate)
	sg.GET("", api.studentQuery)
	sg.GET("/report", api.studentReportAll)

	// detail endpoints
	dg := sg.Group("/:name")
	dg.GET("", api.studentRetrieve)
	dg.DELETE("", api.studentDestroy)
	dg.GET("/report", api.studentReport)
	dg.GET("/gpa", api.studentGPA)
	dg.POST("/courses", api.courseEnroll)
	dg.DELETE("/courses/:course", api.courseUnenroll)
	dg.POST("/courses/:course/grades", api.gradeCreate)
	dg.DELETE("/courses/:course/grades", api.gradesClear)
	dg.GET("/courses/:course/average", api.courseAverage)

	rg := g.Group("/roster")
	rg.POST("/save", api.rosterSave)
	rg.POST("/load", api.rosterLoad)
}

// Serializers

type (
	StudentResponse struct {
		Name      string               `json:"name"`
		StudentID string               `json:"student_id"`
		Courses   map[string][]float64 `json:"courses"`
		GPA       *float64             `json:"gpa"`
	}

	AverageResponse struct {
		Course  string   `json:"course"`
		Average *float64 `json:"average"`
	}

	GPAResponse struct {
		Name string   `json:"name"`
		GPA  *float64 `json:"gpa"`
	}

	SnapshotRequest struct {
		Path string `json:"path"`
	}

	SnapshotResponse struct {
		Path string `json:"path"`
	}
)

func (api *rosterApi) serialize(std roster.Student) StudentResponse {
	resp := StudentResponse{
		Name:      std.Name,
		StudentID: std.StudentID,
		Courses:   make(map[string][]float64, len(std.Courses)),
	}
	for name, crs := range std.Courses {
		grades := make([]float64, len(crs.Grades))
		copy(grades, crs.Grades)
		resp.Courses[name] = grades
	}
	if gpa, ok := std.GPA(api.svc.Policy()); ok {
		resp.GPA = &gpa
	}
	return resp
}

// Handlers

func (api *rosterApi) studentCreate(ctx echo.Context) error {
	data := new(roster.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := api.svc.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.serialize(std))
}

func (api *rosterApi) studentQuery(ctx echo.Context) error {
	students, err := api.svc.QueryAll()
	if err != nil {
		return err
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })

	resp := make([]StudentResponse, 0, len(students))
	for _, std := range students {
		resp = append(resp, api.serialize(std))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *rosterApi) studentRetrieve(ctx echo.Context) error {
	std, err := api.svc.Get(ctx.Param("name"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.serialize(std))
}

func (api *rosterApi) studentDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("name")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rosterApi) studentReport(ctx echo.Context) error {
	report, err := api.svc.RenderStudent(ctx.Param("name"))
	if err != nil {
		return err
	}
	return ctx.String(http.StatusOK, report)
}

func (api *rosterApi) studentReportAll(ctx echo.Context) error {
	report, err := api.svc.RenderAll()
	if err != nil {
		return err
	}
	return ctx.String(http.StatusOK, report)
}

func (api *rosterApi) studentGPA(ctx echo.Context) error {
	name := ctx.Param("name")
	gpa, ok, err := api.svc.GPA(name)
	if err != nil {
		return err
	}
	resp := GPAResponse{Name: name}
	if ok {
		resp.GPA = &gpa
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *rosterApi) courseEnroll(ctx echo.Context) error {
	data := new(roster.Enrollment)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.Enroll(ctx.Param("name"), data.Course); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api *rosterApi) courseUnenroll(ctx echo.Context) error {
	if err := api.svc.Unenroll(ctx.Param("name"), ctx.Param("course")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rosterApi) gradeCreate(ctx echo.Context) error {
	data := new(roster.NewGrade)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	name, course := ctx.Param("name"), ctx.Param("course")
	if err := api.svc.RecordGrade(name, course, data.Value); err != nil {
		return err
	}

	resp := AverageResponse{Course: course}
	if avg, ok, err := api.svc.CourseAverage(name, course); err == nil && ok {
		resp.Average = &avg
	}
	return ctx.JSON(http.StatusCreated, resp)
}

func (api *rosterApi) gradesClear(ctx echo.Context) error {
	if err := api.svc.ClearGrades(ctx.Param("name"), ctx.Param("course")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rosterApi) courseAverage(ctx echo.Context) error {
	course := ctx.Param("course")
	avg, ok, err := api.svc.CourseAverage(ctx.Param("name"), course)
	if err != nil {
		return err
	}
	resp := AverageResponse{Course: course}
	if ok {
		resp.Average = &avg
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *rosterApi) rosterSave(ctx echo.Context) error {
	data := new(SnapshotRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	path := data.Path
	if path == "" {
		path = api.conf.DataFile
	}

	if err := api.svc.Save(path); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SnapshotResponse{Path: path})
}

func (api *rosterApi) rosterLoad(ctx echo.Context) error {
	data := new(SnapshotRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	path := data.Path
	if path == "" {
		path = api.conf.DataFile
	}

	if err := api.svc.Load(path); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SnapshotResponse{Path: path})
}
