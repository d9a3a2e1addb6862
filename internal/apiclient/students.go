package apiclient

import (
	"context"
	"fmt"

	"github.com/brisa-edu/brisa-client/internal/models"
)

// StudentReportFilter scopes the student reports. Zero fields are omitted.
type StudentReportFilter struct {
	CursoID *int
	Nivel   models.Nivel
	Gestion string
}

func (f *StudentReportFilter) params() []Param {
	if f == nil {
		return nil
	}
	return []Param{P("curso_id", f.CursoID), P("nivel", f.Nivel), P("gestion", f.Gestion)}
}

// Students defines the student operations
type Students interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id int) (*models.Student, error)
	StudentReport(ctx context.Context, f *StudentReportFilter) (*models.StudentListReport, error)
	GuardiansReport(ctx context.Context, withGuardians *bool) (*models.StudentGuardiansReport, error)
	GuardianContactsReport(ctx context.Context, f *StudentReportFilter) (*models.GuardianContactsReport, error)
	AgeDistributionReport(ctx context.Context, f *StudentReportFilter) (*models.AgeDistributionReport, error)
	CourseHistoryReport(ctx context.Context, studentID *int) (*models.CourseHistoryReport, error)
}

type studentClient struct {
	client *BaseClient
}

func NewStudentClient(client *BaseClient) Students {
	return &studentClient{client: client}
}

func (c *studentClient) ListStudents(ctx context.Context) ([]models.Student, error) {
	var out []models.Student
	if err := c.client.Get(ctx, "/estudiantes/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *studentClient) GetStudent(ctx context.Context, id int) (*models.Student, error) {
	var out models.Student
	if err := c.client.Get(ctx, fmt.Sprintf("/estudiantes/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *studentClient) StudentReport(ctx context.Context, f *StudentReportFilter) (*models.StudentListReport, error) {
	var out models.StudentListReport
	if err := c.client.Get(ctx, "/reports/students"+BuildQuery(f.params()...), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GuardiansReport lists students with their guardians. withGuardians nil
// returns every student.
func (c *studentClient) GuardiansReport(ctx context.Context, withGuardians *bool) (*models.StudentGuardiansReport, error) {
	var out models.StudentGuardiansReport
	path := "/reports/students/guardians" + BuildQuery(P("con_apoderados", withGuardians))
	if err := c.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *studentClient) GuardianContactsReport(ctx context.Context, f *StudentReportFilter) (*models.GuardianContactsReport, error) {
	var out models.GuardianContactsReport
	if err := c.client.Get(ctx, "/reports/students/guardian-contacts"+BuildQuery(f.params()...), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *studentClient) AgeDistributionReport(ctx context.Context, f *StudentReportFilter) (*models.AgeDistributionReport, error) {
	var out models.AgeDistributionReport
	if err := c.client.Get(ctx, "/reports/students/age-distribution"+BuildQuery(f.params()...), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *studentClient) CourseHistoryReport(ctx context.Context, studentID *int) (*models.CourseHistoryReport, error) {
	var out models.CourseHistoryReport
	path := "/reports/students/course-history" + BuildQuery(P("estudiante_id", studentID))
	if err := c.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
