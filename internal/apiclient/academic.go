package apiclient

import (
	"context"

	"github.com/brisa-edu/brisa-client/internal/models"
)

// AcademicFilter narrows the academic reports. Each report reads only the
// fields it understands.
type AcademicFilter struct {
	CursoID    *int
	MateriaID  *int
	ProfesorID *int
	Nivel      models.Nivel
	Gestion    string
}

// Academic defines the academic report operations
type Academic interface {
	AssignedProfessors(ctx context.Context, f *AcademicFilter) (*models.AssignedProfessorsReport, error)
	SubjectsByLevel(ctx context.Context, nivel models.Nivel) (*models.SubjectsByLevelReport, error)
	Workload(ctx context.Context, f *AcademicFilter) (*models.WorkloadReport, error)
	CoursesByTerm(ctx context.Context, f *AcademicFilter) (*models.CoursesByTermReport, error)
}

type academicClient struct {
	client *BaseClient
}

func NewAcademicClient(client *BaseClient) Academic {
	return &academicClient{client: client}
}

func (c *academicClient) AssignedProfessors(ctx context.Context, f *AcademicFilter) (*models.AssignedProfessorsReport, error) {
	if f == nil {
		f = &AcademicFilter{}
	}
	q := BuildQuery(P("curso_id", f.CursoID), P("materia_id", f.MateriaID), P("nivel", f.Nivel), P("gestion", f.Gestion))
	var out models.AssignedProfessorsReport
	if err := c.client.Get(ctx, "/reports/academic/professors"+q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *academicClient) SubjectsByLevel(ctx context.Context, nivel models.Nivel) (*models.SubjectsByLevelReport, error) {
	var out models.SubjectsByLevelReport
	if err := c.client.Get(ctx, "/reports/academic/subjects"+BuildQuery(P("nivel", nivel)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *academicClient) Workload(ctx context.Context, f *AcademicFilter) (*models.WorkloadReport, error) {
	if f == nil {
		f = &AcademicFilter{}
	}
	var out models.WorkloadReport
	q := BuildQuery(P("profesor_id", f.ProfesorID), P("gestion", f.Gestion))
	if err := c.client.Get(ctx, "/reports/academic/workload"+q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *academicClient) CoursesByTerm(ctx context.Context, f *AcademicFilter) (*models.CoursesByTermReport, error) {
	if f == nil {
		f = &AcademicFilter{}
	}
	var out models.CoursesByTermReport
	q := BuildQuery(P("gestion", f.Gestion), P("nivel", f.Nivel))
	if err := c.client.Get(ctx, "/reports/academic/courses"+q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
