package apiclient

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/brisa-edu/brisa-client/internal/models"
)

// Professors defines the professor and assignment operations. The list and
// the per-professor assignments are cached until a mutation invalidates them.
type Professors interface {
	ListProfessors(ctx context.Context, force bool) ([]models.Professor, error)
	GetProfessor(ctx context.Context, id int) (*models.Professor, error)
	CreateProfessor(ctx context.Context, in *models.ProfessorCreate) (*models.Professor, error)
	UpdateProfessor(ctx context.Context, id int, in *models.ProfessorUpdate) (*models.Professor, error)
	DeleteProfessor(ctx context.Context, id int) error
	ListAssignments(ctx context.Context, professorID int) ([]models.Assignment, error)
	AssignCourseSubject(ctx context.Context, in *models.AssignCourseSubject) (*models.Assignment, error)
	RemoveAssignment(ctx context.Context, professorID, courseID, subjectID int) error
	ClearAssignmentCache()
}

type professorClient struct {
	client *BaseClient

	mu          sync.Mutex
	professors  []models.Professor
	assignments map[int][]models.Assignment
}

func NewProfessorClient(client *BaseClient) Professors {
	return &professorClient{client: client, assignments: map[int][]models.Assignment{}}
}

func (c *professorClient) ListProfessors(ctx context.Context, force bool) ([]models.Professor, error) {
	if !force {
		c.mu.Lock()
		cached := c.professors
		c.mu.Unlock()
		if cached != nil {
			return slices.Clone(cached), nil
		}
	}
	var out []models.Professor
	if err := c.client.Get(ctx, "/profesores", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Professor{}
	}
	c.mu.Lock()
	c.professors = out
	c.mu.Unlock()
	return slices.Clone(out), nil
}

func (c *professorClient) GetProfessor(ctx context.Context, id int) (*models.Professor, error) {
	var out models.Professor
	if err := c.client.Get(ctx, fmt.Sprintf("/profesores/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *professorClient) CreateProfessor(ctx context.Context, in *models.ProfessorCreate) (*models.Professor, error) {
	var out models.Professor
	if err := c.client.Post(ctx, "/profesores", in, &out); err != nil {
		return nil, err
	}
	c.invalidateList()
	return &out, nil
}

func (c *professorClient) UpdateProfessor(ctx context.Context, id int, in *models.ProfessorUpdate) (*models.Professor, error) {
	var out models.Professor
	if err := c.client.Put(ctx, fmt.Sprintf("/profesores/%d", id), in, &out); err != nil {
		return nil, err
	}
	c.invalidateList()
	return &out, nil
}

func (c *professorClient) DeleteProfessor(ctx context.Context, id int) error {
	if err := c.client.Delete(ctx, fmt.Sprintf("/profesores/%d", id), nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.professors = nil
	delete(c.assignments, id)
	c.mu.Unlock()
	return nil
}

func (c *professorClient) ListAssignments(ctx context.Context, professorID int) ([]models.Assignment, error) {
	c.mu.Lock()
	cached, ok := c.assignments[professorID]
	c.mu.Unlock()
	if ok {
		return slices.Clone(cached), nil
	}
	var out []models.Assignment
	if err := c.client.Get(ctx, fmt.Sprintf("/profesores/%d/asignaciones", professorID), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Assignment{}
	}
	c.mu.Lock()
	c.assignments[professorID] = out
	c.mu.Unlock()
	return slices.Clone(out), nil
}

func (c *professorClient) AssignCourseSubject(ctx context.Context, in *models.AssignCourseSubject) (*models.Assignment, error) {
	var out models.Assignment
	if err := c.client.Post(ctx, "/profesores/asignar-curso-materia", in, &out); err != nil {
		return nil, err
	}
	c.invalidateAssignments(in.IDProfesor)
	return &out, nil
}

func (c *professorClient) RemoveAssignment(ctx context.Context, professorID, courseID, subjectID int) error {
	path := fmt.Sprintf("/profesores/%d/asignaciones/%d/%d", professorID, courseID, subjectID)
	if err := c.client.Delete(ctx, path, nil); err != nil {
		return err
	}
	c.invalidateAssignments(professorID)
	return nil
}

func (c *professorClient) ClearAssignmentCache() {
	c.mu.Lock()
	c.assignments = map[int][]models.Assignment{}
	c.mu.Unlock()
}

func (c *professorClient) invalidateList() {
	c.mu.Lock()
	c.professors = nil
	c.mu.Unlock()
}

func (c *professorClient) invalidateAssignments(professorID int) {
	c.mu.Lock()
	delete(c.assignments, professorID)
	c.mu.Unlock()
}
