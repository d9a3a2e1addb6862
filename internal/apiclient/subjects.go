package apiclient

import (
	"context"
	"fmt"

	"github.com/brisa-edu/brisa-client/internal/models"
)

// Subjects defines the materia operations
type Subjects interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	GetSubject(ctx context.Context, id int) (*models.Subject, error)
	CreateSubject(ctx context.Context, in *models.SubjectCreate) (*models.Subject, error)
	UpdateSubject(ctx context.Context, id int, in *models.SubjectUpdate) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id int) error
}

type subjectClient struct {
	client *BaseClient
}

func NewSubjectClient(client *BaseClient) Subjects {
	return &subjectClient{client: client}
}

func (c *subjectClient) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	var out []models.Subject
	if err := c.client.Get(ctx, "/materias/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *subjectClient) GetSubject(ctx context.Context, id int) (*models.Subject, error) {
	var out models.Subject
	if err := c.client.Get(ctx, fmt.Sprintf("/materias/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *subjectClient) CreateSubject(ctx context.Context, in *models.SubjectCreate) (*models.Subject, error) {
	var out models.Subject
	if err := c.client.Post(ctx, "/materias/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *subjectClient) UpdateSubject(ctx context.Context, id int, in *models.SubjectUpdate) (*models.Subject, error) {
	var out models.Subject
	if err := c.client.Put(ctx, fmt.Sprintf("/materias/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *subjectClient) DeleteSubject(ctx context.Context, id int) error {
	return c.client.Delete(ctx, fmt.Sprintf("/materias/%d", id), nil)
}
