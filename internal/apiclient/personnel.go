package apiclient

import (
	"context"
	"fmt"

	"github.com/brisa-edu/brisa-client/internal/models"
)

// Personnel lists professors and registrars in their summary shape.
type Personnel interface {
	ListProfessors(ctx context.Context) ([]models.Person, error)
	GetProfessor(ctx context.Context, id int) (*models.Person, error)
	ListRegistrars(ctx context.Context) ([]models.Person, error)
	GetRegistrar(ctx context.Context, id int) (*models.Person, error)
}

type personnelClient struct {
	client *BaseClient
}

func NewPersonnelClient(client *BaseClient) Personnel {
	return &personnelClient{client: client}
}

func (c *personnelClient) ListProfessors(ctx context.Context) ([]models.Person, error) {
	return c.list(ctx, "/profesores/")
}

func (c *personnelClient) GetProfessor(ctx context.Context, id int) (*models.Person, error) {
	return c.get(ctx, fmt.Sprintf("/profesores/%d", id))
}

func (c *personnelClient) ListRegistrars(ctx context.Context) ([]models.Person, error) {
	return c.list(ctx, "/registradores/")
}

func (c *personnelClient) GetRegistrar(ctx context.Context, id int) (*models.Person, error) {
	return c.get(ctx, fmt.Sprintf("/registradores/%d", id))
}

func (c *personnelClient) list(ctx context.Context, path string) ([]models.Person, error) {
	var out []models.Person
	if err := c.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *personnelClient) get(ctx context.Context, path string) (*models.Person, error) {
	var out models.Person
	if err := c.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
