package apiclient

import (
	"context"
	"fmt"

	"github.com/brisa-edu/brisa-client/internal/models"
)

// AdminStaff defines the administrative staff operations. Records are
// addressed by id_persona.
type AdminStaff interface {
	ListAdminStaff(ctx context.Context, full bool) ([]models.AdminStaff, error)
	GetAdminStaff(ctx context.Context, personID int) (*models.AdminStaff, error)
	CreateAdminStaff(ctx context.Context, in *models.AdminStaffCreate) (*models.AdminStaff, error)
	UpdateAdminStaff(ctx context.Context, personID int, in *models.AdminStaffUpdate) (*models.AdminStaff, error)
	DeleteAdminStaff(ctx context.Context, personID int) (*models.AdminStaff, error)
	ListPositions(ctx context.Context) ([]models.Position, error)
	GetPosition(ctx context.Context, id int) (*models.Position, error)
}

type adminStaffClient struct {
	client *BaseClient
}

func NewAdminStaffClient(client *BaseClient) AdminStaff {
	return &adminStaffClient{client: client}
}

func (c *adminStaffClient) ListAdminStaff(ctx context.Context, full bool) ([]models.AdminStaff, error) {
	var out []models.AdminStaff
	if err := c.client.Get(ctx, "/administrativos"+BuildQuery(P("completo", full)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminStaffClient) GetAdminStaff(ctx context.Context, personID int) (*models.AdminStaff, error) {
	var out models.AdminStaff
	if err := c.client.Get(ctx, fmt.Sprintf("/administrativos/%d", personID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *adminStaffClient) CreateAdminStaff(ctx context.Context, in *models.AdminStaffCreate) (*models.AdminStaff, error) {
	var out models.AdminStaff
	if err := c.client.Post(ctx, "/administrativos", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *adminStaffClient) UpdateAdminStaff(ctx context.Context, personID int, in *models.AdminStaffUpdate) (*models.AdminStaff, error) {
	var out models.AdminStaff
	if err := c.client.Put(ctx, fmt.Sprintf("/administrativos/%d", personID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAdminStaff returns the removed record when the backend echoes it.
func (c *adminStaffClient) DeleteAdminStaff(ctx context.Context, personID int) (*models.AdminStaff, error) {
	var out models.AdminStaff
	if err := c.client.Delete(ctx, fmt.Sprintf("/administrativos/%d", personID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *adminStaffClient) ListPositions(ctx context.Context) ([]models.Position, error) {
	var out []models.Position
	if err := c.client.Get(ctx, "/administrativos/cargos", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminStaffClient) GetPosition(ctx context.Context, id int) (*models.Position, error) {
	var out models.Position
	if err := c.client.Get(ctx, fmt.Sprintf("/administrativos/cargos/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
