package apiclient

import (
	"context"
	"fmt"

	"github.com/brisa-edu/brisa-client/internal/models"
)

// NoteCodes defines the esquela code catalogue operations
type NoteCodes interface {
	ListNoteCodes(ctx context.Context, tipo models.NoteCodeType) ([]models.NoteCode, error)
	GetNoteCode(ctx context.Context, id int) (*models.NoteCode, error)
	CreateNoteCode(ctx context.Context, in *models.NoteCodeInput) (*models.NoteCode, error)
	UpdateNoteCode(ctx context.Context, id int, in *models.NoteCodeInput) (*models.NoteCode, error)
	DeleteNoteCode(ctx context.Context, id int) error
}

type noteCodeClient struct {
	client *BaseClient
}

func NewNoteCodeClient(client *BaseClient) NoteCodes {
	return &noteCodeClient{client: client}
}

func (c *noteCodeClient) ListNoteCodes(ctx context.Context, tipo models.NoteCodeType) ([]models.NoteCode, error) {
	var out []models.NoteCode
	if err := c.client.Get(ctx, "/codigos-esquelas"+BuildQuery(P("tipo", tipo)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *noteCodeClient) GetNoteCode(ctx context.Context, id int) (*models.NoteCode, error) {
	var out models.NoteCode
	if err := c.client.Get(ctx, fmt.Sprintf("/codigos-esquelas/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *noteCodeClient) CreateNoteCode(ctx context.Context, in *models.NoteCodeInput) (*models.NoteCode, error) {
	var out models.NoteCode
	if err := c.client.Post(ctx, "/codigos-esquelas", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *noteCodeClient) UpdateNoteCode(ctx context.Context, id int, in *models.NoteCodeInput) (*models.NoteCode, error) {
	var out models.NoteCode
	if err := c.client.Put(ctx, fmt.Sprintf("/codigos-esquelas/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *noteCodeClient) DeleteNoteCode(ctx context.Context, id int) error {
	return c.client.Delete(ctx, fmt.Sprintf("/codigos-esquelas/%d", id), nil)
}
