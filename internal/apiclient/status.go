package apiclient

import (
	"context"
	"encoding/json"
)

// Status defines the liveness operations
type Status interface {
	Health(ctx context.Context) (string, error)
	Status(ctx context.Context) (map[string]any, error)
}

type statusClient struct {
	client *BaseClient
}

func NewStatusClient(client *BaseClient) Status {
	return &statusClient{client: client}
}

// Health returns the body of /health. A JSON string is unquoted; any other
// payload is returned as raw JSON text.
func (c *statusClient) Health(ctx context.Context) (string, error) {
	var raw json.RawMessage
	if err := c.client.Get(ctx, "/health", &raw); err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	return string(raw), nil
}

func (c *statusClient) Status(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.client.Get(ctx, "/status", &out); err != nil {
		return nil, err
	}
	return out, nil
}
