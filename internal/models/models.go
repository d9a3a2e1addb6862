package models

import (
	"encoding/json"
	"fmt"
)

// Envelope is the {status, message, data} wrapper the auth endpoints use.
type Envelope[T any] struct {
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	Data         T               `json:"data,omitempty"`
	ErrorDetails json.RawMessage `json:"error_details,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIError is returned for every failed request. Status is 0 when the
// request never produced an HTTP response.
type APIError struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Status  int    `json:"status"`
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// ValidationError is one entry of a FastAPI 422 body.
type ValidationError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

type HTTPValidationError struct {
	Detail []ValidationError `json:"detail"`
}

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleDirector Role = "Director"
	RoleProfesor Role = "Profesor"
	RoleUsuario  Role = "Usuario"
)

// Nivel is a school level.
type Nivel string

const (
	NivelInicial    Nivel = "inicial"
	NivelPrimaria   Nivel = "primaria"
	NivelSecundaria Nivel = "secundaria"
)
