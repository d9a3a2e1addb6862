// Package permissions answers which management screens a role may use.
// The answers are UI hints; the backend enforces the real rules.
package permissions

import (
	"fmt"

	"github.com/brisa-edu/brisa-client/internal/models"
)

// RoleSource reports the current user's role, "" when nobody is signed in.
type RoleSource interface {
	Role() string
}

type Kind string

const (
	Professors Kind = "profesores"
	Courses    Kind = "cursos"
	Subjects   Kind = "materias"
)

// Result is the outcome of Verify.
type Result struct {
	Allowed bool
	Message string
	Role    string
}

// Messages holds the wording used in denial messages, per kind and action.
var Messages = map[Kind]map[string]string{
	Professors: {
		"crear":    "crear profesores",
		"editar":   "editar profesores",
		"eliminar": "eliminar profesores",
		"asignar":  "asignar materias a profesores",
	},
	Courses: {
		"crear":    "crear cursos",
		"editar":   "editar cursos",
		"eliminar": "eliminar cursos",
	},
	Subjects: {
		"crear":    "crear materias",
		"editar":   "editar materias",
		"eliminar": "eliminar materias",
	},
}

func canManage(src RoleSource) bool {
	switch role(src) {
	case string(models.RoleDirector), string(models.RoleAdmin):
		return true
	}
	return false
}

func role(src RoleSource) string {
	if src == nil {
		return ""
	}
	return src.Role()
}

func displayRole(src RoleSource) string {
	if r := role(src); r != "" {
		return r
	}
	return string(models.RoleUsuario)
}

func CanManageProfessors(src RoleSource) bool { return canManage(src) }

func CanManageCourses(src RoleSource) bool { return canManage(src) }

func CanManageSubjects(src RoleSource) bool { return canManage(src) }

// DeniedMessage explains why action on module was refused.
func DeniedMessage(src RoleSource, action, module string) string {
	return fmt.Sprintf("No tienes permisos para %s %s. Solo Director y Admin pueden realizar esta acción. Tu rol actual: %s",
		action, module, displayRole(src))
}

func Verify(src RoleSource, kind Kind) Result {
	r := displayRole(src)
	var allowed bool
	switch kind {
	case Professors:
		allowed = CanManageProfessors(src)
	case Courses:
		allowed = CanManageCourses(src)
	case Subjects:
		allowed = CanManageSubjects(src)
	}
	res := Result{Allowed: allowed, Role: r}
	if !allowed {
		res.Message = fmt.Sprintf("Solo Director y Admin pueden gestionar %s. Tu rol actual: %s", kind, r)
	}
	return res
}
