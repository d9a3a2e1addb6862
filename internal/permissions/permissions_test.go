package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedRole string

func (r fixedRole) Role() string { return string(r) }

func TestCanManage(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"Admin", true},
		{"Director", true},
		{"Profesor", false},
		{"Usuario", false},
		{"", false},
		{"admin", false},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			src := fixedRole(tt.role)
			assert.Equal(t, tt.want, CanManageProfessors(src))
			assert.Equal(t, tt.want, CanManageCourses(src))
			assert.Equal(t, tt.want, CanManageSubjects(src))
		})
	}
}

func TestNilSourceIsDenied(t *testing.T) {
	assert.False(t, CanManageCourses(nil))
	res := Verify(nil, Courses)
	assert.False(t, res.Allowed)
	assert.Equal(t, "Usuario", res.Role)
}

func TestVerify(t *testing.T) {
	res := Verify(fixedRole("Director"), Professors)
	assert.True(t, res.Allowed)
	assert.Empty(t, res.Message)
	assert.Equal(t, "Director", res.Role)

	res = Verify(fixedRole("Profesor"), Subjects)
	assert.False(t, res.Allowed)
	assert.Equal(t, "Solo Director y Admin pueden gestionar materias. Tu rol actual: Profesor", res.Message)

	res = Verify(fixedRole("Admin"), Kind("otros"))
	assert.False(t, res.Allowed)
}

func TestDeniedMessage(t *testing.T) {
	msg := DeniedMessage(fixedRole(""), Messages[Professors]["asignar"], "")
	assert.Contains(t, msg, "asignar materias a profesores")
	assert.Contains(t, msg, "Tu rol actual: Usuario")
}
