package apiclient

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brisa-edu/brisa-client/internal/models"
)

type professorBackend struct {
	listCalls       int32
	assignmentCalls int32
}

func (b *professorBackend) handler(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/profesores":
		atomic.AddInt32(&b.listCalls, 1)
		writeJSON(w, http.StatusOK, []models.Professor{{IDProfesor: 1, Nombres: "Ana"}})
	case r.Method == http.MethodGet && r.URL.Path == "/api/profesores/1/asignaciones":
		atomic.AddInt32(&b.assignmentCalls, 1)
		writeJSON(w, http.StatusOK, []models.Assignment{{IDProfesor: 1, IDCurso: 2, IDMateria: 3}})
	case r.Method == http.MethodPost && r.URL.Path == "/api/profesores":
		writeJSON(w, http.StatusCreated, models.Professor{IDProfesor: 2})
	case r.Method == http.MethodPost && r.URL.Path == "/api/profesores/asignar-curso-materia":
		writeJSON(w, http.StatusCreated, models.Assignment{IDProfesor: 1, IDCurso: 4, IDMateria: 5})
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func TestProfessorListIsCached(t *testing.T) {
	b := &professorBackend{}
	profs := NewProfessorClient(newTestClient(t, b.handler, "tok"))
	ctx := context.Background()

	first, err := profs.ListProfessors(ctx, false)
	require.NoError(t, err)
	second, err := profs.ListProfessors(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&b.listCalls))

	_, err = profs.ListProfessors(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&b.listCalls))
}

func TestProfessorMutationsInvalidateList(t *testing.T) {
	b := &professorBackend{}
	profs := NewProfessorClient(newTestClient(t, b.handler, "tok"))
	ctx := context.Background()

	_, err := profs.ListProfessors(ctx, false)
	require.NoError(t, err)
	_, err = profs.CreateProfessor(ctx, &models.ProfessorCreate{Nombres: "Luis"})
	require.NoError(t, err)
	_, err = profs.ListProfessors(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&b.listCalls))

	require.NoError(t, profs.DeleteProfessor(ctx, 2))
	_, err = profs.ListProfessors(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&b.listCalls))
}

func TestProfessorAssignmentCache(t *testing.T) {
	b := &professorBackend{}
	profs := NewProfessorClient(newTestClient(t, b.handler, "tok"))
	ctx := context.Background()

	_, err := profs.ListAssignments(ctx, 1)
	require.NoError(t, err)
	_, err = profs.ListAssignments(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&b.assignmentCalls))

	_, err = profs.AssignCourseSubject(ctx, &models.AssignCourseSubject{IDProfesor: 1, IDCurso: 4, IDMateria: 5})
	require.NoError(t, err)
	_, err = profs.ListAssignments(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&b.assignmentCalls))

	require.NoError(t, profs.RemoveAssignment(ctx, 1, 4, 5))
	_, err = profs.ListAssignments(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&b.assignmentCalls))

	profs.ClearAssignmentCache()
	_, err = profs.ListAssignments(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&b.assignmentCalls))
}

func TestProfessorCachesAreNotShared(t *testing.T) {
	b := &professorBackend{}
	profs := NewProfessorClient(newTestClient(t, b.handler, "tok"))
	ctx := context.Background()

	list, err := profs.ListProfessors(ctx, false)
	require.NoError(t, err)
	list[0].Nombres = "changed"
	again, err := profs.ListProfessors(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again[0].Nombres)

	as, err := profs.ListAssignments(ctx, 1)
	require.NoError(t, err)
	as[0].IDCurso = 99
	again2, err := profs.ListAssignments(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, again2[0].IDCurso)
	assert.Equal(t, int32(1), atomic.LoadInt32(&b.assignmentCalls))
}
