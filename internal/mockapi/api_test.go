package mockapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/brisa-edu/brisa-client/internal/apiclient"
	"github.com/brisa-edu/brisa-client/internal/mockapi"
	"github.com/brisa-edu/brisa-client/internal/models"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	api, err := mockapi.NewAPI(mockapi.Config{BcryptCost: bcrypt.MinCost, Logger: zap.NewNop()})
	require.NoError(t, err)
	srv := httptest.NewServer(api.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func clientFor(srv *httptest.Server, token string) *apiclient.Client {
	opts := []apiclient.Option{apiclient.WithHTTPClient(srv.Client()), apiclient.WithLogger(zap.NewNop())}
	if token != "" {
		opts = append(opts, apiclient.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})))
	}
	return apiclient.New(srv.URL, opts...)
}

func login(t *testing.T, srv *httptest.Server, usuario, password string) *apiclient.Client {
	t.Helper()
	resp, err := clientFor(srv, "").Auth.Login(context.Background(), &models.LoginRequest{Usuario: usuario, Password: password})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	return clientFor(srv, resp.AccessToken)
}

func TestLoginAndMe(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	resp, err := clientFor(srv, "").Auth.Login(ctx, &models.LoginRequest{Usuario: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", resp.Rol)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Contains(t, resp.Permisos, "Lectura")

	me, err := clientFor(srv, resp.AccessToken).Auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Usuario.Usuario)
	assert.Equal(t, "Admin", me.Rol)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := newServer(t)
	_, err := clientFor(srv, "").Auth.Login(context.Background(), &models.LoginRequest{Usuario: "admin", Password: "nope"})
	require.Error(t, err)
	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Usuario o contraseña incorrectos", apiErr.Message)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	srv := newServer(t)
	_, err := clientFor(srv, "").Students.ListStudents(context.Background())
	require.Error(t, err)
	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Not authenticated", apiErr.Message)
}

func TestHealthIsPublic(t *testing.T) {
	srv := newServer(t)
	h, err := clientFor(srv, "").Status.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h)
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := login(t, srv, "director", "director123")

	require.NoError(t, c.Auth.Logout(ctx))
	_, err := c.Auth.Me(ctx)
	assert.True(t, apiclient.IsUnauthorized(err))
}

func TestRefreshRevokesOldToken(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := login(t, srv, "director", "director123")

	tok, err := c.Auth.Refresh(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)

	_, err = c.Auth.Me(ctx)
	assert.True(t, apiclient.IsUnauthorized(err))
	_, err = clientFor(srv, tok.AccessToken).Auth.Me(ctx)
	assert.NoError(t, err)
}

func TestUserAdminIsAdminOnly(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	_, err := login(t, srv, "lgutierrez", "profesor123").Auth.ListUsers(ctx, 0, 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apiclient.StatusOf(err))

	users, err := login(t, srv, "admin", "admin123").Auth.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestPermissionChecks(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := login(t, srv, "lgutierrez", "profesor123")

	perms, err := c.Auth.MyPermissions(ctx)
	require.NoError(t, err)
	assert.False(t, perms.EsAdministrador)
	assert.ElementsMatch(t, []string{"esquelas", "reportes"}, perms.ModulosAccesibles)
	assert.Contains(t, perms.AccionesDisponibles, "crear_esquelas")

	assert.True(t, c.Auth.CanAccessModule(ctx, "esquelas"))
	assert.False(t, c.Auth.CanAccessModule(ctx, "usuarios"))
	assert.True(t, c.Auth.VerifyAction(ctx, "ver_reportes"))
	assert.False(t, c.Auth.VerifyAction(ctx, "eliminar_esquelas"))
}

func TestRegisterAndAssignRole(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	admin := login(t, srv, "admin", "admin123")

	u, err := admin.Auth.Register(ctx, &models.RegistroUsuarioRequest{Usuario: "nuevo", Password: "secreto1", Correo: "nuevo@brisa.edu.bo"})
	require.NoError(t, err)
	require.NoError(t, admin.Auth.AssignRole(ctx, u.IDUsuario, 3))

	c := login(t, srv, "nuevo", "secreto1")
	me, err := c.Auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Profesor", me.Rol)

	_, err = admin.Auth.Register(ctx, &models.RegistroUsuarioRequest{Usuario: "nuevo", Password: "otra"})
	assert.Equal(t, http.StatusConflict, apiclient.StatusOf(err))
}

func TestProfessorCoursesAndAssignments(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := login(t, srv, "director", "director123")

	persona := 102
	courses, err := c.Courses.ListCourses(ctx, &persona)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, 10, courses[0].IDCurso)
	assert.Equal(t, 11, courses[1].IDCurso)

	all, err := c.Courses.ListCourses(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	as, err := c.Professors.AssignCourseSubject(ctx, &models.AssignCourseSubject{IDProfesor: 31, IDCurso: 11, IDMateria: 22})
	require.NoError(t, err)
	assert.Equal(t, "Física", as.NombreMateria)
	assert.Equal(t, "2do Secundaria", as.NombreCurso)

	_, err = c.Professors.AssignCourseSubject(ctx, &models.AssignCourseSubject{IDProfesor: 31, IDCurso: 11, IDMateria: 22})
	assert.Equal(t, http.StatusConflict, apiclient.StatusOf(err))

	require.NoError(t, c.Professors.RemoveAssignment(ctx, 31, 11, 22))
	err = c.Professors.RemoveAssignment(ctx, 31, 11, 22)
	assert.Equal(t, http.StatusNotFound, apiclient.StatusOf(err))

	teachers, err := c.Courses.CourseTeachers(ctx, 10, nil)
	require.NoError(t, err)
	assert.Len(t, teachers, 2)
}

func TestCreateEsquelaDefaultsToCallingProfessor(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := login(t, srv, "lgutierrez", "profesor123")

	e, err := c.Esquelas.CreateEsquela(ctx, &models.EsquelaCreate{IDEstudiante: 3, Fecha: "2025-06-01", Codigos: []int{50}})
	require.NoError(t, err)
	require.NotNil(t, e.Profesor)
	assert.Equal(t, 102, e.Profesor.IDPersona)
	assert.Nil(t, e.Registrador)
	require.Len(t, e.Codigos, 1)
	assert.Equal(t, "R01", e.Codigos[0].Codigo)

	_, err = c.Esquelas.CreateEsquela(ctx, &models.EsquelaCreate{IDEstudiante: 3, Codigos: []int{999}})
	assert.Equal(t, http.StatusNotFound, apiclient.StatusOf(err))
}

func TestEsquelaAggregates(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := login(t, srv, "director", "director123")

	periods, err := c.Esquelas.AggregateByPeriod(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []models.EsquelaPeriodAggregate{
		{Periodo: "2024", Total: 1, Orientaciones: 1},
		{Periodo: "2025", Total: 3, Reconocimientos: 2, Orientaciones: 1},
	}, periods)

	year := 2025
	byCourse, err := c.Esquelas.AggregateByCourse(ctx, &year)
	require.NoError(t, err)
	require.Len(t, byCourse, 2)
	assert.Equal(t, models.EsquelaCourseAggregate{IDCurso: 11, NombreCurso: "2do Secundaria", Total: 2, Reconocimientos: 1, Orientaciones: 1}, byCourse[1])

	ranking, err := c.Esquelas.Ranking(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, ranking)
	assert.Equal(t, 2, ranking[0].IDEstudiante)
	assert.Equal(t, 2, ranking[0].Total)
}

func TestEsquelaReports(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := login(t, srv, "director", "director123")

	freq, err := c.Esquelas.FrequentCodesReport(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, freq.TotalAplicaciones)
	require.Len(t, freq.Codigos, 3)
	assert.Equal(t, "O01", freq.Codigos[0].Codigo)
	assert.InDelta(t, 40.0, freq.Codigos[0].Porcentaje, 0.001)
	assert.Equal(t, "O02", freq.Codigos[2].Codigo)

	byDate, err := c.Esquelas.ByDateReport(ctx, &apiclient.EsquelaReportFilter{From: "2025-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 3, byDate.Total)
	assert.Equal(t, 2, byDate.Reconocimientos)
	assert.Equal(t, "2025-05-20", byDate.Esquelas[0].Fecha)
	require.NotNil(t, byDate.FechaDesde)
	assert.Equal(t, "2025-01-01", *byDate.FechaDesde)

	prof := 30
	byProf, err := c.Esquelas.ByProfessorReport(ctx, &apiclient.EsquelaReportFilter{ProfesorID: &prof})
	require.NoError(t, err)
	require.Len(t, byProf.Profesores, 1)
	assert.Equal(t, 2, byProf.Profesores[0].TotalEsquelas)
	assert.Equal(t, "Luis Gutiérrez Paz", byProf.Profesores[0].ProfesorNombre)
}

func TestStudentReports(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := login(t, srv, "director", "director123")

	course := 11
	list, err := c.Students.StudentReport(ctx, &apiclient.StudentReportFilter{CursoID: &course})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	without := false
	guardians, err := c.Students.GuardiansReport(ctx, &without)
	require.NoError(t, err)
	require.Equal(t, 1, guardians.Total)
	assert.Equal(t, 3, guardians.Estudiantes[0].IDEstudiante)

	contacts, err := c.Students.GuardianContactsReport(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, contacts.Total)

	ages, err := c.Students.AgeDistributionReport(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, ages.TotalEstudiantes)
	assert.Len(t, ages.Distribucion, 4)

	student := 2
	history, err := c.Students.CourseHistoryReport(ctx, &student)
	require.NoError(t, err)
	require.Len(t, history.Historiales, 1)
	assert.Equal(t, 2, history.Historiales[0].TotalCursos)
}

func TestAcademicReports(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := login(t, srv, "director", "director123")

	prof := 30
	wl, err := c.Academic.Workload(ctx, &apiclient.AcademicFilter{ProfesorID: &prof})
	require.NoError(t, err)
	require.Len(t, wl.Profesores, 1)
	assert.Equal(t, 2, wl.Profesores[0].TotalAsignaciones)
	assert.Equal(t, 2, wl.Profesores[0].CursosDistintos)

	subjects, err := c.Academic.SubjectsByLevel(ctx, models.NivelPrimaria)
	require.NoError(t, err)
	assert.Equal(t, 2, subjects.Total)

	terms, err := c.Academic.CoursesByTerm(ctx, &apiclient.AcademicFilter{Gestion: "2024"})
	require.NoError(t, err)
	require.Equal(t, 1, terms.Total)
	assert.Equal(t, 1, terms.Cursos[0].TotalEstudiantes)

	assigned, err := c.Academic.AssignedProfessors(ctx, &apiclient.AcademicFilter{Nivel: models.NivelPrimaria})
	require.NoError(t, err)
	assert.Equal(t, 2, assigned.Total)
}
