// Package mockapi is an in-memory stand-in for the school backend. It
// serves the same paths and JSON shapes so the client can be exercised
// without the real service.
package mockapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/brisa-edu/brisa-client/internal/logger"
)

type Config struct {
	Secret   []byte
	TokenTTL time.Duration
	// BcryptCost hashes the seed passwords; zero means bcrypt.DefaultCost.
	BcryptCost int
	Logger     *zap.Logger
}

type API struct {
	cfg    Config
	router *chi.Mux
	log    *zap.Logger
	start  time.Time

	mu      sync.RWMutex
	data    *dataset
	revoked map[string]struct{}
}

func NewAPI(cfg Config) (*API, error) {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if len(cfg.Secret) == 0 {
		cfg.Secret = []byte("brisa-mock-secret")
	}
	data, err := seed(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	a := &API{
		cfg:     cfg,
		router:  chi.NewRouter(),
		log:     cfg.Logger,
		start:   time.Now(),
		data:    data,
		revoked: map[string]struct{}{},
	}
	if a.log == nil {
		a.log = logger.Get()
	}
	a.router.Use(requestID, middleware.Recoverer)
	a.routes()
	return a, nil
}

// Routes returns the router, to be mounted under /api.
func (a *API) Routes() *chi.Mux {
	return a.router
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func (a *API) routes() {
	r := a.router

	r.Get("/health", a.health)
	r.Get("/status", a.status)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", a.login)
		r.Group(func(r chi.Router) {
			r.Use(a.authMiddleware)
			r.Post("/logout", a.logout)
			r.Get("/me", a.me)
			r.Post("/refresh", a.refresh)
			r.Get("/me/permisos", a.myPermissions)
			r.Get("/me/puede-acceder/{modulo}", a.canAccess)
			r.Post("/me/verificar-permiso", a.verifyAction)

			r.Group(func(r chi.Router) {
				r.Use(a.adminOnly)
				r.Post("/registro", a.register)
				r.Get("/usuarios", a.listUsers)
				r.Get("/usuarios/{id}", a.getUser)
				r.Put("/usuarios/{id}", a.updateUser)
				r.Delete("/usuarios/{id}", a.deleteUser)
				r.Post("/usuarios/{id}/roles/{rol}", a.assignRole)
				r.Get("/roles", a.listRoles)
				r.Post("/roles/{id}/permisos", a.assignPermissions)
				r.Get("/permisos", a.listPermissions)
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(a.authMiddleware)

		r.Get("/estudiantes/", a.listStudents)
		r.Get("/estudiantes/{id}", a.getStudent)

		r.Get("/profesores", a.listProfessors)
		r.Post("/profesores", a.createProfessor)
		r.Get("/profesores/", a.listProfessorPeople)
		r.Post("/profesores/asignar-curso-materia", a.assignCourseSubject)
		r.Get("/profesores/{id}", a.getProfessor)
		r.Put("/profesores/{id}", a.updateProfessor)
		r.Delete("/profesores/{id}", a.deleteProfessor)
		r.Get("/profesores/{id}/asignaciones", a.listAssignments)
		r.Delete("/profesores/{id}/asignaciones/{curso}/{materia}", a.removeAssignment)

		r.Get("/registradores/", a.listRegistrars)
		r.Get("/registradores/{id}", a.getRegistrar)

		r.Get("/administrativos", a.listAdminStaff)
		r.Post("/administrativos", a.createAdminStaff)
		r.Get("/administrativos/cargos", a.listPositions)
		r.Get("/administrativos/cargos/{id}", a.getPosition)
		r.Get("/administrativos/{id}", a.getAdminStaff)
		r.Put("/administrativos/{id}", a.updateAdminStaff)
		r.Delete("/administrativos/{id}", a.deleteAdminStaff)

		r.Get("/materias/", a.listSubjects)
		r.Post("/materias/", a.createSubject)
		r.Get("/materias/{id}", a.getSubject)
		r.Put("/materias/{id}", a.updateSubject)
		r.Delete("/materias/{id}", a.deleteSubject)

		r.Get("/courses/", a.listCourses)
		r.Post("/courses/", a.createCourse)
		r.Get("/courses/mis_cursos/{id}", a.teacherCourses)
		r.Get("/courses/{id}", a.getCourse)
		r.Put("/courses/{id}", a.updateCourse)
		r.Delete("/courses/{id}", a.deleteCourse)
		r.Get("/courses/{id}/students/", a.courseStudents)
		r.Get("/courses/{id}/teachers/", a.courseTeachers)

		r.Get("/codigos-esquelas", a.listCodes)
		r.Post("/codigos-esquelas", a.createCode)
		r.Get("/codigos-esquelas/{id}", a.getCode)
		r.Put("/codigos-esquelas/{id}", a.updateCode)
		r.Delete("/codigos-esquelas/{id}", a.deleteCode)

		r.Get("/esquelas/", a.listEsquelas)
		r.Post("/esquelas/", a.createEsquela)
		r.Get("/esquelas/aggregate/by-course", a.aggregateByCourse)
		r.Get("/esquelas/aggregate/by-period", a.aggregateByPeriod)
		r.Get("/esquelas/{id}", a.getEsquela)
		r.Delete("/esquelas/{id}", a.deleteEsquela)
		r.Get("/students/{id}/esquelas", a.studentEsquelas)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/ranking", a.ranking)
			r.Get("/students", a.studentReport)
			r.Get("/students/guardians", a.guardiansReport)
			r.Get("/students/guardian-contacts", a.guardianContactsReport)
			r.Get("/students/age-distribution", a.ageDistributionReport)
			r.Get("/students/course-history", a.courseHistoryReport)
			r.Get("/academic/professors", a.assignedProfessorsReport)
			r.Get("/academic/subjects", a.subjectsByLevelReport)
			r.Get("/academic/workload", a.workloadReport)
			r.Get("/academic/courses", a.coursesByTermReport)
			r.Get("/esquelas/by-professor", a.esquelasByProfessorReport)
			r.Get("/esquelas/by-date", a.esquelasByDateReport)
			r.Get("/esquelas/frequent-codes", a.frequentCodesReport)
		})
	})
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "ok")
}

func (a *API) status(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "running",
		"uptime":      time.Since(a.start).Round(time.Second).String(),
		"time":        time.Now().UTC(),
		"estudiantes": len(a.data.students),
		"profesores":  len(a.data.professors),
		"esquelas":    len(a.data.esquelas),
	})
}
