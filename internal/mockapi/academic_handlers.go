package mockapi

import (
	"net/http"
	"slices"

	"github.com/brisa-edu/brisa-client/internal/models"
)

/* ------------------ subjects ------------------ */

func (a *API) listSubjects(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	writeJSON(w, http.StatusOK, sorted(a.data.subjects))
}

func (a *API) getSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, found := a.data.subjects[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Materia no encontrada")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *API) createSubject(w http.ResponseWriter, r *http.Request) {
	var req models.SubjectCreate
	if !decode(w, r, &req) {
		return
	}
	if req.NombreMateria == "" || req.Nivel == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "nombre_materia y nivel son requeridos")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	s := &models.Subject{IDMateria: a.data.newID(), NombreMateria: req.NombreMateria, Nivel: req.Nivel, Alias: req.Alias}
	a.data.subjects[s.IDMateria] = s
	writeJSON(w, http.StatusCreated, s)
}

func (a *API) updateSubject(w http.ResponseWriter, r *http.Request) {
	var req models.SubjectUpdate
	if !decode(w, r, &req) {
		return
	}
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	s, found := a.data.subjects[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Materia no encontrada")
		return
	}
	setString(&s.NombreMateria, req.NombreMateria)
	setString(&s.Nivel, req.Nivel)
	setString(&s.Alias, req.Alias)
	writeJSON(w, http.StatusOK, s)
}

func (a *API) deleteSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, found := a.data.subjects[id]; !found {
		writeDetail(w, http.StatusNotFound, "Materia no encontrada")
		return
	}
	for _, as := range a.data.assignments {
		if as.IDMateria == id {
			writeDetail(w, http.StatusConflict, "La materia tiene profesores asignados")
			return
		}
	}
	delete(a.data.subjects, id)
	w.WriteHeader(http.StatusNoContent)
}

/* ------------------ courses ------------------ */

func (d *dataset) courseView(c models.Course) models.Course {
	c.TotalEstudiantes = ptr(d.courseStudentCount(c.IDCurso))
	return c
}

// professorCourses lists the courses a professor teaches in, by id.
func (d *dataset) professorCourses(professorID int) []models.Course {
	seen := map[int]bool{}
	out := []models.Course{}
	for _, as := range d.assignments {
		if as.IDProfesor != professorID || seen[as.IDCurso] {
			continue
		}
		if c, ok := d.courses[as.IDCurso]; ok {
			seen[as.IDCurso] = true
			out = append(out, d.courseView(*c))
		}
	}
	slices.SortFunc(out, func(a, b models.Course) int { return a.IDCurso - b.IDCurso })
	return out
}

// listCourses scopes the list to a professor's courses when id_persona
// belongs to one.
func (a *API) listCourses(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if persona := queryInt(r, "id_persona"); persona != nil {
		if p := a.data.professorByPersona(*persona); p != nil {
			writeJSON(w, http.StatusOK, a.data.professorCourses(p.IDProfesor))
			return
		}
	}
	out := []models.Course{}
	for _, c := range sorted(a.data.courses) {
		out = append(out, a.data.courseView(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) teacherCourses(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	writeJSON(w, http.StatusOK, a.data.professorCourses(id))
}

func (a *API) getCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, found := a.data.courses[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Curso no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, a.data.courseView(*c))
}

func (a *API) courseStudents(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if _, found := a.data.courses[id]; !found {
		writeDetail(w, http.StatusNotFound, "Curso no encontrado")
		return
	}
	out := []models.Student{}
	for _, s := range sorted(a.data.students) {
		for _, e := range a.data.enrollments {
			if e.StudentID == s.IDEstudiante && e.CourseID == id {
				out = append(out, a.data.studentView(s))
				break
			}
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) courseTeachers(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if _, found := a.data.courses[id]; !found {
		writeDetail(w, http.StatusNotFound, "Curso no encontrado")
		return
	}
	out := []models.CourseTeacher{}
	for _, as := range a.data.assignments {
		if as.IDCurso != id {
			continue
		}
		p, ok := a.data.professors[as.IDProfesor]
		if !ok {
			continue
		}
		ct := models.CourseTeacher{
			IDProfesor:     p.IDProfesor,
			NombreCompleto: fullName(p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno),
			IDMateria:      as.IDMateria,
		}
		if s, ok := a.data.subjects[as.IDMateria]; ok {
			ct.NombreMateria = s.NombreMateria
		}
		out = append(out, ct)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) createCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CourseCreate
	if !decode(w, r, &req) {
		return
	}
	if req.NombreCurso == "" || req.Nivel == "" || req.Gestion == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "nombre_curso, nivel y gestion son requeridos")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	c := &models.Course{IDCurso: a.data.newID(), NombreCurso: req.NombreCurso, Nivel: req.Nivel, Gestion: req.Gestion, Paralelo: req.Paralelo}
	a.data.courses[c.IDCurso] = c
	writeJSON(w, http.StatusCreated, a.data.courseView(*c))
}

func (a *API) updateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CourseUpdate
	if !decode(w, r, &req) {
		return
	}
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	c, found := a.data.courses[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Curso no encontrado")
		return
	}
	setString(&c.NombreCurso, req.NombreCurso)
	setString(&c.Nivel, req.Nivel)
	setString(&c.Gestion, req.Gestion)
	setString(&c.Paralelo, req.Paralelo)
	writeJSON(w, http.StatusOK, a.data.courseView(*c))
}

func (a *API) deleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, found := a.data.courses[id]; !found {
		writeDetail(w, http.StatusNotFound, "Curso no encontrado")
		return
	}
	if a.data.courseStudentCount(id) > 0 {
		writeDetail(w, http.StatusConflict, "El curso tiene estudiantes inscritos")
		return
	}
	delete(a.data.courses, id)
	a.data.assignments = slices.DeleteFunc(a.data.assignments, func(as models.Assignment) bool {
		return as.IDCurso == id
	})
	w.WriteHeader(http.StatusNoContent)
}

/* ------------------ academic reports ------------------ */

func (a *API) assignedProfessorsReport(w http.ResponseWriter, r *http.Request) {
	cursoID, materiaID := queryInt(r, "curso_id"), queryInt(r, "materia_id")
	nivel, gestion := queryString(r, "nivel"), queryString(r, "gestion")

	a.mu.RLock()
	defer a.mu.RUnlock()
	rep := models.AssignedProfessorsReport{Nivel: nivel, Gestion: gestion, Profesores: []models.AssignedProfessorItem{}}
	if cursoID != nil {
		if c, ok := a.data.courses[*cursoID]; ok {
			rep.Curso = ptr(c.NombreCurso)
		}
	}
	if materiaID != nil {
		if s, ok := a.data.subjects[*materiaID]; ok {
			rep.Materia = ptr(s.NombreMateria)
		}
	}
	for _, as := range a.data.assignments {
		p, c, s := a.data.professors[as.IDProfesor], a.data.courses[as.IDCurso], a.data.subjects[as.IDMateria]
		if p == nil || c == nil || s == nil {
			continue
		}
		if (cursoID != nil && *cursoID != c.IDCurso) ||
			(materiaID != nil && *materiaID != s.IDMateria) ||
			(nivel != nil && *nivel != c.Nivel) ||
			(gestion != nil && *gestion != c.Gestion) {
			continue
		}
		rep.Profesores = append(rep.Profesores, models.AssignedProfessorItem{
			IDProfesor:     p.IDProfesor,
			CI:             p.CI,
			NombreCompleto: fullName(p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno),
			Telefono:       p.Telefono,
			Correo:         p.Correo,
			Curso:          c.NombreCurso,
			Materia:        s.NombreMateria,
		})
	}
	rep.Total = len(rep.Profesores)
	writeJSON(w, http.StatusOK, rep)
}

func (a *API) subjectsByLevelReport(w http.ResponseWriter, r *http.Request) {
	nivel := queryString(r, "nivel")
	a.mu.RLock()
	defer a.mu.RUnlock()
	rep := models.SubjectsByLevelReport{Nivel: nivel, Materias: []models.SubjectLevelItem{}}
	for _, s := range sorted(a.data.subjects) {
		if nivel != nil && *nivel != s.Nivel {
			continue
		}
		rep.Materias = append(rep.Materias, models.SubjectLevelItem{IDMateria: s.IDMateria, NombreMateria: s.NombreMateria, Nivel: s.Nivel})
	}
	rep.Total = len(rep.Materias)
	writeJSON(w, http.StatusOK, rep)
}

func (a *API) workloadReport(w http.ResponseWriter, r *http.Request) {
	profesorID, gestion := queryInt(r, "profesor_id"), queryString(r, "gestion")
	a.mu.RLock()
	defer a.mu.RUnlock()
	rep := models.WorkloadReport{Profesores: []models.ProfessorWorkloadItem{}}
	for _, p := range sorted(a.data.professors) {
		if profesorID != nil && *profesorID != p.IDProfesor {
			continue
		}
		item := models.ProfessorWorkloadItem{
			IDProfesor:     p.IDProfesor,
			CI:             p.CI,
			NombreCompleto: fullName(p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno),
			Telefono:       p.Telefono,
			Correo:         p.Correo,
			Asignaciones:   []models.WorkloadAssignment{},
		}
		courses, subjects := map[int]bool{}, map[int]bool{}
		for _, as := range a.data.assignments {
			c, s := a.data.courses[as.IDCurso], a.data.subjects[as.IDMateria]
			if as.IDProfesor != p.IDProfesor || c == nil || s == nil {
				continue
			}
			if gestion != nil && *gestion != c.Gestion {
				continue
			}
			courses[c.IDCurso], subjects[s.IDMateria] = true, true
			item.Asignaciones = append(item.Asignaciones, models.WorkloadAssignment{
				Curso: c.NombreCurso, Materia: s.NombreMateria, Nivel: c.Nivel, Gestion: c.Gestion,
			})
		}
		item.TotalAsignaciones = len(item.Asignaciones)
		item.CursosDistintos = len(courses)
		item.MateriasDistintas = len(subjects)
		rep.Profesores = append(rep.Profesores, item)
	}
	rep.TotalProfesores = len(rep.Profesores)
	writeJSON(w, http.StatusOK, rep)
}

func (a *API) coursesByTermReport(w http.ResponseWriter, r *http.Request) {
	gestion, nivel := queryString(r, "gestion"), queryString(r, "nivel")
	a.mu.RLock()
	defer a.mu.RUnlock()
	rep := models.CoursesByTermReport{Gestion: gestion, Nivel: nivel, Cursos: []models.CourseTermItem{}}
	for _, c := range sorted(a.data.courses) {
		if (gestion != nil && *gestion != c.Gestion) || (nivel != nil && *nivel != c.Nivel) {
			continue
		}
		rep.Cursos = append(rep.Cursos, models.CourseTermItem{
			IDCurso:          c.IDCurso,
			NombreCurso:      c.NombreCurso,
			Nivel:            c.Nivel,
			Gestion:          c.Gestion,
			TotalEstudiantes: a.data.courseStudentCount(c.IDCurso),
		})
	}
	rep.Total = len(rep.Cursos)
	writeJSON(w, http.StatusOK, rep)
}
