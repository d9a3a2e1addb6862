package mockapi

import (
	"net/http"
	"slices"
	"time"

	"github.com/brisa-edu/brisa-client/internal/models"
)

/* ------------------ students ------------------ */

// studentView fills the derived fields of a stored student.
func (d *dataset) studentView(s models.Student) models.Student {
	s.NombreCompleto = fullName(s.Nombres, s.ApellidoPaterno, s.ApellidoMaterno)
	s.Edad = age(s.FechaNacimiento, time.Now())
	s.Cursos = []string{}
	for _, c := range d.studentCourses(s.IDEstudiante) {
		s.Cursos = append(s.Cursos, c.NombreCurso)
	}
	return s
}

func age(birth *string, now time.Time) *int {
	if birth == nil {
		return nil
	}
	t, err := time.Parse(time.DateOnly, *birth)
	if err != nil {
		return nil
	}
	years := now.Year() - t.Year()
	if now.Month() < t.Month() || (now.Month() == t.Month() && now.Day() < t.Day()) {
		years--
	}
	return &years
}

func (a *API) listStudents(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := []models.Student{}
	for _, s := range sorted(a.data.students) {
		out = append(out, a.data.studentView(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, found := a.data.students[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Estudiante no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, a.data.studentView(*s))
}

/* ------------------ professors ------------------ */

func (d *dataset) professorView(p models.Professor) models.Professor {
	p.NombreCompleto = fullName(p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno)
	p.Asignaciones = d.professorAssignments(p.IDProfesor)
	return p
}

func (d *dataset) professorAssignments(id int) []models.Assignment {
	out := []models.Assignment{}
	for _, as := range d.assignments {
		if as.IDProfesor != id {
			continue
		}
		if p, ok := d.professors[as.IDProfesor]; ok {
			as.NombreProfesor = fullName(p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno)
		}
		if c, ok := d.courses[as.IDCurso]; ok {
			as.NombreCurso = c.NombreCurso
		}
		if s, ok := d.subjects[as.IDMateria]; ok {
			as.NombreMateria = s.NombreMateria
		}
		out = append(out, as)
	}
	return out
}

func (a *API) listProfessors(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := []models.Professor{}
	for _, p := range sorted(a.data.professors) {
		out = append(out, a.data.professorView(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getProfessor(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	p, found := a.data.professors[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Profesor no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, a.data.professorView(*p))
}

func (a *API) createProfessor(w http.ResponseWriter, r *http.Request) {
	var req models.ProfessorCreate
	if !decode(w, r, &req) {
		return
	}
	if req.CI == "" || req.Nombres == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "ci y nombres son requeridos")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	p := &models.Professor{
		IDProfesor:      a.data.newID(),
		IDPersona:       a.data.newID(),
		CI:              req.CI,
		Nombres:         req.Nombres,
		ApellidoPaterno: req.ApellidoPaterno,
		ApellidoMaterno: req.ApellidoMaterno,
		Direccion:       req.Direccion,
		Telefono:        req.Telefono,
		Correo:          req.Correo,
		IDCargo:         req.IDCargo,
		EstadoLaboral:   req.EstadoLaboral,
		AnosExperiencia: req.AnosExperiencia,
		FechaIngreso:    req.FechaIngreso,
		Especialidad:    req.Especialidad,
		TituloAcademico: req.TituloAcademico,
		NivelEnsenanza:  req.NivelEnsenanza,
		Observaciones:   req.Observaciones,
	}
	a.data.professors[p.IDProfesor] = p
	writeJSON(w, http.StatusCreated, a.data.professorView(*p))
}

func (a *API) updateProfessor(w http.ResponseWriter, r *http.Request) {
	var req models.ProfessorUpdate
	if !decode(w, r, &req) {
		return
	}
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	p, found := a.data.professors[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Profesor no encontrado")
		return
	}
	setString(&p.CI, req.CI)
	setString(&p.Nombres, req.Nombres)
	setString(&p.ApellidoPaterno, req.ApellidoPaterno)
	setString(&p.ApellidoMaterno, req.ApellidoMaterno)
	setString(&p.Direccion, req.Direccion)
	setString(&p.Telefono, req.Telefono)
	setString(&p.Correo, req.Correo)
	setString(&p.EstadoLaboral, req.EstadoLaboral)
	setString(&p.FechaIngreso, req.FechaIngreso)
	setString(&p.Especialidad, req.Especialidad)
	setString(&p.TituloAcademico, req.TituloAcademico)
	setString(&p.NivelEnsenanza, req.NivelEnsenanza)
	setString(&p.Observaciones, req.Observaciones)
	if req.IDCargo != nil {
		p.IDCargo = req.IDCargo
	}
	if req.AnosExperiencia != nil {
		p.AnosExperiencia = req.AnosExperiencia
	}
	writeJSON(w, http.StatusOK, a.data.professorView(*p))
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (a *API) deleteProfessor(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, found := a.data.professors[id]; !found {
		writeDetail(w, http.StatusNotFound, "Profesor no encontrado")
		return
	}
	delete(a.data.professors, id)
	a.data.assignments = slices.DeleteFunc(a.data.assignments, func(as models.Assignment) bool {
		return as.IDProfesor == id
	})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listAssignments(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if _, found := a.data.professors[id]; !found {
		writeDetail(w, http.StatusNotFound, "Profesor no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, a.data.professorAssignments(id))
}

func (a *API) assignCourseSubject(w http.ResponseWriter, r *http.Request) {
	var req models.AssignCourseSubject
	if !decode(w, r, &req) {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.data.professors[req.IDProfesor]; !ok {
		writeDetail(w, http.StatusNotFound, "Profesor no encontrado")
		return
	}
	if _, ok := a.data.courses[req.IDCurso]; !ok {
		writeDetail(w, http.StatusNotFound, "Curso no encontrado")
		return
	}
	if _, ok := a.data.subjects[req.IDMateria]; !ok {
		writeDetail(w, http.StatusNotFound, "Materia no encontrada")
		return
	}
	as := models.Assignment{IDProfesor: req.IDProfesor, IDCurso: req.IDCurso, IDMateria: req.IDMateria}
	for _, existing := range a.data.assignments {
		if existing.IDProfesor == as.IDProfesor && existing.IDCurso == as.IDCurso && existing.IDMateria == as.IDMateria {
			writeDetail(w, http.StatusConflict, "La asignación ya existe")
			return
		}
	}
	a.data.assignments = append(a.data.assignments, as)
	for _, view := range a.data.professorAssignments(as.IDProfesor) {
		if view.IDCurso == as.IDCurso && view.IDMateria == as.IDMateria {
			writeJSON(w, http.StatusCreated, view)
			return
		}
	}
}

func (a *API) removeAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	curso, ok := urlInt(w, r, "curso")
	if !ok {
		return
	}
	materia, ok := urlInt(w, r, "materia")
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	before := len(a.data.assignments)
	a.data.assignments = slices.DeleteFunc(a.data.assignments, func(as models.Assignment) bool {
		return as.IDProfesor == id && as.IDCurso == curso && as.IDMateria == materia
	})
	if len(a.data.assignments) == before {
		writeDetail(w, http.StatusNotFound, "Asignación no encontrada")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ------------------ personnel ------------------ */

func (a *API) listProfessorPeople(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := []models.Person{}
	for _, p := range sorted(a.data.professors) {
		out = append(out, *a.data.professorPerson(p.IDProfesor))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) listRegistrars(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := []models.Person{}
	for _, p := range sorted(a.data.registrars) {
		out = append(out, *a.data.registrarPerson(p.IDPersona))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getRegistrar(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	p := a.data.registrarPerson(id)
	if p == nil {
		writeDetail(w, http.StatusNotFound, "Registrador no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

/* ------------------ administrative staff ------------------ */

func (d *dataset) adminView(s models.AdminStaff, full bool) models.AdminStaff {
	s.NombreCompleto = fullName(s.Nombres, s.ApellidoPaterno, s.ApellidoMaterno)
	if s.IDCargo != nil {
		if c, ok := d.positions[*s.IDCargo]; ok {
			s.NombreCargo = c.NombreCargo
		}
	}
	if !full {
		return models.AdminStaff{
			IDPersona:      s.IDPersona,
			Nombres:        s.Nombres,
			NombreCompleto: s.NombreCompleto,
			NombreCargo:    s.NombreCargo,
			EstadoLaboral:  s.EstadoLaboral,
		}
	}
	return s
}

func (a *API) listAdminStaff(w http.ResponseWriter, r *http.Request) {
	full := deref(queryBool(r, "completo"))
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := []models.AdminStaff{}
	for _, s := range sorted(a.data.admins) {
		out = append(out, a.data.adminView(s, full))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) lookupAdmin(w http.ResponseWriter, r *http.Request) (int, *models.AdminStaff) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return 0, nil
	}
	s, found := a.data.admins[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Administrativo no encontrado")
		return 0, nil
	}
	return id, s
}

func (a *API) getAdminStaff(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if _, s := a.lookupAdmin(w, r); s != nil {
		writeJSON(w, http.StatusOK, a.data.adminView(*s, true))
	}
}

func (a *API) createAdminStaff(w http.ResponseWriter, r *http.Request) {
	var req models.AdminStaffCreate
	if !decode(w, r, &req) {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.data.positions[req.IDCargo]; !ok {
		writeDetail(w, http.StatusNotFound, "Cargo no encontrado")
		return
	}
	persona := a.data.newID()
	adminID := a.data.newID()
	estado := req.EstadoLaboral
	if estado == "" {
		estado = "activo"
	}
	s := &models.AdminStaff{
		ID:               ptr(adminID),
		IDPersona:        ptr(persona),
		IDAdministrativo: ptr(adminID),
		IDCargo:          ptr(req.IDCargo),
		CI:               req.CI,
		Nombres:          req.Nombres,
		ApellidoPaterno:  req.ApellidoPaterno,
		ApellidoMaterno:  req.ApellidoMaterno,
		Direccion:        req.Direccion,
		Telefono:         req.Telefono,
		Correo:           req.Correo,
		EstadoLaboral:    estado,
		AnosExperiencia:  req.AnosExperiencia,
		FechaIngreso:     req.FechaIngreso,
		HorarioEntrada:   req.HorarioEntrada,
		HorarioSalida:    req.HorarioSalida,
		AreaTrabajo:      req.AreaTrabajo,
		Observaciones:    req.Observaciones,
	}
	a.data.admins[persona] = s
	writeJSON(w, http.StatusCreated, a.data.adminView(*s, true))
}

func (a *API) updateAdminStaff(w http.ResponseWriter, r *http.Request) {
	var req models.AdminStaffUpdate
	if !decode(w, r, &req) {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	_, s := a.lookupAdmin(w, r)
	if s == nil {
		return
	}
	setString(&s.CI, req.CI)
	setString(&s.Nombres, req.Nombres)
	setString(&s.ApellidoPaterno, req.ApellidoPaterno)
	setString(&s.ApellidoMaterno, req.ApellidoMaterno)
	setString(&s.Direccion, req.Direccion)
	setString(&s.Telefono, req.Telefono)
	setString(&s.Correo, req.Correo)
	setString(&s.EstadoLaboral, req.EstadoLaboral)
	setString(&s.FechaIngreso, req.FechaIngreso)
	setString(&s.HorarioEntrada, req.HorarioEntrada)
	setString(&s.HorarioSalida, req.HorarioSalida)
	setString(&s.AreaTrabajo, req.AreaTrabajo)
	setString(&s.Observaciones, req.Observaciones)
	if req.IDCargo != nil {
		s.IDCargo = req.IDCargo
	}
	if req.AnosExperiencia != nil {
		s.AnosExperiencia = req.AnosExperiencia
	}
	writeJSON(w, http.StatusOK, a.data.adminView(*s, true))
}

// deleteAdminStaff echoes the removed record.
func (a *API) deleteAdminStaff(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, s := a.lookupAdmin(w, r)
	if s == nil {
		return
	}
	delete(a.data.admins, id)
	writeJSON(w, http.StatusOK, a.data.adminView(*s, true))
}

func (a *API) listPositions(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	writeJSON(w, http.StatusOK, sorted(a.data.positions))
}

func (a *API) getPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, found := a.data.positions[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Cargo no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, c)
}
