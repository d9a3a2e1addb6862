package mockapi

import (
	"cmp"
	"maps"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/brisa-edu/brisa-client/internal/models"
)

/* ------------------ codes ------------------ */

func (a *API) listCodes(w http.ResponseWriter, r *http.Request) {
	tipo := queryString(r, "tipo")
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := []models.NoteCode{}
	for _, c := range sorted(a.data.codes) {
		if tipo != nil && models.NoteCodeType(*tipo) != c.Tipo {
			continue
		}
		out = append(out, c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getCode(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, found := a.data.codes[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Código no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func validCode(in *models.NoteCodeInput) bool {
	if in.Codigo == "" || in.Descripcion == "" {
		return false
	}
	return in.Tipo == models.NoteCodeRecognition || in.Tipo == models.NoteCodeGuidance
}

func (a *API) createCode(w http.ResponseWriter, r *http.Request) {
	var req models.NoteCodeInput
	if !decode(w, r, &req) {
		return
	}
	if !validCode(&req) {
		writeDetail(w, http.StatusUnprocessableEntity, "codigo, descripcion y tipo válido son requeridos")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.data.codes {
		if strings.EqualFold(c.Codigo, req.Codigo) {
			writeDetail(w, http.StatusConflict, "El código ya existe")
			return
		}
	}
	c := &models.NoteCode{IDCodigo: a.data.newID(), Codigo: req.Codigo, Descripcion: req.Descripcion, Tipo: req.Tipo}
	a.data.codes[c.IDCodigo] = c
	writeJSON(w, http.StatusCreated, c)
}

func (a *API) updateCode(w http.ResponseWriter, r *http.Request) {
	var req models.NoteCodeInput
	if !decode(w, r, &req) {
		return
	}
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	if !validCode(&req) {
		writeDetail(w, http.StatusUnprocessableEntity, "codigo, descripcion y tipo válido son requeridos")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	c, found := a.data.codes[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Código no encontrado")
		return
	}
	c.Codigo, c.Descripcion, c.Tipo = req.Codigo, req.Descripcion, req.Tipo
	writeJSON(w, http.StatusOK, c)
}

func (a *API) deleteCode(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, found := a.data.codes[id]; !found {
		writeDetail(w, http.StatusNotFound, "Código no encontrado")
		return
	}
	for _, e := range a.data.esquelas {
		if slices.Contains(e.Codes, id) {
			writeDetail(w, http.StatusConflict, "El código está en uso")
			return
		}
	}
	delete(a.data.codes, id)
	w.WriteHeader(http.StatusNoContent)
}

/* ------------------ esquelas ------------------ */

// kind classifies an esquela by its first code.
func (d *dataset) kind(e *esquela) models.NoteCodeType {
	if len(e.Codes) == 0 {
		return ""
	}
	if c, ok := d.codes[e.Codes[0]]; ok {
		return c.Tipo
	}
	return ""
}

func (d *dataset) renderEsquela(e *esquela) models.Esquela {
	out := models.Esquela{IDEsquela: e.ID, Fecha: e.Fecha, Observaciones: e.Observaciones, Codigos: []models.NoteCode{}}
	if s, ok := d.students[e.StudentID]; ok {
		v := d.studentView(*s)
		out.Estudiante = &v
	}
	out.Profesor = d.professorPerson(e.ProfessorID)
	out.Registrador = d.registrarPerson(e.RegistrarID)
	for _, id := range e.Codes {
		if c, ok := d.codes[id]; ok {
			out.Codigos = append(out.Codigos, *c)
		}
	}
	return out
}

func (d *dataset) codeNames(e *esquela) []string {
	out := []string{}
	for _, id := range e.Codes {
		if c, ok := d.codes[id]; ok {
			out = append(out, c.Codigo)
		}
	}
	return out
}

// esquelaFilter holds the query filters shared by the esquela listings.
type esquelaFilter struct {
	studentID, professorID *int
	tipo                   *string
	from, to               *string
}

func parseEsquelaFilter(r *http.Request) esquelaFilter {
	return esquelaFilter{
		studentID:   queryInt(r, "estudiante_id"),
		professorID: queryInt(r, "profesor_id"),
		tipo:        queryString(r, "tipo"),
		from:        queryString(r, "from"),
		to:          queryString(r, "to"),
	}
}

func (d *dataset) filterEsquelas(f esquelaFilter) []*esquela {
	var out []*esquela
	for _, k := range slices.Sorted(maps.Keys(d.esquelas)) {
		e := d.esquelas[k]
		switch {
		case f.studentID != nil && *f.studentID != e.StudentID,
			f.professorID != nil && *f.professorID != e.ProfessorID,
			f.tipo != nil && models.NoteCodeType(*f.tipo) != d.kind(e),
			f.from != nil && e.Fecha < *f.from,
			f.to != nil && e.Fecha > *f.to:
			continue
		}
		out = append(out, e)
	}
	return out
}

func (a *API) listEsquelas(w http.ResponseWriter, r *http.Request) {
	f := parseEsquelaFilter(r)
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := []models.Esquela{}
	for _, e := range a.data.filterEsquelas(f) {
		out = append(out, a.data.renderEsquela(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) studentEsquelas(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	f := parseEsquelaFilter(r)
	f.studentID = &id
	a.mu.RLock()
	defer a.mu.RUnlock()
	if _, found := a.data.students[id]; !found {
		writeDetail(w, http.StatusNotFound, "Estudiante no encontrado")
		return
	}
	out := []models.Esquela{}
	for _, e := range a.data.filterEsquelas(f) {
		out = append(out, a.data.renderEsquela(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getEsquela(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	e, found := a.data.esquelas[id]
	if !found {
		writeDetail(w, http.StatusNotFound, "Esquela no encontrada")
		return
	}
	writeJSON(w, http.StatusOK, a.data.renderEsquela(e))
}

// createEsquela attributes the note to the caller when they are a professor
// and no professor is given. A caller who is a registrar is recorded as such.
func (a *API) createEsquela(w http.ResponseWriter, r *http.Request) {
	var req models.EsquelaCreate
	if !decode(w, r, &req) {
		return
	}
	if len(req.Codigos) == 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "Debe indicar al menos un código")
		return
	}
	if req.Fecha == "" {
		req.Fecha = time.Now().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, req.Fecha); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "fecha debe tener formato YYYY-MM-DD")
		return
	}

	caller := userFromCtx(r.Context())
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, found := a.data.students[req.IDEstudiante]; !found {
		writeDetail(w, http.StatusNotFound, "Estudiante no encontrado")
		return
	}
	for _, id := range req.Codigos {
		if _, found := a.data.codes[id]; !found {
			writeDetail(w, http.StatusNotFound, "Código no encontrado")
			return
		}
	}
	e := &esquela{Fecha: req.Fecha, Observaciones: req.Observaciones, StudentID: req.IDEstudiante, Codes: slices.Clone(req.Codigos)}
	if req.IDProfesor != nil {
		if _, found := a.data.professors[*req.IDProfesor]; !found {
			writeDetail(w, http.StatusNotFound, "Profesor no encontrado")
			return
		}
		e.ProfessorID = *req.IDProfesor
	} else if caller != nil && caller.IDPersona != nil {
		if p := a.data.professorByPersona(*caller.IDPersona); p != nil {
			e.ProfessorID = p.IDProfesor
		}
	}
	if e.ProfessorID == 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "id_profesor es requerido")
		return
	}
	if caller != nil && caller.IDPersona != nil {
		if _, ok := a.data.registrars[*caller.IDPersona]; ok {
			e.RegistrarID = *caller.IDPersona
		}
	}
	e.ID = a.data.newID()
	a.data.esquelas[e.ID] = e
	writeJSON(w, http.StatusCreated, a.data.renderEsquela(e))
}

func (a *API) deleteEsquela(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, found := a.data.esquelas[id]; !found {
		writeDetail(w, http.StatusNotFound, "Esquela no encontrada")
		return
	}
	delete(a.data.esquelas, id)
	w.WriteHeader(http.StatusNoContent)
}

/* ------------------ aggregates ------------------ */

type tally struct {
	total, recognitions, guidance int
}

func (t *tally) add(k models.NoteCodeType) {
	t.total++
	switch k {
	case models.NoteCodeRecognition:
		t.recognitions++
	case models.NoteCodeGuidance:
		t.guidance++
	}
}

// aggregateByCourse counts each esquela once per course the student is
// enrolled in that falls in the requested year.
func (a *API) aggregateByCourse(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year")
	a.mu.RLock()
	defer a.mu.RUnlock()
	tallies := map[int]*tally{}
	for _, e := range a.data.esquelas {
		if year != nil && !strings.HasPrefix(e.Fecha, strconv.Itoa(*year)) {
			continue
		}
		for _, c := range a.data.studentCourses(e.StudentID) {
			if !strings.HasPrefix(e.Fecha, c.Gestion) {
				continue
			}
			t, ok := tallies[c.IDCurso]
			if !ok {
				t = &tally{}
				tallies[c.IDCurso] = t
			}
			t.add(a.data.kind(e))
		}
	}
	out := []models.EsquelaCourseAggregate{}
	for _, id := range slices.Sorted(maps.Keys(tallies)) {
		t := tallies[id]
		out = append(out, models.EsquelaCourseAggregate{
			IDCurso: id, NombreCurso: a.data.courses[id].NombreCurso,
			Total: t.total, Reconocimientos: t.recognitions, Orientaciones: t.guidance,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) aggregateByPeriod(w http.ResponseWriter, r *http.Request) {
	width := 4
	switch deref(queryString(r, "group_by")) {
	case "", "year":
	case "month":
		width = 7
	default:
		writeDetail(w, http.StatusUnprocessableEntity, "group_by debe ser year o month")
		return
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	tallies := map[string]*tally{}
	for _, e := range a.data.esquelas {
		if len(e.Fecha) < width {
			continue
		}
		p := e.Fecha[:width]
		t, ok := tallies[p]
		if !ok {
			t = &tally{}
			tallies[p] = t
		}
		t.add(a.data.kind(e))
	}
	out := []models.EsquelaPeriodAggregate{}
	for _, p := range slices.Sorted(maps.Keys(tallies)) {
		t := tallies[p]
		out = append(out, models.EsquelaPeriodAggregate{Periodo: p, Total: t.total, Reconocimientos: t.recognitions, Orientaciones: t.guidance})
	}
	writeJSON(w, http.StatusOK, out)
}

// ranking orders students by esquela count, highest first.
func (a *API) ranking(w http.ResponseWriter, r *http.Request) {
	f := parseEsquelaFilter(r)
	limit := 10
	if n := queryInt(r, "limit"); n != nil && *n > 0 {
		limit = *n
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	tallies := map[int]*tally{}
	for _, e := range a.data.filterEsquelas(f) {
		t, ok := tallies[e.StudentID]
		if !ok {
			t = &tally{}
			tallies[e.StudentID] = t
		}
		t.add(a.data.kind(e))
	}
	out := []models.RankingItem{}
	for id, t := range tallies {
		item := models.RankingItem{IDEstudiante: id, Total: t.total, Reconocimientos: t.recognitions, Orientaciones: t.guidance}
		if s, ok := a.data.students[id]; ok {
			item.NombreCompleto = fullName(s.Nombres, s.ApellidoPaterno, s.ApellidoMaterno)
		}
		out = append(out, item)
	}
	slices.SortFunc(out, func(x, y models.RankingItem) int {
		return cmp.Or(y.Total-x.Total, x.IDEstudiante-y.IDEstudiante)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	writeJSON(w, http.StatusOK, out)
}

/* ------------------ esquela reports ------------------ */

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (a *API) esquelasByProfessorReport(w http.ResponseWriter, r *http.Request) {
	f := parseEsquelaFilter(r)
	f.tipo = nil
	a.mu.RLock()
	defer a.mu.RUnlock()
	byProf := map[int]*models.EsquelasByProfessorItem{}
	rep := models.EsquelasByProfessorReport{Profesores: []models.EsquelasByProfessorItem{}}
	for _, e := range a.data.filterEsquelas(f) {
		item, ok := byProf[e.ProfessorID]
		if !ok {
			item = &models.EsquelasByProfessorItem{IDProfesor: e.ProfessorID, Esquelas: []models.EsquelaSummary{}}
			if p := a.data.professors[e.ProfessorID]; p != nil {
				item.ProfesorNombre = fullName(p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno)
				item.ProfesorCI = p.CI
			}
			byProf[e.ProfessorID] = item
		}
		item.TotalEsquelas++
		switch a.data.kind(e) {
		case models.NoteCodeRecognition:
			item.Reconocimientos++
		case models.NoteCodeGuidance:
			item.Orientaciones++
		}
		sum := models.EsquelaSummary{IDEsquela: e.ID, Fecha: e.Fecha, Codigos: a.data.codeNames(e), Observaciones: optional(e.Observaciones)}
		if s := a.data.students[e.StudentID]; s != nil {
			sum.EstudianteNombre = fullName(s.Nombres, s.ApellidoPaterno, s.ApellidoMaterno)
			sum.EstudianteCI = s.CI
		}
		item.Esquelas = append(item.Esquelas, sum)
		rep.TotalEsquelas++
	}
	for _, id := range slices.Sorted(maps.Keys(byProf)) {
		rep.Profesores = append(rep.Profesores, *byProf[id])
	}
	rep.TotalProfesores = len(rep.Profesores)
	writeJSON(w, http.StatusOK, rep)
}

func (a *API) esquelasByDateReport(w http.ResponseWriter, r *http.Request) {
	f := parseEsquelaFilter(r)
	f.professorID, f.studentID = nil, nil
	a.mu.RLock()
	defer a.mu.RUnlock()
	rep := models.EsquelasByDateReport{FechaDesde: f.from, FechaHasta: f.to, Esquelas: []models.EsquelasByDateItem{}}
	for _, e := range a.data.filterEsquelas(f) {
		item := models.EsquelasByDateItem{IDEsquela: e.ID, Fecha: e.Fecha, Codigos: a.data.codeNames(e), Observaciones: optional(e.Observaciones)}
		if s := a.data.students[e.StudentID]; s != nil {
			item.EstudianteNombre = fullName(s.Nombres, s.ApellidoPaterno, s.ApellidoMaterno)
			item.EstudianteCI = s.CI
		}
		if p := a.data.professorPerson(e.ProfessorID); p != nil {
			item.ProfesorNombre = p.NombreCompleto
		}
		if p := a.data.registrarPerson(e.RegistrarID); p != nil {
			item.RegistradorNombre = p.NombreCompleto
		}
		switch a.data.kind(e) {
		case models.NoteCodeRecognition:
			rep.Reconocimientos++
		case models.NoteCodeGuidance:
			rep.Orientaciones++
		}
		rep.Esquelas = append(rep.Esquelas, item)
	}
	// newest first
	slices.SortStableFunc(rep.Esquelas, func(x, y models.EsquelasByDateItem) int {
		return strings.Compare(y.Fecha, x.Fecha)
	})
	rep.Total = len(rep.Esquelas)
	writeJSON(w, http.StatusOK, rep)
}

// frequentCodesReport counts every application of a code; an esquela citing
// two codes counts once for each.
func (a *API) frequentCodesReport(w http.ResponseWriter, r *http.Request) {
	f := parseEsquelaFilter(r)
	tipo := f.tipo
	f.tipo, f.professorID, f.studentID = nil, nil, nil
	limit := 10
	if n := queryInt(r, "limit"); n != nil && *n > 0 {
		limit = *n
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	counts := map[int]int{}
	total := 0
	for _, e := range a.data.filterEsquelas(f) {
		for _, id := range e.Codes {
			c, ok := a.data.codes[id]
			if !ok || (tipo != nil && models.NoteCodeType(*tipo) != c.Tipo) {
				continue
			}
			counts[id]++
			total++
		}
	}
	rep := models.FrequentCodesReport{TotalAplicaciones: total, Codigos: []models.FrequentCodeItem{}}
	for id, n := range counts {
		c := a.data.codes[id]
		rep.Codigos = append(rep.Codigos, models.FrequentCodeItem{
			Codigo: c.Codigo, Descripcion: c.Descripcion, Tipo: c.Tipo,
			TotalAplicaciones: n, Porcentaje: percent(n, total),
		})
	}
	slices.SortFunc(rep.Codigos, func(x, y models.FrequentCodeItem) int {
		return cmp.Or(y.TotalAplicaciones-x.TotalAplicaciones, strings.Compare(x.Codigo, y.Codigo))
	})
	if len(rep.Codigos) > limit {
		rep.Codigos = rep.Codigos[:limit]
	}
	rep.TotalCodigos = len(rep.Codigos)
	writeJSON(w, http.StatusOK, rep)
}

// percent is n/total as a percentage rounded to two decimals.
func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*10000/float64(total)) / 100
}
