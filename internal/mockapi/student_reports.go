package mockapi

import (
	"net/http"
	"time"

	"github.com/brisa-edu/brisa-client/internal/models"
)

type studentFilter struct {
	courseID       *int
	nivel, gestion *string
}

func parseStudentFilter(r *http.Request) studentFilter {
	return studentFilter{
		courseID: queryInt(r, "curso_id"),
		nivel:    queryString(r, "nivel"),
		gestion:  queryString(r, "gestion"),
	}
}

func (f studentFilter) empty() bool {
	return f.courseID == nil && f.nivel == nil && f.gestion == nil
}

// filterStudents keeps the students with at least one enrollment matching f.
// An empty filter keeps everyone, enrolled or not.
func (d *dataset) filterStudents(f studentFilter) []models.Student {
	out := []models.Student{}
	for _, s := range sorted(d.students) {
		if f.empty() {
			out = append(out, s)
			continue
		}
		for _, c := range d.studentCourses(s.IDEstudiante) {
			if (f.courseID == nil || *f.courseID == c.IDCurso) &&
				(f.nivel == nil || *f.nivel == c.Nivel) &&
				(f.gestion == nil || *f.gestion == c.Gestion) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func (d *dataset) studentGuardians(id int) []models.Guardian {
	out := []models.Guardian{}
	for _, g := range d.guardians {
		if g.StudentID == id {
			out = append(out, g.Guardian)
		}
	}
	return out
}

func (a *API) studentReport(w http.ResponseWriter, r *http.Request) {
	f := parseStudentFilter(r)
	a.mu.RLock()
	defer a.mu.RUnlock()
	rep := models.StudentListReport{Curso: f.courseID, Nivel: f.nivel, Gestion: f.gestion, Estudiantes: []models.StudentListItem{}}
	for _, s := range a.data.filterStudents(f) {
		v := a.data.studentView(s)
		rep.Estudiantes = append(rep.Estudiantes, models.StudentListItem{
			IDEstudiante:    v.IDEstudiante,
			CI:              v.CI,
			NombreCompleto:  v.NombreCompleto,
			FechaNacimiento: v.FechaNacimiento,
			Edad:            v.Edad,
			Cursos:          v.Cursos,
		})
	}
	rep.Total = len(rep.Estudiantes)
	writeJSON(w, http.StatusOK, rep)
}

// guardiansReport lists students with their guardians. con_apoderados=true
// keeps only those with at least one, false only those with none.
func (a *API) guardiansReport(w http.ResponseWriter, r *http.Request) {
	with := queryBool(r, "con_apoderados")
	a.mu.RLock()
	defer a.mu.RUnlock()
	rep := models.StudentGuardiansReport{Estudiantes: []models.StudentGuardiansItem{}}
	for _, s := range sorted(a.data.students) {
		gs := a.data.studentGuardians(s.IDEstudiante)
		has := len(gs) > 0
		if with != nil && *with != has {
			continue
		}
		rep.Estudiantes = append(rep.Estudiantes, models.StudentGuardiansItem{
			IDEstudiante:    s.IDEstudiante,
			CI:              s.CI,
			NombreCompleto:  fullName(s.Nombres, s.ApellidoPaterno, s.ApellidoMaterno),
			TieneApoderados: has,
			Apoderados:      gs,
		})
	}
	rep.Total = len(rep.Estudiantes)
	writeJSON(w, http.StatusOK, rep)
}

func (a *API) guardianContactsReport(w http.ResponseWriter, r *http.Request) {
	f := parseStudentFilter(r)
	a.mu.RLock()
	defer a.mu.RUnlock()
	rep := models.GuardianContactsReport{Contactos: []models.GuardianContactItem{}}
	for _, s := range a.data.filterStudents(f) {
		for _, g := range a.data.studentGuardians(s.IDEstudiante) {
			if g.Telefono == "" {
				continue
			}
			rep.Contactos = append(rep.Contactos, models.GuardianContactItem{
				IDEstudiante:     s.IDEstudiante,
				EstudianteCI:     s.CI,
				EstudianteNombre: fullName(s.Nombres, s.ApellidoPaterno, s.ApellidoMaterno),
				TipoApoderado:    g.Tipo,
				ApoderadoNombre:  g.NombreCompleto,
				Telefono:         g.Telefono,
			})
		}
	}
	rep.Total = len(rep.Contactos)
	writeJSON(w, http.StatusOK, rep)
}

var ageRanges = []struct {
	label    string
	min, max int
}{
	{"0-5", 0, 5},
	{"6-11", 6, 11},
	{"12-17", 12, 17},
	{"18+", 18, 1 << 30},
}

// ageDistributionReport buckets students with a known birth date. Every
// range is listed, empty ones included.
func (a *API) ageDistributionReport(w http.ResponseWriter, r *http.Request) {
	f := parseStudentFilter(r)
	now := time.Now()
	a.mu.RLock()
	defer a.mu.RUnlock()
	counts := make([]int, len(ageRanges))
	total := 0
	for _, s := range a.data.filterStudents(f) {
		years := age(s.FechaNacimiento, now)
		if years == nil {
			continue
		}
		for i, rg := range ageRanges {
			if *years >= rg.min && *years <= rg.max {
				counts[i]++
				total++
				break
			}
		}
	}
	rep := models.AgeDistributionReport{TotalEstudiantes: total, Distribucion: []models.AgeRangeItem{}}
	for i, rg := range ageRanges {
		rep.Distribucion = append(rep.Distribucion, models.AgeRangeItem{RangoEdad: rg.label, Cantidad: counts[i], Porcentaje: percent(counts[i], total)})
	}
	writeJSON(w, http.StatusOK, rep)
}

func (a *API) courseHistoryReport(w http.ResponseWriter, r *http.Request) {
	studentID := queryInt(r, "estudiante_id")
	a.mu.RLock()
	defer a.mu.RUnlock()
	if studentID != nil {
		if _, found := a.data.students[*studentID]; !found {
			writeDetail(w, http.StatusNotFound, "Estudiante no encontrado")
			return
		}
	}
	rep := models.CourseHistoryReport{Historiales: []models.StudentHistoryItem{}}
	for _, s := range sorted(a.data.students) {
		if studentID != nil && *studentID != s.IDEstudiante {
			continue
		}
		item := models.StudentHistoryItem{
			IDEstudiante:   s.IDEstudiante,
			CI:             s.CI,
			NombreCompleto: fullName(s.Nombres, s.ApellidoPaterno, s.ApellidoMaterno),
			Cursos:         []models.CourseHistoryItem{},
		}
		for _, c := range a.data.studentCourses(s.IDEstudiante) {
			item.Cursos = append(item.Cursos, models.CourseHistoryItem{IDCurso: c.IDCurso, NombreCurso: c.NombreCurso, Nivel: c.Nivel, Gestion: c.Gestion})
		}
		item.TotalCursos = len(item.Cursos)
		rep.Historiales = append(rep.Historiales, item)
	}
	rep.TotalEstudiantes = len(rep.Historiales)
	writeJSON(w, http.StatusOK, rep)
}
