package mockapi

import (
	"maps"
	"slices"

	"github.com/brisa-edu/brisa-client/internal/models"
)

type user struct {
	models.Usuario
	PasswordHash string
	RoleIDs      []int
	Active       bool
}

type enrollment struct {
	StudentID int
	CourseID  int
}

type guardian struct {
	StudentID int
	models.Guardian
}

type esquela struct {
	ID            int
	StudentID     int
	ProfessorID   int
	RegistrarID   int
	Fecha         string
	Observaciones string
	Codes         []int
}

// dataset is the whole backend state. It is not safe for concurrent use;
// API guards it with its mutex.
type dataset struct {
	users     map[int]*user
	roles     map[int]*models.Rol
	permisos  map[int]*models.Permiso
	rolePerms map[int][]int

	students    map[int]*models.Student
	enrollments []enrollment
	guardians   []guardian

	professors  map[int]*models.Professor
	assignments []models.Assignment
	registrars  map[int]*models.Person
	admins      map[int]*models.AdminStaff
	positions   map[int]*models.Position

	subjects map[int]*models.Subject
	courses  map[int]*models.Course
	codes    map[int]*models.NoteCode
	esquelas map[int]*esquela

	nextID int
}

func (d *dataset) newID() int {
	d.nextID++
	return d.nextID
}

// sorted returns the values of m ordered by key.
func sorted[V any](m map[int]*V) []V {
	out := make([]V, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = append(out, *m[k])
	}
	return out
}

var (
	permissionModules = []string{"usuarios", "esquelas", "incidentes", "retiros_tempranos", "reportes", "profesores", "administracion"}
	permissionNames   = []string{"Lectura", "Agregar", "Modificar", "Eliminar"}
	permissionVerbs   = map[string]string{"Lectura": "ver", "Agregar": "crear", "Modificar": "editar", "Eliminar": "eliminar"}
)

func permissionID(module, name string) int {
	return 1 + slices.Index(permissionModules, module)*len(permissionNames) + slices.Index(permissionNames, name)
}

// SeedUser is a login the mock backend accepts.
type SeedUser struct {
	Usuario  string
	Password string
	Rol      models.Role
}

// SeedUsers are the accounts every fresh mock backend starts with.
var SeedUsers = []SeedUser{
	{Usuario: "admin", Password: "admin123", Rol: models.RoleAdmin},
	{Usuario: "director", Password: "director123", Rol: models.RoleDirector},
	{Usuario: "lgutierrez", Password: "profesor123", Rol: models.RoleProfesor},
}

func ptr[T any](v T) *T { return &v }

func seed(cost int) (*dataset, error) {
	d := &dataset{
		users:      map[int]*user{},
		roles:      map[int]*models.Rol{},
		permisos:   map[int]*models.Permiso{},
		rolePerms:  map[int][]int{},
		students:   map[int]*models.Student{},
		professors: map[int]*models.Professor{},
		registrars: map[int]*models.Person{},
		admins:     map[int]*models.AdminStaff{},
		positions:  map[int]*models.Position{},
		subjects:   map[int]*models.Subject{},
		courses:    map[int]*models.Course{},
		codes:      map[int]*models.NoteCode{},
		esquelas:   map[int]*esquela{},
		nextID:     1000,
	}

	for _, m := range permissionModules {
		for _, n := range permissionNames {
			id := permissionID(m, n)
			d.permisos[id] = &models.Permiso{IDPermiso: id, Nombre: n, Modulo: m, Descripcion: n + " en " + m}
		}
	}
	d.roles[1] = &models.Rol{IDRol: 1, Nombre: string(models.RoleAdmin), Descripcion: "Acceso total"}
	d.roles[2] = &models.Rol{IDRol: 2, Nombre: string(models.RoleDirector), Descripcion: "Dirección académica"}
	d.roles[3] = &models.Rol{IDRol: 3, Nombre: string(models.RoleProfesor), Descripcion: "Docente"}
	d.roles[4] = &models.Rol{IDRol: 4, Nombre: string(models.RoleUsuario), Descripcion: "Sin permisos"}
	for _, m := range permissionModules {
		for _, n := range permissionNames {
			d.rolePerms[1] = append(d.rolePerms[1], permissionID(m, n))
			if m != "usuarios" {
				d.rolePerms[2] = append(d.rolePerms[2], permissionID(m, n))
			}
		}
	}
	d.rolePerms[3] = []int{
		permissionID("esquelas", "Lectura"),
		permissionID("esquelas", "Agregar"),
		permissionID("reportes", "Lectura"),
	}

	people := []struct {
		persona  int
		role     int
		nombres  string
		paterno  string
		materno  string
		ci       string
		tipo     string
		password string
	}{
		{100, 1, "Admin", "Sistema", "", "1000001", "administrativo", SeedUsers[0].Password},
		{101, 2, "Gloria", "Fernández", "Arce", "3322110", "administrativo", SeedUsers[1].Password},
		{102, 3, "Luis", "Gutiérrez", "Paz", "4455667", "profesor", SeedUsers[2].Password},
	}
	for i, p := range people {
		hash, err := HashPassword(p.password, cost)
		if err != nil {
			return nil, err
		}
		id := i + 1
		d.users[id] = &user{
			Usuario: models.Usuario{
				IDUsuario:       id,
				IDPersona:       ptr(p.persona),
				Usuario:         SeedUsers[i].Usuario,
				Correo:          SeedUsers[i].Usuario + "@brisa.edu.bo",
				Nombres:         p.nombres,
				ApellidoPaterno: p.paterno,
				ApellidoMaterno: p.materno,
				CI:              p.ci,
				TipoPersona:     p.tipo,
				Estado:          "activo",
				IsActive:        ptr(true),
			},
			PasswordHash: hash,
			RoleIDs:      []int{p.role},
			Active:       true,
		}
	}

	d.courses[10] = &models.Course{IDCurso: 10, NombreCurso: "1ro Primaria", Nivel: string(models.NivelPrimaria), Gestion: "2025", Paralelo: "A"}
	d.courses[11] = &models.Course{IDCurso: 11, NombreCurso: "2do Secundaria", Nivel: string(models.NivelSecundaria), Gestion: "2025", Paralelo: "B"}
	d.courses[12] = &models.Course{IDCurso: 12, NombreCurso: "Kinder", Nivel: string(models.NivelInicial), Gestion: "2025", Paralelo: "A"}
	d.courses[13] = &models.Course{IDCurso: 13, NombreCurso: "6to Primaria", Nivel: string(models.NivelPrimaria), Gestion: "2024", Paralelo: "A"}

	d.students[1] = newStudent(1, "7845123", "Ana Lucía", "Quispe", "Mamani", "2014-03-12")
	d.students[2] = newStudent(2, "8123456", "Bruno", "Flores", "Choque", "2011-07-30")
	d.students[3] = newStudent(3, "9012345", "Carla", "Rojas", "Vargas", "2019-01-05")
	d.students[4] = newStudent(4, "6543210", "Diego", "Mendoza", "Torrez", "2008-11-21")
	d.enrollments = []enrollment{{1, 10}, {2, 11}, {2, 13}, {3, 12}, {4, 11}}
	d.guardians = []guardian{
		{1, models.Guardian{Tipo: models.GuardianPadre, NombreCompleto: "Juan Quispe Condori", Telefono: "70011122"}},
		{1, models.Guardian{Tipo: models.GuardianMadre, NombreCompleto: "Rosa Mamani Huanca", Telefono: "70033344"}},
		{2, models.Guardian{Tipo: models.GuardianMadre, NombreCompleto: "Elena Choque Apaza", Telefono: "71122233"}},
		{4, models.Guardian{Tipo: models.GuardianPadre, NombreCompleto: "Mario Mendoza Silva", Telefono: "72233344"}},
	}

	d.subjects[20] = &models.Subject{IDMateria: 20, NombreMateria: "Matemáticas", Nivel: string(models.NivelPrimaria), Alias: "MAT"}
	d.subjects[21] = &models.Subject{IDMateria: 21, NombreMateria: "Lenguaje", Nivel: string(models.NivelPrimaria), Alias: "LEN"}
	d.subjects[22] = &models.Subject{IDMateria: 22, NombreMateria: "Física", Nivel: string(models.NivelSecundaria), Alias: "FIS"}
	d.subjects[23] = &models.Subject{IDMateria: 23, NombreMateria: "Música", Nivel: string(models.NivelInicial)}

	d.professors[30] = &models.Professor{
		IDProfesor: 30, IDPersona: 102, CI: "4455667", Nombres: "Luis", ApellidoPaterno: "Gutiérrez", ApellidoMaterno: "Paz",
		Telefono: "76543210", Correo: "lgutierrez@brisa.edu.bo", EstadoLaboral: "activo", AnosExperiencia: ptr(12),
		Especialidad: "Matemáticas", NivelEnsenanza: "primaria",
	}
	d.professors[31] = &models.Professor{
		IDProfesor: 31, IDPersona: 103, CI: "5566778", Nombres: "María", ApellidoPaterno: "Salazar", ApellidoMaterno: "Ríos",
		Telefono: "76655443", Correo: "msalazar@brisa.edu.bo", EstadoLaboral: "activo", AnosExperiencia: ptr(7),
		Especialidad: "Lenguaje", NivelEnsenanza: "primaria",
	}
	d.assignments = []models.Assignment{
		{IDProfesor: 30, IDCurso: 10, IDMateria: 20},
		{IDProfesor: 30, IDCurso: 11, IDMateria: 22},
		{IDProfesor: 31, IDCurso: 10, IDMateria: 21},
		{IDProfesor: 31, IDCurso: 12, IDMateria: 23},
	}

	d.registrars[104] = &models.Person{
		IDPersona: 104, CI: "6677889", Nombres: "Patricia", ApellidoPaterno: "Vega", ApellidoMaterno: "Luna",
		Telefono: "77788899", Correo: "pvega@brisa.edu.bo", TipoPersona: "registrador",
	}

	d.positions[40] = &models.Position{IDCargo: 40, NombreCargo: "Secretaria", Descripcion: "Secretaría académica", Estado: "activo"}
	d.positions[41] = &models.Position{IDCargo: 41, NombreCargo: "Regente", Descripcion: "Disciplina y asistencia", Estado: "activo"}
	d.admins[105] = &models.AdminStaff{
		ID: ptr(1), IDPersona: ptr(105), IDAdministrativo: ptr(1), IDCargo: ptr(41),
		CI: "7788990", Nombres: "Jorge", ApellidoPaterno: "Limachi", ApellidoMaterno: "Ticona",
		EstadoLaboral: "activo", HorarioEntrada: "07:30", HorarioSalida: "13:30", AreaTrabajo: "Regencia",
	}

	d.codes[50] = &models.NoteCode{IDCodigo: 50, Codigo: "R01", Descripcion: "Participación destacada", Tipo: models.NoteCodeRecognition}
	d.codes[51] = &models.NoteCode{IDCodigo: 51, Codigo: "O01", Descripcion: "Llegada tardía", Tipo: models.NoteCodeGuidance}
	d.codes[52] = &models.NoteCode{IDCodigo: 52, Codigo: "O02", Descripcion: "Uso de celular en clase", Tipo: models.NoteCodeGuidance}

	d.esquelas[60] = &esquela{ID: 60, StudentID: 1, ProfessorID: 30, RegistrarID: 104, Fecha: "2025-03-10", Observaciones: "Excelente exposición", Codes: []int{50}}
	d.esquelas[61] = &esquela{ID: 61, StudentID: 2, ProfessorID: 30, RegistrarID: 104, Fecha: "2025-04-02", Codes: []int{51, 52}}
	d.esquelas[62] = &esquela{ID: 62, StudentID: 4, ProfessorID: 31, RegistrarID: 104, Fecha: "2024-10-15", Codes: []int{51}}
	d.esquelas[63] = &esquela{ID: 63, StudentID: 2, ProfessorID: 31, RegistrarID: 104, Fecha: "2025-05-20", Observaciones: "Ayudó a sus compañeros", Codes: []int{50}}

	return d, nil
}

func newStudent(id int, ci, nombres, paterno, materno, nacimiento string) *models.Student {
	return &models.Student{
		IDEstudiante:    id,
		CI:              ci,
		Nombres:         nombres,
		ApellidoPaterno: paterno,
		ApellidoMaterno: materno,
		NombreCompleto:  fullName(nombres, paterno, materno),
		Matricula:       "M-" + ci,
		FechaNacimiento: ptr(nacimiento),
	}
}

func fullName(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

/* ------------------ roles and permissions ------------------ */

func (d *dataset) roleNames(u *user) []string {
	names := make([]string, 0, len(u.RoleIDs))
	for _, id := range u.RoleIDs {
		if r, ok := d.roles[id]; ok {
			names = append(names, r.Nombre)
		}
	}
	return names
}

func (d *dataset) primaryRole(u *user) string {
	if names := d.roleNames(u); len(names) > 0 {
		return names[0]
	}
	return string(models.RoleUsuario)
}

func (d *dataset) isAdmin(u *user) bool {
	return slices.Contains(d.roleNames(u), string(models.RoleAdmin))
}

// grants lists the permissions u holds through its roles, without repeats,
// ordered by id.
func (d *dataset) grants(u *user) []models.Permiso {
	seen := map[int]bool{}
	for _, rid := range u.RoleIDs {
		for _, pid := range d.rolePerms[rid] {
			seen[pid] = true
		}
	}
	out := make([]models.Permiso, 0, len(seen))
	for _, pid := range slices.Sorted(maps.Keys(seen)) {
		if p, ok := d.permisos[pid]; ok {
			out = append(out, *p)
		}
	}
	return out
}

// basicPermissions is the flat permission list carried by login and /me.
func (d *dataset) basicPermissions(u *user) []string {
	out := []string{}
	for _, p := range d.grants(u) {
		if !slices.Contains(out, p.Nombre) {
			out = append(out, p.Nombre)
		}
	}
	return out
}

func (d *dataset) detailedPermissions(u *user) models.DetailedPermissions {
	dp := models.DetailedPermissions{
		Usuario:             u.Usuario.Usuario,
		Permisos:            []models.ModulePermission{},
		PermisosPorModulo:   map[string][]string{},
		ModulosAccesibles:   []string{},
		AccionesDisponibles: []string{},
		EsAdministrador:     d.isAdmin(u),
		Roles:               d.roleNames(u),
	}
	for _, p := range d.grants(u) {
		dp.Permisos = append(dp.Permisos, models.ModulePermission{Permiso: p.Nombre, Modulo: p.Modulo})
		dp.PermisosPorModulo[p.Modulo] = append(dp.PermisosPorModulo[p.Modulo], p.Nombre)
		if !slices.Contains(dp.ModulosAccesibles, p.Modulo) {
			dp.ModulosAccesibles = append(dp.ModulosAccesibles, p.Modulo)
		}
		if verb, ok := permissionVerbs[p.Nombre]; ok {
			dp.AccionesDisponibles = append(dp.AccionesDisponibles, verb+"_"+p.Modulo)
		}
	}
	return dp
}

// renderUser is the public view of u.
func (d *dataset) renderUser(u *user) models.Usuario {
	out := u.Usuario
	out.Roles = []models.Rol{}
	for _, id := range u.RoleIDs {
		if r, ok := d.roles[id]; ok {
			out.Roles = append(out.Roles, models.Rol{IDRol: r.IDRol, Nombre: r.Nombre, Descripcion: r.Descripcion})
		}
	}
	out.Permisos = d.basicPermissions(u)
	out.IsActive = ptr(u.Active)
	return out
}

func (d *dataset) userByLogin(login string) *user {
	for _, u := range d.users {
		if u.Usuario.Usuario == login {
			return u
		}
	}
	return nil
}

/* ------------------ people helpers ------------------ */

func (d *dataset) professorPerson(id int) *models.Person {
	p, ok := d.professors[id]
	if !ok {
		return nil
	}
	return &models.Person{
		IDPersona:       p.IDPersona,
		CI:              p.CI,
		Nombres:         p.Nombres,
		ApellidoPaterno: p.ApellidoPaterno,
		ApellidoMaterno: p.ApellidoMaterno,
		Direccion:       p.Direccion,
		Telefono:        p.Telefono,
		Correo:          p.Correo,
		TipoPersona:     "profesor",
		NombreCompleto:  fullName(p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno),
	}
}

func (d *dataset) registrarPerson(id int) *models.Person {
	p, ok := d.registrars[id]
	if !ok {
		return nil
	}
	out := *p
	out.NombreCompleto = fullName(p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno)
	return &out
}

func (d *dataset) professorByPersona(persona int) *models.Professor {
	for _, p := range d.professors {
		if p.IDPersona == persona {
			return p
		}
	}
	return nil
}

// studentCourses lists the courses a student is enrolled in, by course id.
func (d *dataset) studentCourses(studentID int) []models.Course {
	var out []models.Course
	for _, e := range d.enrollments {
		if e.StudentID == studentID {
			if c, ok := d.courses[e.CourseID]; ok {
				out = append(out, *c)
			}
		}
	}
	slices.SortFunc(out, func(a, b models.Course) int { return a.IDCurso - b.IDCurso })
	return out
}

func (d *dataset) courseStudentCount(courseID int) int {
	n := 0
	for _, e := range d.enrollments {
		if e.CourseID == courseID {
			n++
		}
	}
	return n
}
