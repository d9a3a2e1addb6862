package models

type Professor struct {
	IDProfesor      int          `json:"id_profesor"`
	IDPersona       int          `json:"id_persona"`
	CI              string       `json:"ci"`
	Nombres         string       `json:"nombres"`
	ApellidoPaterno string       `json:"apellido_paterno"`
	ApellidoMaterno string       `json:"apellido_materno,omitempty"`
	NombreCompleto  string       `json:"nombre_completo,omitempty"`
	Direccion       string       `json:"direccion,omitempty"`
	Telefono        string       `json:"telefono,omitempty"`
	Correo          string       `json:"correo,omitempty"`
	IDCargo         *int         `json:"id_cargo,omitempty"`
	EstadoLaboral   string       `json:"estado_laboral,omitempty"`
	AnosExperiencia *int         `json:"anos_experiencia,omitempty"`
	FechaIngreso    string       `json:"fecha_ingreso,omitempty"`
	Especialidad    string       `json:"especialidad,omitempty"`
	TituloAcademico string       `json:"titulo_academico,omitempty"`
	NivelEnsenanza  string       `json:"nivel_enseñanza,omitempty"`
	Observaciones   string       `json:"observaciones,omitempty"`
	Asignaciones    []Assignment `json:"asignaciones,omitempty"`
}

type ProfessorCreate struct {
	CI              string `json:"ci"`
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Correo          string `json:"correo,omitempty"`
	IDCargo         *int   `json:"id_cargo,omitempty"`
	EstadoLaboral   string `json:"estado_laboral,omitempty"`
	AnosExperiencia *int   `json:"anos_experiencia,omitempty"`
	FechaIngreso    string `json:"fecha_ingreso,omitempty"`
	Especialidad    string `json:"especialidad,omitempty"`
	TituloAcademico string `json:"titulo_academico,omitempty"`
	NivelEnsenanza  string `json:"nivel_enseñanza,omitempty"`
	Observaciones   string `json:"observaciones,omitempty"`
}

// ProfessorUpdate only sends the fields that are set.
type ProfessorUpdate struct {
	CI              *string `json:"ci,omitempty"`
	Nombres         *string `json:"nombres,omitempty"`
	ApellidoPaterno *string `json:"apellido_paterno,omitempty"`
	ApellidoMaterno *string `json:"apellido_materno,omitempty"`
	Direccion       *string `json:"direccion,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	Correo          *string `json:"correo,omitempty"`
	IDCargo         *int    `json:"id_cargo,omitempty"`
	EstadoLaboral   *string `json:"estado_laboral,omitempty"`
	AnosExperiencia *int    `json:"anos_experiencia,omitempty"`
	FechaIngreso    *string `json:"fecha_ingreso,omitempty"`
	Especialidad    *string `json:"especialidad,omitempty"`
	TituloAcademico *string `json:"titulo_academico,omitempty"`
	NivelEnsenanza  *string `json:"nivel_enseñanza,omitempty"`
	Observaciones   *string `json:"observaciones,omitempty"`
}

// Assignment links a professor to a subject taught in a course.
type Assignment struct {
	IDProfesor     int    `json:"id_profesor"`
	IDCurso        int    `json:"id_curso"`
	IDMateria      int    `json:"id_materia"`
	NombreProfesor string `json:"nombre_profesor,omitempty"`
	NombreCurso    string `json:"nombre_curso,omitempty"`
	NombreMateria  string `json:"nombre_materia,omitempty"`
}

type AssignCourseSubject struct {
	IDProfesor int `json:"id_profesor"`
	IDCurso    int `json:"id_curso"`
	IDMateria  int `json:"id_materia"`
}

// Person is the summary shape shared by professors and registrars in the
// personnel listing.
type Person struct {
	IDPersona       int    `json:"id_persona"`
	CI              string `json:"ci"`
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	Direccion       string `json:"direccion"`
	Telefono        string `json:"telefono"`
	Correo          string `json:"correo"`
	TipoPersona     string `json:"tipo_persona"`
	NombreCompleto  string `json:"nombre_completo"`
}

// AdminStaff is a member of the administrative staff.
type AdminStaff struct {
	ID               *int     `json:"id,omitempty"`
	IDPersona        *int     `json:"id_persona,omitempty"`
	IDAdministrativo *int     `json:"id_administrativo,omitempty"`
	IDCargo          *int     `json:"id_cargo,omitempty"`
	NombreCargo      string   `json:"nombre_cargo,omitempty"`
	CI               string   `json:"ci,omitempty"`
	Nombres          string   `json:"nombres"`
	ApellidoPaterno  string   `json:"apellido_paterno,omitempty"`
	ApellidoMaterno  string   `json:"apellido_materno,omitempty"`
	NombreCompleto   string   `json:"nombre_completo,omitempty"`
	Direccion        string   `json:"direccion,omitempty"`
	Telefono         string   `json:"telefono,omitempty"`
	Correo           string   `json:"correo,omitempty"`
	EstadoLaboral    string   `json:"estado_laboral"`
	AnosExperiencia  *int     `json:"años_experiencia,omitempty"`
	FechaIngreso     string   `json:"fecha_ingreso,omitempty"`
	HorarioEntrada   string   `json:"horario_entrada,omitempty"`
	HorarioSalida    string   `json:"horario_salida,omitempty"`
	AreaTrabajo      string   `json:"area_trabajo,omitempty"`
	Observaciones    string   `json:"observaciones,omitempty"`
	HorasSemana      *float64 `json:"horas_semana,omitempty"`
}

type AdminStaffCreate struct {
	CI              string `json:"ci"`
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Correo          string `json:"correo,omitempty"`
	IDCargo         int    `json:"id_cargo"`
	EstadoLaboral   string `json:"estado_laboral,omitempty"`
	AnosExperiencia *int   `json:"años_experiencia,omitempty"`
	FechaIngreso    string `json:"fecha_ingreso,omitempty"`
	HorarioEntrada  string `json:"horario_entrada,omitempty"`
	HorarioSalida   string `json:"horario_salida,omitempty"`
	AreaTrabajo     string `json:"area_trabajo,omitempty"`
	Observaciones   string `json:"observaciones,omitempty"`
}

type AdminStaffUpdate struct {
	CI              *string `json:"ci,omitempty"`
	Nombres         *string `json:"nombres,omitempty"`
	ApellidoPaterno *string `json:"apellido_paterno,omitempty"`
	ApellidoMaterno *string `json:"apellido_materno,omitempty"`
	Direccion       *string `json:"direccion,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	Correo          *string `json:"correo,omitempty"`
	IDCargo         *int    `json:"id_cargo,omitempty"`
	EstadoLaboral   *string `json:"estado_laboral,omitempty"`
	AnosExperiencia *int    `json:"años_experiencia,omitempty"`
	FechaIngreso    *string `json:"fecha_ingreso,omitempty"`
	HorarioEntrada  *string `json:"horario_entrada,omitempty"`
	HorarioSalida   *string `json:"horario_salida,omitempty"`
	AreaTrabajo     *string `json:"area_trabajo,omitempty"`
	Observaciones   *string `json:"observaciones,omitempty"`
}

// Position is a staff job title (cargo).
type Position struct {
	IDCargo       int    `json:"id_cargo"`
	NombreCargo   string `json:"nombre_cargo"`
	Descripcion   string `json:"descripcion,omitempty"`
	Estado        string `json:"estado,omitempty"`
	FechaCreacion string `json:"fecha_creacion,omitempty"`
}
