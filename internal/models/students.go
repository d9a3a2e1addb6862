package models

type Student struct {
	IDEstudiante    int      `json:"id_estudiante"`
	CI              string   `json:"ci"`
	Nombres         string   `json:"nombres"`
	ApellidoPaterno string   `json:"apellido_paterno"`
	ApellidoMaterno string   `json:"apellido_materno"`
	Direccion       string   `json:"direccion"`
	Telefono        string   `json:"telefono"`
	Correo          string   `json:"correo"`
	Matricula       string   `json:"matricula"`
	NombreCompleto  string   `json:"nombre_completo"`
	FechaNacimiento *string  `json:"fecha_nacimiento,omitempty"`
	Edad            *int     `json:"edad,omitempty"`
	Cursos          []string `json:"cursos,omitempty"`
}

type StudentListItem struct {
	IDEstudiante    int      `json:"id_estudiante"`
	CI              string   `json:"ci"`
	NombreCompleto  string   `json:"nombre_completo"`
	FechaNacimiento *string  `json:"fecha_nacimiento,omitempty"`
	Edad            *int     `json:"edad,omitempty"`
	Cursos          []string `json:"cursos"`
}

type StudentListReport struct {
	Total       int               `json:"total"`
	Curso       *int              `json:"curso,omitempty"`
	Nivel       *string           `json:"nivel,omitempty"`
	Gestion     *string           `json:"gestion,omitempty"`
	Estudiantes []StudentListItem `json:"estudiantes"`
}

type GuardianType string

const (
	GuardianPadre GuardianType = "padre"
	GuardianMadre GuardianType = "madre"
)

type Guardian struct {
	Tipo           GuardianType `json:"tipo"`
	NombreCompleto string       `json:"nombre_completo"`
	Telefono       string       `json:"telefono,omitempty"`
}

type StudentGuardiansItem struct {
	IDEstudiante    int        `json:"id_estudiante"`
	CI              string     `json:"ci"`
	NombreCompleto  string     `json:"nombre_completo"`
	TieneApoderados bool       `json:"tiene_apoderados"`
	Apoderados      []Guardian `json:"apoderados"`
}

type StudentGuardiansReport struct {
	Total       int                    `json:"total"`
	Estudiantes []StudentGuardiansItem `json:"estudiantes"`
}

type GuardianContactItem struct {
	IDEstudiante     int          `json:"id_estudiante"`
	EstudianteCI     string       `json:"estudiante_ci"`
	EstudianteNombre string       `json:"estudiante_nombre"`
	TipoApoderado    GuardianType `json:"tipo_apoderado"`
	ApoderadoNombre  string       `json:"apoderado_nombre"`
	Telefono         string       `json:"telefono"`
}

type GuardianContactsReport struct {
	Total     int                   `json:"total"`
	Contactos []GuardianContactItem `json:"contactos"`
}

type AgeRangeItem struct {
	RangoEdad  string  `json:"rango_edad"`
	Cantidad   int     `json:"cantidad"`
	Porcentaje float64 `json:"porcentaje"`
}

type AgeDistributionReport struct {
	TotalEstudiantes int            `json:"total_estudiantes"`
	Distribucion     []AgeRangeItem `json:"distribucion"`
}

type CourseHistoryItem struct {
	IDCurso     int    `json:"id_curso"`
	NombreCurso string `json:"nombre_curso"`
	Nivel       string `json:"nivel"`
	Gestion     string `json:"gestion"`
}

type StudentHistoryItem struct {
	IDEstudiante   int                 `json:"id_estudiante"`
	CI             string              `json:"ci"`
	NombreCompleto string              `json:"nombre_completo"`
	TotalCursos    int                 `json:"total_cursos"`
	Cursos         []CourseHistoryItem `json:"cursos"`
}

type CourseHistoryReport struct {
	TotalEstudiantes int                  `json:"total_estudiantes"`
	Historiales      []StudentHistoryItem `json:"historiales"`
}
