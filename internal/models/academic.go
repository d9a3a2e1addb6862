package models

// Subject is a materia taught at a given level.
type Subject struct {
	IDMateria     int    `json:"id_materia"`
	NombreMateria string `json:"nombre_materia"`
	Nivel         string `json:"nivel"`
	Alias         string `json:"alias,omitempty"`
}

type SubjectCreate struct {
	NombreMateria string `json:"nombre_materia"`
	Nivel         string `json:"nivel"`
	Alias         string `json:"alias,omitempty"`
}

type SubjectUpdate struct {
	NombreMateria *string `json:"nombre_materia,omitempty"`
	Nivel         *string `json:"nivel,omitempty"`
	Alias         *string `json:"alias,omitempty"`
}

type Course struct {
	IDCurso          int    `json:"id_curso"`
	NombreCurso      string `json:"nombre_curso"`
	Nivel            string `json:"nivel"`
	Gestion          string `json:"gestion"`
	Paralelo         string `json:"paralelo,omitempty"`
	TotalEstudiantes *int   `json:"total_estudiantes,omitempty"`
}

type CourseCreate struct {
	NombreCurso string `json:"nombre_curso"`
	Nivel       string `json:"nivel"`
	Gestion     string `json:"gestion"`
	Paralelo    string `json:"paralelo,omitempty"`
}

type CourseUpdate struct {
	NombreCurso *string `json:"nombre_curso,omitempty"`
	Nivel       *string `json:"nivel,omitempty"`
	Gestion     *string `json:"gestion,omitempty"`
	Paralelo    *string `json:"paralelo,omitempty"`
}

// CourseTeacher is one professor teaching a subject in a course.
type CourseTeacher struct {
	IDProfesor     int    `json:"id_profesor"`
	NombreCompleto string `json:"nombre_completo"`
	IDMateria      int    `json:"id_materia"`
	NombreMateria  string `json:"nombre_materia"`
}

type AssignedProfessorItem struct {
	IDProfesor     int    `json:"id_profesor"`
	CI             string `json:"ci"`
	NombreCompleto string `json:"nombre_completo"`
	Telefono       string `json:"telefono,omitempty"`
	Correo         string `json:"correo,omitempty"`
	Curso          string `json:"curso"`
	Materia        string `json:"materia"`
}

type AssignedProfessorsReport struct {
	Total      int                     `json:"total"`
	Curso      *string                 `json:"curso,omitempty"`
	Materia    *string                 `json:"materia,omitempty"`
	Nivel      *string                 `json:"nivel,omitempty"`
	Gestion    *string                 `json:"gestion,omitempty"`
	Profesores []AssignedProfessorItem `json:"profesores"`
}

type SubjectLevelItem struct {
	IDMateria     int    `json:"id_materia"`
	NombreMateria string `json:"nombre_materia"`
	Nivel         string `json:"nivel"`
}

type SubjectsByLevelReport struct {
	Total    int                `json:"total"`
	Nivel    *string            `json:"nivel,omitempty"`
	Materias []SubjectLevelItem `json:"materias"`
}

type WorkloadAssignment struct {
	Curso   string `json:"curso"`
	Materia string `json:"materia"`
	Nivel   string `json:"nivel"`
	Gestion string `json:"gestion"`
}

type ProfessorWorkloadItem struct {
	IDProfesor        int                  `json:"id_profesor"`
	CI                string               `json:"ci"`
	NombreCompleto    string               `json:"nombre_completo"`
	Telefono          string               `json:"telefono,omitempty"`
	Correo            string               `json:"correo,omitempty"`
	TotalAsignaciones int                  `json:"total_asignaciones"`
	CursosDistintos   int                  `json:"cursos_distintos"`
	MateriasDistintas int                  `json:"materias_distintas"`
	Asignaciones      []WorkloadAssignment `json:"asignaciones"`
}

type WorkloadReport struct {
	TotalProfesores int                     `json:"total_profesores"`
	Profesores      []ProfessorWorkloadItem `json:"profesores"`
}

type CourseTermItem struct {
	IDCurso          int    `json:"id_curso"`
	NombreCurso      string `json:"nombre_curso"`
	Nivel            string `json:"nivel"`
	Gestion          string `json:"gestion"`
	TotalEstudiantes int    `json:"total_estudiantes"`
}

type CoursesByTermReport struct {
	Total   int              `json:"total"`
	Gestion *string          `json:"gestion,omitempty"`
	Nivel   *string          `json:"nivel,omitempty"`
	Cursos  []CourseTermItem `json:"cursos"`
}
