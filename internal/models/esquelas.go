package models

// NoteCodeType classifies an esquela code.
type NoteCodeType string

const (
	NoteCodeRecognition NoteCodeType = "reconocimiento"
	NoteCodeGuidance    NoteCodeType = "orientacion"
)

// NoteCode is a catalogued reason an esquela can cite.
type NoteCode struct {
	IDCodigo    int          `json:"id_codigo"`
	Codigo      string       `json:"codigo"`
	Descripcion string       `json:"descripcion"`
	Tipo        NoteCodeType `json:"tipo"`
}

type NoteCodeInput struct {
	Tipo        NoteCodeType `json:"tipo"`
	Codigo      string       `json:"codigo"`
	Descripcion string       `json:"descripcion"`
}

type EsquelaCreate struct {
	IDEstudiante  int    `json:"id_estudiante"`
	Fecha         string `json:"fecha"`
	Observaciones string `json:"observaciones"`
	Codigos       []int  `json:"codigos"`
	IDProfesor    *int   `json:"id_profesor,omitempty"`
}

// Esquela is a disciplinary or commendation note issued to a student.
type Esquela struct {
	IDEsquela     int        `json:"id_esquela"`
	Fecha         string     `json:"fecha"`
	Observaciones string     `json:"observaciones"`
	Estudiante    *Student   `json:"estudiante,omitempty"`
	Profesor      *Person    `json:"profesor,omitempty"`
	Registrador   *Person    `json:"registrador,omitempty"`
	Codigos       []NoteCode `json:"codigos"`
}

type EsquelaCourseAggregate struct {
	IDCurso         int    `json:"id_curso"`
	NombreCurso     string `json:"nombre_curso"`
	Total           int    `json:"total"`
	Reconocimientos int    `json:"reconocimientos"`
	Orientaciones   int    `json:"orientaciones"`
}

type EsquelaPeriodAggregate struct {
	Periodo         string `json:"periodo"`
	Total           int    `json:"total"`
	Reconocimientos int    `json:"reconocimientos"`
	Orientaciones   int    `json:"orientaciones"`
}

type RankingItem struct {
	IDEstudiante    int    `json:"id_estudiante"`
	NombreCompleto  string `json:"nombre_completo"`
	Total           int    `json:"total"`
	Reconocimientos int    `json:"reconocimientos"`
	Orientaciones   int    `json:"orientaciones"`
}

type EsquelaSummary struct {
	IDEsquela        int      `json:"id_esquela"`
	Fecha            string   `json:"fecha"`
	EstudianteNombre string   `json:"estudiante_nombre"`
	EstudianteCI     string   `json:"estudiante_ci"`
	Codigos          []string `json:"codigos"`
	Observaciones    *string  `json:"observaciones"`
}

type EsquelasByProfessorItem struct {
	IDProfesor      int              `json:"id_profesor"`
	ProfesorNombre  string           `json:"profesor_nombre"`
	ProfesorCI      string           `json:"profesor_ci"`
	TotalEsquelas   int              `json:"total_esquelas"`
	Reconocimientos int              `json:"reconocimientos"`
	Orientaciones   int              `json:"orientaciones"`
	Esquelas        []EsquelaSummary `json:"esquelas"`
}

type EsquelasByProfessorReport struct {
	TotalProfesores int                       `json:"total_profesores"`
	TotalEsquelas   int                       `json:"total_esquelas"`
	Profesores      []EsquelasByProfessorItem `json:"profesores"`
}

type EsquelasByDateItem struct {
	IDEsquela         int      `json:"id_esquela"`
	Fecha             string   `json:"fecha"`
	EstudianteNombre  string   `json:"estudiante_nombre"`
	EstudianteCI      string   `json:"estudiante_ci"`
	ProfesorNombre    string   `json:"profesor_nombre"`
	RegistradorNombre string   `json:"registrador_nombre"`
	Codigos           []string `json:"codigos"`
	Observaciones     *string  `json:"observaciones"`
}

type EsquelasByDateReport struct {
	Total           int                  `json:"total"`
	Reconocimientos int                  `json:"reconocimientos"`
	Orientaciones   int                  `json:"orientaciones"`
	FechaDesde      *string              `json:"fecha_desde"`
	FechaHasta      *string              `json:"fecha_hasta"`
	Esquelas        []EsquelasByDateItem `json:"esquelas"`
}

type FrequentCodeItem struct {
	Codigo            string       `json:"codigo"`
	Descripcion       string       `json:"descripcion"`
	Tipo              NoteCodeType `json:"tipo"`
	TotalAplicaciones int          `json:"total_aplicaciones"`
	Porcentaje        float64      `json:"porcentaje"`
}

type FrequentCodesReport struct {
	TotalCodigos      int                `json:"total_codigos"`
	TotalAplicaciones int                `json:"total_aplicaciones"`
	Codigos           []FrequentCodeItem `json:"codigos"`
}
