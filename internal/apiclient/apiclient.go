package apiclient

// Client groups one typed client per backend resource over a shared
// BaseClient.
type Client struct {
	Base *BaseClient

	Auth       Auth
	Students   Students
	Professors Professors
	Personnel  Personnel
	AdminStaff AdminStaff
	Subjects   Subjects
	Courses    Courses
	NoteCodes  NoteCodes
	Esquelas   Esquelas
	Academic   Academic
	Status     Status
}

func New(baseURL string, opts ...Option) *Client {
	return NewFromBase(NewBaseClient(baseURL, opts...))
}

func NewFromBase(base *BaseClient) *Client {
	return &Client{
		Base:       base,
		Auth:       NewAuthClient(base),
		Students:   NewStudentClient(base),
		Professors: NewProfessorClient(base),
		Personnel:  NewPersonnelClient(base),
		AdminStaff: NewAdminStaffClient(base),
		Subjects:   NewSubjectClient(base),
		Courses:    NewCourseClient(base),
		NoteCodes:  NewNoteCodeClient(base),
		Esquelas:   NewEsquelaClient(base),
		Academic:   NewAcademicClient(base),
		Status:     NewStatusClient(base),
	}
}
