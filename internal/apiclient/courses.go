package apiclient

import (
	"context"
	"fmt"

	"github.com/brisa-edu/brisa-client/internal/models"
)

// Courses defines the course operations. ListCourses scopes the listing to
// the given person; nil lists every course the caller may see.
type Courses interface {
	ListCourses(ctx context.Context, personID *int) ([]models.Course, error)
	TeacherCourses(ctx context.Context, professorID int) ([]models.Course, error)
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	CourseStudents(ctx context.Context, courseID int, params Values) ([]models.Student, error)
	CourseTeachers(ctx context.Context, courseID int, params Values) ([]models.CourseTeacher, error)
	CreateCourse(ctx context.Context, in *models.CourseCreate) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int, in *models.CourseUpdate) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int) error
}

type courseClient struct {
	client *BaseClient
}

func NewCourseClient(client *BaseClient) Courses {
	return &courseClient{client: client}
}

func (c *courseClient) ListCourses(ctx context.Context, personID *int) ([]models.Course, error) {
	var out []models.Course
	if err := c.client.Get(ctx, "/courses/"+BuildQuery(P("id_persona", personID)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *courseClient) TeacherCourses(ctx context.Context, professorID int) ([]models.Course, error) {
	var out []models.Course
	if err := c.client.Get(ctx, fmt.Sprintf("/courses/mis_cursos/%d", professorID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *courseClient) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	var out models.Course
	if err := c.client.Get(ctx, fmt.Sprintf("/courses/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *courseClient) CourseStudents(ctx context.Context, courseID int, params Values) ([]models.Student, error) {
	var out []models.Student
	path := fmt.Sprintf("/courses/%d/students/", courseID) + BuildQuery(params.Params()...)
	if err := c.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *courseClient) CourseTeachers(ctx context.Context, courseID int, params Values) ([]models.CourseTeacher, error) {
	var out []models.CourseTeacher
	path := fmt.Sprintf("/courses/%d/teachers/", courseID) + BuildQuery(params.Params()...)
	if err := c.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *courseClient) CreateCourse(ctx context.Context, in *models.CourseCreate) (*models.Course, error) {
	var out models.Course
	if err := c.client.Post(ctx, "/courses/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *courseClient) UpdateCourse(ctx context.Context, id int, in *models.CourseUpdate) (*models.Course, error) {
	var out models.Course
	if err := c.client.Put(ctx, fmt.Sprintf("/courses/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *courseClient) DeleteCourse(ctx context.Context, id int) error {
	return c.client.Delete(ctx, fmt.Sprintf("/courses/%d", id), nil)
}
