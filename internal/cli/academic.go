package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/brisa-edu/brisa-client/internal/models"
)

func newSubjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "subjects", Aliases: []string{"materias"}, Short: "Subjects"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			subjects, err := c.Subjects.ListSubjects(cmd.Context())
			if err != nil {
				return err
			}
			v := &view{Header: table.Row{"ID", "Materia", "Nivel", "Alias"}, Value: subjects}
			for _, s := range subjects {
				v.Rows = append(v.Rows, table.Row{s.IDMateria, s.NombreMateria, s.Nivel, s.Alias})
			}
			return app.show(cmd, "subjects", v)
		},
	})
	return cmd
}

func coursesView(courses []models.Course) *view {
	v := &view{Header: table.Row{"ID", "Curso", "Nivel", "Gestión", "Paralelo", "Estudiantes"}, Value: courses}
	for _, c := range courses {
		v.Rows = append(v.Rows, table.Row{c.IDCurso, c.NombreCurso, c.Nivel, c.Gestion, c.Paralelo, optInt(c.TotalEstudiantes)})
	}
	return v
}

func newCoursesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "courses", Aliases: []string{"cursos"}, Short: "Courses"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List courses, or the courses a person teaches with --persona",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			courses, err := c.Courses.ListCourses(cmd.Context(), optionalInt(cmd, "persona"))
			if err != nil {
				return err
			}
			return app.show(cmd, "courses", coursesView(courses))
		},
	}
	list.Flags().Int("persona", 0, "Only the courses of this person (id_persona)")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "students <id>",
		Short: "List the students of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args, 0, "id")
			if err != nil {
				return err
			}
			c, err := app.Client()
			if err != nil {
				return err
			}
			students, err := c.Courses.CourseStudents(cmd.Context(), id, nil)
			if err != nil {
				return err
			}
			v := &view{Header: table.Row{"ID", "CI", "Nombre", "Edad"}, Value: students}
			for _, s := range students {
				v.Rows = append(v.Rows, table.Row{s.IDEstudiante, s.CI, s.NombreCompleto, optInt(s.Edad)})
			}
			return app.show(cmd, "course-students", v)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "teachers <id>",
		Short: "List who teaches what in a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args, 0, "id")
			if err != nil {
				return err
			}
			c, err := app.Client()
			if err != nil {
				return err
			}
			teachers, err := c.Courses.CourseTeachers(cmd.Context(), id, nil)
			if err != nil {
				return err
			}
			v := &view{Header: table.Row{"Profesor", "Materia"}, Value: teachers}
			for _, t := range teachers {
				v.Rows = append(v.Rows, table.Row{t.NombreCompleto, t.NombreMateria})
			}
			return app.show(cmd, "course-teachers", v)
		},
	})
	return cmd
}

func newCodesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "codes", Aliases: []string{"codigos"}, Short: "Esquela codes"}
	var tipo string
	list := &cobra.Command{
		Use:   "list",
		Short: "List esquela codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			codes, err := c.NoteCodes.ListNoteCodes(cmd.Context(), models.NoteCodeType(tipo))
			if err != nil {
				return err
			}
			v := &view{Header: table.Row{"ID", "Código", "Tipo", "Descripción"}, Value: codes}
			for _, code := range codes {
				v.Rows = append(v.Rows, table.Row{code.IDCodigo, code.Codigo, code.Tipo, code.Descripcion})
			}
			return app.show(cmd, "codes", v)
		},
	}
	list.Flags().StringVar(&tipo, "tipo", "", "reconocimiento or orientacion")
	cmd.AddCommand(list)
	return cmd
}
