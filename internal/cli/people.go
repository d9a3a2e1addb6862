package cli

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/brisa-edu/brisa-client/internal/apiclient"
	"github.com/brisa-edu/brisa-client/internal/models"
	"github.com/brisa-edu/brisa-client/internal/permissions"
)

func newStudentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "students", Aliases: []string{"estudiantes"}, Short: "Students"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			students, err := c.Students.ListStudents(cmd.Context())
			if err != nil {
				return err
			}
			v := &view{Header: table.Row{"ID", "CI", "Nombre", "Edad", "Cursos"}, Value: students}
			for _, s := range students {
				v.Rows = append(v.Rows, table.Row{s.IDEstudiante, s.CI, s.NombreCompleto, optInt(s.Edad), join(s.Cursos)})
			}
			return app.show(cmd, "students", v)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one student",
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
			s, err := c.Students.GetStudent(cmd.Context(), id)
			if err != nil {
				return err
			}
			v := &view{
				Header: table.Row{"Field", "Value"},
				Rows: []table.Row{
					{"ID", s.IDEstudiante},
					{"CI", s.CI},
					{"Nombre", s.NombreCompleto},
					{"Nacimiento", deref(s.FechaNacimiento)},
					{"Edad", optInt(s.Edad)},
					{"Matrícula", s.Matricula},
					{"Cursos", join(s.Cursos)},
				},
				Value: s,
			}
			return app.show(cmd, "student", v)
		},
	})

	cmd.AddCommand(newStudentReportCmd(app))
	return cmd
}

func newStudentReportCmd(app *App) *cobra.Command {
	var nivel, gestion string
	var withGuardians, withoutGuardians bool
	cmd := &cobra.Command{
		Use:       "report <list|guardians|contacts|ages|history>",
		Short:     "Student reports",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"list", "guardians", "contacts", "ages", "history"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			f := &apiclient.StudentReportFilter{CursoID: optionalInt(cmd, "curso"), Nivel: models.Nivel(nivel), Gestion: gestion}

			var v *view
			switch args[0] {
			case "list":
				rep, err := c.Students.StudentReport(ctx, f)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"ID", "CI", "Nombre", "Edad", "Cursos"}, Value: rep}
				for _, s := range rep.Estudiantes {
					v.Rows = append(v.Rows, table.Row{s.IDEstudiante, s.CI, s.NombreCompleto, optInt(s.Edad), join(s.Cursos)})
				}
				v.Footer = table.Row{"", "", "Total", rep.Total, ""}
			case "guardians":
				var with *bool
				switch {
				case withGuardians:
					with = new(bool)
					*with = true
				case withoutGuardians:
					with = new(bool)
				}
				rep, err := c.Students.GuardiansReport(ctx, with)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"ID", "CI", "Nombre", "Apoderados"}, Value: rep}
				for _, s := range rep.Estudiantes {
					var names []string
					for _, g := range s.Apoderados {
						names = append(names, fmt.Sprintf("%s (%s)", g.NombreCompleto, g.Tipo))
					}
					v.Rows = append(v.Rows, table.Row{s.IDEstudiante, s.CI, s.NombreCompleto, join(names)})
				}
				v.Footer = table.Row{"", "", "Total", rep.Total}
			case "contacts":
				rep, err := c.Students.GuardianContactsReport(ctx, f)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"Estudiante", "CI", "Apoderado", "Tipo", "Teléfono"}, Value: rep}
				for _, ct := range rep.Contactos {
					v.Rows = append(v.Rows, table.Row{ct.EstudianteNombre, ct.EstudianteCI, ct.ApoderadoNombre, ct.TipoApoderado, ct.Telefono})
				}
			case "ages":
				rep, err := c.Students.AgeDistributionReport(ctx, f)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"Rango", "Cantidad", "%"}, Value: rep}
				for _, d := range rep.Distribucion {
					v.Rows = append(v.Rows, table.Row{d.RangoEdad, d.Cantidad, fmt.Sprintf("%.2f", d.Porcentaje)})
				}
				v.Footer = table.Row{"Total", rep.TotalEstudiantes, ""}
			case "history":
				rep, err := c.Students.CourseHistoryReport(ctx, optionalInt(cmd, "estudiante"))
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"Estudiante", "Curso", "Nivel", "Gestión"}, Value: rep}
				for _, h := range rep.Historiales {
					for _, cu := range h.Cursos {
						v.Rows = append(v.Rows, table.Row{h.NombreCompleto, cu.NombreCurso, cu.Nivel, cu.Gestion})
					}
				}
			default:
				return fmt.Errorf("unknown report %q", args[0])
			}
			return app.show(cmd, "students-"+args[0], v)
		},
	}
	cmd.Flags().Int("curso", 0, "Course id")
	cmd.Flags().StringVar(&nivel, "nivel", "", "Level: inicial, primaria, secundaria")
	cmd.Flags().StringVar(&gestion, "gestion", "", "School year")
	cmd.Flags().Int("estudiante", 0, "Student id (history)")
	cmd.Flags().BoolVar(&withGuardians, "con-apoderados", false, "Only students with guardians (guardians)")
	cmd.Flags().BoolVar(&withoutGuardians, "sin-apoderados", false, "Only students without guardians (guardians)")
	cmd.MarkFlagsMutuallyExclusive("con-apoderados", "sin-apoderados")
	addExportFlag(cmd)
	return cmd
}

func newProfessorsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "professors", Aliases: []string{"profesores"}, Short: "Professors and their assignments"}

	var force bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List professors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			profs, err := c.Professors.ListProfessors(cmd.Context(), force)
			if err != nil {
				return err
			}
			v := &view{Header: table.Row{"ID", "CI", "Nombre", "Especialidad", "Estado"}, Value: profs}
			for _, p := range profs {
				v.Rows = append(v.Rows, table.Row{p.IDProfesor, p.CI, p.NombreCompleto, p.Especialidad, p.EstadoLaboral})
			}
			return app.show(cmd, "professors", v)
		},
	}
	list.Flags().BoolVar(&force, "force", false, "Bypass the cached list")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one professor",
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
			p, err := c.Professors.GetProfessor(cmd.Context(), id)
			if err != nil {
				return err
			}
			v := &view{
				Header: table.Row{"Field", "Value"},
				Rows: []table.Row{
					{"ID", p.IDProfesor},
					{"CI", p.CI},
					{"Nombre", p.NombreCompleto},
					{"Teléfono", p.Telefono},
					{"Correo", p.Correo},
					{"Especialidad", p.Especialidad},
					{"Experiencia", optInt(p.AnosExperiencia)},
					{"Asignaciones", len(p.Asignaciones)},
				},
				Value: p,
			}
			return app.show(cmd, "professor", v)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "assignments <id>",
		Short: "List the course/subject assignments of a professor",
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
			as, err := c.Professors.ListAssignments(cmd.Context(), id)
			if err != nil {
				return err
			}
			return app.show(cmd, "assignments", assignmentsView(as))
		},
	})

	cmd.AddCommand(newAssignCmd(app, true), newAssignCmd(app, false))
	return cmd
}

func assignmentsView(as []models.Assignment) *view {
	v := &view{Header: table.Row{"Curso", "Materia", "IDs"}, Value: as}
	for _, a := range as {
		v.Rows = append(v.Rows, table.Row{a.NombreCurso, a.NombreMateria, fmt.Sprintf("%d/%d", a.IDCurso, a.IDMateria)})
	}
	return v
}

// newAssignCmd builds "assign" or "unassign". Both are refused locally for
// roles that may not manage professors.
func newAssignCmd(app *App, assign bool) *cobra.Command {
	use, short, action := "assign", "Assign a course subject to a professor", "asignar materias a"
	if !assign {
		use, short, action = "unassign", "Remove a course subject from a professor", "quitar materias a"
	}
	return &cobra.Command{
		Use:   use + " <professor> <course> <subject>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ids [3]int
			for i, name := range []string{"professor", "course", "subject"} {
				n, err := intArg(args, i, name)
				if err != nil {
					return err
				}
				ids[i] = n
			}
			s, err := signedIn(cmd, app)
			if err != nil {
				return err
			}
			if !permissions.CanManageProfessors(s) {
				return errors.New(permissions.DeniedMessage(s, action, string(permissions.Professors)))
			}
			ctx := cmd.Context()
			if !assign {
				if err := app.client.Professors.RemoveAssignment(ctx, ids[0], ids[1], ids[2]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Assignment removed")
				return nil
			}
			a, err := app.client.Professors.AssignCourseSubject(ctx, &models.AssignCourseSubject{IDProfesor: ids[0], IDCurso: ids[1], IDMateria: ids[2]})
			if err != nil {
				return err
			}
			return app.show(cmd, "assignment", assignmentsView([]models.Assignment{*a}))
		},
	}
}

func newStaffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "staff", Short: "Administrative staff and registrars"}

	var full bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List administrative staff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			staff, err := c.AdminStaff.ListAdminStaff(cmd.Context(), full)
			if err != nil {
				return err
			}
			v := &view{Header: table.Row{"Persona", "Nombre", "Cargo", "Estado", "Horario"}, Value: staff}
			for _, s := range staff {
				name := s.NombreCompleto
				if name == "" {
					name = s.Nombres
				}
				horario := ""
				if s.HorarioEntrada != "" {
					horario = s.HorarioEntrada + "-" + s.HorarioSalida
				}
				v.Rows = append(v.Rows, table.Row{optInt(s.IDPersona), name, s.NombreCargo, s.EstadoLaboral, horario})
			}
			return app.show(cmd, "staff", v)
		},
	}
	list.Flags().BoolVar(&full, "full", false, "Fetch the full records")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "positions",
		Short: "List staff positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ps, err := c.AdminStaff.ListPositions(cmd.Context())
			if err != nil {
				return err
			}
			v := &view{Header: table.Row{"ID", "Cargo", "Descripción", "Estado"}, Value: ps}
			for _, p := range ps {
				v.Rows = append(v.Rows, table.Row{p.IDCargo, p.NombreCargo, p.Descripcion, p.Estado})
			}
			return app.show(cmd, "positions", v)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "registrars",
		Short: "List registrars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			people, err := c.Personnel.ListRegistrars(cmd.Context())
			if err != nil {
				return err
			}
			return app.show(cmd, "registrars", peopleView(people))
		},
	})
	return cmd
}

func peopleView(people []models.Person) *view {
	v := &view{Header: table.Row{"Persona", "CI", "Nombre", "Teléfono", "Correo"}, Value: people}
	for _, p := range people {
		v.Rows = append(v.Rows, table.Row{p.IDPersona, p.CI, p.NombreCompleto, p.Telefono, p.Correo})
	}
	return v
}
