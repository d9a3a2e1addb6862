package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/brisa-edu/brisa-client/internal/apiclient"
	"github.com/brisa-edu/brisa-client/internal/models"
)

func newReportsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "reports", Aliases: []string{"reportes"}, Short: "Academic and esquela reports"}
	cmd.AddCommand(newAcademicReportCmd(app), newNotesReportCmd(app))
	return cmd
}

func newAcademicReportCmd(app *App) *cobra.Command {
	var nivel, gestion string
	cmd := &cobra.Command{
		Use:       "academic <professors|subjects|workload|courses>",
		Short:     "Academic reports",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"professors", "subjects", "workload", "courses"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			f := &apiclient.AcademicFilter{
				CursoID:    optionalInt(cmd, "curso"),
				MateriaID:  optionalInt(cmd, "materia"),
				ProfesorID: optionalInt(cmd, "profesor"),
				Nivel:      models.Nivel(nivel),
				Gestion:    gestion,
			}

			var v *view
			switch args[0] {
			case "professors":
				rep, err := c.Academic.AssignedProfessors(ctx, f)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"Profesor", "CI", "Curso", "Materia", "Teléfono"}, Value: rep}
				for _, p := range rep.Profesores {
					v.Rows = append(v.Rows, table.Row{p.NombreCompleto, p.CI, p.Curso, p.Materia, p.Telefono})
				}
				v.Footer = table.Row{"Total", rep.Total, "", "", ""}
			case "subjects":
				rep, err := c.Academic.SubjectsByLevel(ctx, f.Nivel)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"ID", "Materia", "Nivel"}, Value: rep}
				for _, s := range rep.Materias {
					v.Rows = append(v.Rows, table.Row{s.IDMateria, s.NombreMateria, s.Nivel})
				}
				v.Footer = table.Row{"Total", rep.Total, ""}
			case "workload":
				rep, err := c.Academic.Workload(ctx, f)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"Profesor", "Asignaciones", "Cursos", "Materias"}, Value: rep}
				for _, p := range rep.Profesores {
					v.Rows = append(v.Rows, table.Row{p.NombreCompleto, p.TotalAsignaciones, p.CursosDistintos, p.MateriasDistintas})
				}
			case "courses":
				rep, err := c.Academic.CoursesByTerm(ctx, f)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"ID", "Curso", "Nivel", "Gestión", "Estudiantes"}, Value: rep}
				for _, cu := range rep.Cursos {
					v.Rows = append(v.Rows, table.Row{cu.IDCurso, cu.NombreCurso, cu.Nivel, cu.Gestion, cu.TotalEstudiantes})
				}
				v.Footer = table.Row{"Total", rep.Total, "", "", ""}
			default:
				return fmt.Errorf("unknown report %q", args[0])
			}
			return app.show(cmd, "academic-"+args[0], v)
		},
	}
	cmd.Flags().Int("curso", 0, "Course id")
	cmd.Flags().Int("materia", 0, "Subject id")
	cmd.Flags().Int("profesor", 0, "Professor id")
	cmd.Flags().StringVar(&nivel, "nivel", "", "Level: inicial, primaria, secundaria")
	cmd.Flags().StringVar(&gestion, "gestion", "", "School year")
	addExportFlag(cmd)
	return cmd
}

func newNotesReportCmd(app *App) *cobra.Command {
	var tipo, from, to, groupBy string
	cmd := &cobra.Command{
		Use:       "notes <by-professor|by-date|frequent-codes|ranking|by-course|by-period>",
		Aliases:   []string{"esquelas"},
		Short:     "Esquela reports and aggregates",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"by-professor", "by-date", "frequent-codes", "ranking", "by-course", "by-period"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			f := &apiclient.EsquelaReportFilter{
				ProfesorID: optionalInt(cmd, "profesor"),
				Tipo:       models.NoteCodeType(tipo),
				Limit:      optionalInt(cmd, "limit"),
				From:       from,
				To:         to,
			}

			var v *view
			switch args[0] {
			case "by-professor":
				rep, err := c.Esquelas.ByProfessorReport(ctx, f)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"Profesor", "CI", "Total", "Reconocimientos", "Orientaciones"}, Value: rep}
				for _, p := range rep.Profesores {
					v.Rows = append(v.Rows, table.Row{p.ProfesorNombre, p.ProfesorCI, p.TotalEsquelas, p.Reconocimientos, p.Orientaciones})
				}
				v.Footer = table.Row{"Total", "", rep.TotalEsquelas, "", ""}
			case "by-date":
				rep, err := c.Esquelas.ByDateReport(ctx, f)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"Fecha", "Estudiante", "Profesor", "Códigos"}, Value: rep}
				for _, e := range rep.Esquelas {
					v.Rows = append(v.Rows, table.Row{e.Fecha, e.EstudianteNombre, e.ProfesorNombre, join(e.Codigos)})
				}
				v.Footer = table.Row{"Total", rep.Total, fmt.Sprintf("R %d / O %d", rep.Reconocimientos, rep.Orientaciones), ""}
			case "frequent-codes":
				rep, err := c.Esquelas.FrequentCodesReport(ctx, f)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"Código", "Descripción", "Tipo", "Aplicaciones", "%"}, Value: rep}
				for _, code := range rep.Codigos {
					v.Rows = append(v.Rows, table.Row{code.Codigo, code.Descripcion, code.Tipo, code.TotalAplicaciones, fmt.Sprintf("%.2f", code.Porcentaje)})
				}
				v.Footer = table.Row{"Total", "", "", rep.TotalAplicaciones, ""}
			case "ranking":
				q := apiclient.Values{"tipo": tipo, "limit": f.Limit}
				items, err := c.Esquelas.Ranking(ctx, q)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"#", "Estudiante", "Total", "Reconocimientos", "Orientaciones"}, Value: items}
				for i, it := range items {
					v.Rows = append(v.Rows, table.Row{i + 1, it.NombreCompleto, it.Total, it.Reconocimientos, it.Orientaciones})
				}
			case "by-course":
				items, err := c.Esquelas.AggregateByCourse(ctx, optionalInt(cmd, "year"))
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"Curso", "Total", "Reconocimientos", "Orientaciones"}, Value: items}
				for _, it := range items {
					v.Rows = append(v.Rows, table.Row{it.NombreCurso, it.Total, it.Reconocimientos, it.Orientaciones})
				}
			case "by-period":
				items, err := c.Esquelas.AggregateByPeriod(ctx, groupBy)
				if err != nil {
					return err
				}
				v = &view{Header: table.Row{"Periodo", "Total", "Reconocimientos", "Orientaciones"}, Value: items}
				for _, it := range items {
					v.Rows = append(v.Rows, table.Row{it.Periodo, it.Total, it.Reconocimientos, it.Orientaciones})
				}
			default:
				return fmt.Errorf("unknown report %q", args[0])
			}
			return app.show(cmd, "esquelas-"+args[0], v)
		},
	}
	cmd.Flags().Int("profesor", 0, "Professor id")
	cmd.Flags().Int("limit", 0, "Maximum rows")
	cmd.Flags().Int("year", 0, "Year (by-course)")
	cmd.Flags().StringVar(&tipo, "tipo", "", "reconocimiento or orientacion")
	cmd.Flags().StringVar(&from, "from", "", "From date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "To date, YYYY-MM-DD")
	cmd.Flags().StringVar(&groupBy, "group-by", apiclient.DefaultPeriodGrouping, "year or month (by-period)")
	addExportFlag(cmd)
	return cmd
}
