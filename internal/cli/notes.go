package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/brisa-edu/brisa-client/internal/apiclient"
	"github.com/brisa-edu/brisa-client/internal/models"
)

func codeList(codes []models.NoteCode) string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, c.Codigo)
	}
	return strings.Join(out, ", ")
}

func esquelasView(es []models.Esquela) *view {
	v := &view{Header: table.Row{"ID", "Fecha", "Estudiante", "Profesor", "Códigos", "Observaciones"}, Value: es}
	for _, e := range es {
		var student, prof string
		if e.Estudiante != nil {
			student = e.Estudiante.NombreCompleto
		}
		if e.Profesor != nil {
			prof = e.Profesor.NombreCompleto
		}
		v.Rows = append(v.Rows, table.Row{e.IDEsquela, e.Fecha, student, prof, codeList(e.Codigos), e.Observaciones})
	}
	return v
}

// noteFilter reads the shared esquela filter flags.
func noteFilter(cmd *cobra.Command) apiclient.Values {
	q := apiclient.Values{}
	for flag, key := range map[string]string{"estudiante": "estudiante_id", "profesor": "profesor_id"} {
		if n := optionalInt(cmd, flag); n != nil {
			q[key] = *n
		}
	}
	for _, key := range []string{"from", "to", "tipo"} {
		if s, _ := cmd.Flags().GetString(key); s != "" {
			q[key] = s
		}
	}
	return q
}

func addNoteFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Int("estudiante", 0, "Student id")
	cmd.Flags().Int("profesor", 0, "Professor id")
	cmd.Flags().String("from", "", "From date, YYYY-MM-DD")
	cmd.Flags().String("to", "", "To date, YYYY-MM-DD")
	cmd.Flags().String("tipo", "", "reconocimiento or orientacion")
}

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{Use: "notes", Aliases: []string{"esquelas"}, Short: "Esquelas"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List esquelas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			es, err := c.Esquelas.ListEsquelas(cmd.Context(), noteFilter(cmd))
			if err != nil {
				return err
			}
			return app.show(cmd, "esquelas", esquelasView(es))
		},
	}
	addNoteFilterFlags(list)
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one esquela",
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
			e, err := c.Esquelas.GetEsquela(cmd.Context(), id)
			if err != nil {
				return err
			}
			v := esquelasView([]models.Esquela{*e})
			v.Value = e
			return app.show(cmd, "esquela", v)
		},
	})

	var (
		student int
		codes   []int
		fecha   string
		obs     string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Issue an esquela",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			e, err := c.Esquelas.CreateEsquela(cmd.Context(), &models.EsquelaCreate{
				IDEstudiante:  student,
				Fecha:         fecha,
				Observaciones: obs,
				Codigos:       codes,
				IDProfesor:    optionalInt(cmd, "profesor"),
			})
			if err != nil {
				return err
			}
			v := esquelasView([]models.Esquela{*e})
			v.Value = e
			return app.show(cmd, "esquela", v)
		},
	}
	create.Flags().IntVar(&student, "estudiante", 0, "Student id")
	create.Flags().IntSliceVar(&codes, "codigo", nil, "Code id, repeatable")
	create.Flags().StringVar(&fecha, "fecha", "", "Date, YYYY-MM-DD; today when omitted")
	create.Flags().StringVar(&obs, "obs", "", "Observations")
	create.Flags().Int("profesor", 0, "Professor id; the caller when omitted")
	_ = create.MarkFlagRequired("estudiante")
	_ = create.MarkFlagRequired("codigo")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an esquela",
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
			if err := c.Esquelas.DeleteEsquela(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Esquela %d deleted\n", id)
			return nil
		},
	})
	return cmd
}
