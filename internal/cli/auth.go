package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/brisa-edu/brisa-client/internal/permissions"
	"github.com/brisa-edu/brisa-client/internal/session"
)

var errNotLoggedIn = errors.New("not logged in, run `brisa login`")

func newLoginCmd(app *App) *cobra.Command {
	var user, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(app.In)
			var err error
			if user == "" {
				if user, err = prompt(cmd, in, "Usuario: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword(cmd, app.In, in); err != nil {
					return err
				}
			}
			if _, err := app.Client(); err != nil {
				return err
			}
			resp, err := app.session.Login(cmd.Context(), user, password)
			if err != nil {
				// a stale token cleared on the way is not an expiry
				app.expired = false
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", resp.Usuario, resp.Rol)
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password; prompted when omitted")
	return cmd
}

func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading %s: %w", strings.TrimSuffix(label, ": "), err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal.
func promptPassword(cmd *cobra.Command, raw io.Reader, in *bufio.Reader) (string, error) {
	if f, ok := raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Contraseña: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	return prompt(cmd, in, "Contraseña: ")
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Client(); err != nil {
				return err
			}
			if err := app.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newRefreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Swap the access token for a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Client(); err != nil {
				return err
			}
			if err := app.session.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token refreshed")
			return nil
		},
	}
}

// signedIn restores the session and fails when nobody is logged in.
func signedIn(cmd *cobra.Command, app *App) (*session.Store, error) {
	s, err := app.Session(cmd.Context())
	if err != nil {
		return nil, err
	}
	if !s.IsAuthenticated() {
		if app.expired {
			return nil, ErrSessionExpired
		}
		return nil, errNotLoggedIn
	}
	return s, nil
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := signedIn(cmd, app)
			if err != nil {
				return err
			}
			u := s.User()
			persona, _ := s.PersonID()
			v := &view{
				Header: table.Row{"Field", "Value"},
				Rows: []table.Row{
					{"Usuario", u.Usuario},
					{"Nombres", u.Nombres},
					{"Rol", u.Rol},
					{"Persona", persona},
					{"Administrador", yesNo(s.IsAdministrator())},
					{"Gestionar profesores", yesNo(permissions.CanManageProfessors(s))},
					{"Gestionar cursos", yesNo(permissions.CanManageCourses(s))},
					{"Gestionar materias", yesNo(permissions.CanManageSubjects(s))},
				},
				Value: u,
			}
			return app.show(cmd, "whoami", v)
		},
	}
}

func newPermissionsCmd(app *App) *cobra.Command {
	var module string
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "List the modules and permissions of the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := signedIn(cmd, app)
			if err != nil {
				return err
			}
			if module != "" {
				value := map[string]any{"modulo": module, "permisos": s.ModulePermissions(module), "acceso": s.CanAccessModule(module)}
				v := &view{
					Header: table.Row{"Module", "Permissions", "Access"},
					Rows:   []table.Row{{module, join(s.ModulePermissions(module)), yesNo(s.CanAccessModule(module))}},
					Value:  value,
				}
				kind := permissions.Kind(module)
				if _, managed := permissions.Messages[kind]; managed {
					res := permissions.Verify(s, kind)
					value["gestion"] = res
					if !res.Allowed {
						v.Footer = table.Row{"", res.Message, ""}
					}
				}
				return app.show(cmd, "permissions", v)
			}
			menu := s.MenuModules()
			v := &view{Header: table.Row{"Module", "Name", "Permissions"}, Value: menu}
			for _, m := range menu {
				v.Rows = append(v.Rows, table.Row{m.ID, m.Name, join(s.ModulePermissions(m.ID))})
			}
			return app.show(cmd, "permissions", v)
		},
	}
	cmd.Flags().StringVar(&module, "module", "", "Show a single module")
	return cmd
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			health, err := c.Status.Health(cmd.Context())
			if err != nil {
				return err
			}
			status, err := c.Status.Status(cmd.Context())
			if err != nil {
				return err
			}
			v := &view{Header: table.Row{"Key", "Value"}, Rows: []table.Row{{"health", health}}, Value: status}
			for _, k := range sortedKeys(status) {
				v.Rows = append(v.Rows, table.Row{k, status[k]})
			}
			return app.show(cmd, "status", v)
		},
	}
}
