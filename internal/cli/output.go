package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/brisa-edu/brisa-client/internal/export"
)

// view is what a command prints: the raw value for -o json and a table
// for -o table.
type view struct {
	Title  string
	Header table.Row
	Rows   []table.Row
	Footer table.Row
	Value  any
}

func (v *view) table() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	if v.Title != "" {
		tw.SetTitle(v.Title)
	}
	tw.AppendHeader(v.Header)
	tw.AppendRows(v.Rows)
	if v.Footer != nil {
		tw.AppendFooter(v.Footer)
	}
	return tw
}

func (v *view) render(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v.Value)
	case "table", "":
		_, err := fmt.Fprintln(w, v.table().Render())
		return err
	default:
		return fmt.Errorf("unknown output %q: use table or json", format)
	}
}

// exportView saves v as CSV, or JSON when -o json, and returns its location.
func (v *view) export(ctx context.Context, sink export.Sink, name, format string) (string, error) {
	if format == "json" {
		b, err := json.MarshalIndent(v.Value, "", "  ")
		if err != nil {
			return "", err
		}
		return export.Report(ctx, sink, name, "json", b)
	}
	tw := table.NewWriter()
	tw.AppendHeader(v.Header)
	tw.AppendRows(v.Rows)
	return export.Report(ctx, sink, name, "csv", []byte(tw.RenderCSV()+"\n"))
}

// show prints v, and exports it too when --export is set on cmd.
func (a *App) show(cmd *cobra.Command, name string, v *view) error {
	format, _ := cmd.Flags().GetString("output")
	if err := v.render(cmd.OutOrStdout(), format); err != nil {
		return err
	}
	dest, _ := cmd.Flags().GetString("export")
	if dest == "" {
		return nil
	}
	sink, err := a.Sink(dest)
	if err != nil {
		return err
	}
	loc, err := v.export(cmd.Context(), sink, name, format)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", loc)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func optInt(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprint(*p)
}

func join(ss []string) string {
	return strings.Join(ss, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// intArg parses the i-th positional argument as an id.
func intArg(args []string, i int, name string) (int, error) {
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, args[i])
	}
	return n, nil
}

// optionalInt returns nil unless the flag was set.
func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	n, _ := cmd.Flags().GetInt(name)
	return &n
}
