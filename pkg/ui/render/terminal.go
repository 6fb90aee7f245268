package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/winregi/pkg/types"
	"github.com/arthur-debert/winregi/pkg/ui/styles"
)

// terminalRenderer provides rich terminal output with colors and styling
type terminalRenderer struct {
	w io.Writer
}

func newTerminal(w io.Writer) *terminalRenderer {
	return &terminalRenderer{w: w}
}

func (r *terminalRenderer) badge(result types.ExecutionResult) string {
	switch {
	case result.Success:
		return styles.GetStyle("Success").Render("✓ OK")
	case result.RequiresAdmin:
		return styles.GetStyle("Warning").Render("⚠ Elevation required")
	default:
		return styles.GetStyle("Error").Render("✗ Failed")
	}
}

func (r *terminalRenderer) Result(result types.ExecutionResult) error {
	line := r.badge(result) + " " + styles.GetStyle("Backend").Render(result.Backend.String())
	if result.Code != "" && !result.Success {
		line += " " + styles.GetStyle("Code").Render(string(result.Code))
	}
	if _, err := fmt.Fprintln(r.w, line); err != nil {
		return err
	}
	if out := strings.TrimRight(result.Output, "\r\n"); out != "" {
		_, err := fmt.Fprintln(r.w, styles.GetStyle("Output").Render(out))
		return err
	}
	return nil
}

func (r *terminalRenderer) Validation(report ValidationReport) error {
	backend := styles.GetStyle("Backend").Render(report.Backend.String())
	if report.Validation.OK {
		fmt.Fprintln(r.w, styles.GetStyle("Success").Render("✓ Valid")+" "+backend)
	} else {
		fmt.Fprintln(r.w, styles.GetStyle("Error").Render("✗ Invalid")+" "+backend+" "+
			styles.GetStyle("Code").Render(string(report.Validation.Code)))
		fmt.Fprintln(r.w, styles.GetStyle("Output").Render(report.Validation.Reason))
	}
	if report.Privilege.Required {
		_, err := fmt.Fprintln(r.w, styles.GetStyle("Warning").Render("⚠ Requires elevation: ")+report.Privilege.Reason)
		return err
	}
	return nil
}

func (r *terminalRenderer) Actions(rows []ActionRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(r.w, styles.GetStyle("Muted").Render("No actions in catalog"))
		return err
	}

	data := pterm.TableData{{"ID", "Backend", "Name", "Category", "Admin"}}
	for _, row := range rows {
		admin := ""
		if row.Privilege.Required {
			admin = "yes"
		}
		data = append(data, []string{
			row.Action.ID,
			row.Action.Backend.String(),
			row.Action.Name,
			row.Action.Category,
			admin,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.w, table)
	return err
}

func (r *terminalRenderer) Action(row ActionRow) error {
	a := row.Action
	fmt.Fprintln(r.w, styles.GetStyle("Header").Render(a.Name))
	fmt.Fprintln(r.w, styles.GetStyle("ActionID").Render(a.ID)+" "+styles.GetStyle("Backend").Render(a.Backend.String()))
	fmt.Fprintln(r.w, styles.GetStyle("Code").Render(a.Command))
	if row.Privilege.Required {
		fmt.Fprintln(r.w, styles.GetStyle("Warning").Render("⚠ Requires elevation: ")+row.Privilege.Reason)
	}
	if strings.TrimSpace(a.Description) == "" {
		return nil
	}

	md, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return err
	}
	out, err := md.Render(a.Description)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(r.w, out)
	return err
}

func (r *terminalRenderer) Error(err error) error {
	_, werr := fmt.Fprintln(r.w, styles.GetStyle("Error").Render("Error: ")+err.Error())
	return werr
}
