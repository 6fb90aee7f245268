package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/winregi/pkg/types"
)

// textRenderer prints plain text for pipes and NO_COLOR terminals.
type textRenderer struct {
	w io.Writer
}

func newText(w io.Writer) *textRenderer {
	return &textRenderer{w: w}
}

func statusWord(result types.ExecutionResult) string {
	switch {
	case result.Success:
		return "OK"
	case result.RequiresAdmin:
		return "ELEVATION REQUIRED"
	default:
		return "FAILED"
	}
}

func (r *textRenderer) Result(result types.ExecutionResult) error {
	line := fmt.Sprintf("%s [%s]", statusWord(result), result.Backend)
	if result.Code != "" {
		line += " " + string(result.Code)
	}
	if _, err := fmt.Fprintln(r.w, line); err != nil {
		return err
	}
	if out := strings.TrimRight(result.Output, "\r\n"); out != "" {
		_, err := fmt.Fprintln(r.w, out)
		return err
	}
	return nil
}

func (r *textRenderer) Validation(report ValidationReport) error {
	if report.Validation.OK {
		fmt.Fprintf(r.w, "valid [%s]\n", report.Backend)
	} else {
		fmt.Fprintf(r.w, "invalid [%s] %s: %s\n", report.Backend, report.Validation.Code, report.Validation.Reason)
	}
	if report.Privilege.Required {
		_, err := fmt.Fprintf(r.w, "requires elevation: %s\n", report.Privilege.Reason)
		return err
	}
	return nil
}

func (r *textRenderer) Actions(rows []ActionRow) error {
	for _, row := range rows {
		admin := ""
		if row.Privilege.Required {
			admin = " (admin)"
		}
		if _, err := fmt.Fprintf(r.w, "%-24s %-10s %s%s\n", row.Action.ID, row.Action.Backend, row.Action.Name, admin); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) Action(row ActionRow) error {
	a := row.Action
	fmt.Fprintf(r.w, "%s: %s\n", a.ID, a.Name)
	if a.Category != "" {
		fmt.Fprintf(r.w, "category: %s\n", a.Category)
	}
	fmt.Fprintf(r.w, "backend: %s\n", a.Backend)
	fmt.Fprintf(r.w, "command: %s\n", a.Command)
	if row.Privilege.Required {
		fmt.Fprintf(r.w, "requires elevation: %s\n", row.Privilege.Reason)
	}
	if a.Description != "" {
		_, err := fmt.Fprintf(r.w, "\n%s\n", strings.TrimSpace(a.Description))
		return err
	}
	return nil
}

func (r *textRenderer) Error(err error) error {
	_, werr := fmt.Fprintf(r.w, "error: %v\n", err)
	return werr
}
