package render

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/types"
)

// jsonRenderer provides JSON output for machine consumption
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSON(w io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

func (r *jsonRenderer) Result(result types.ExecutionResult) error {
	return r.encoder.Encode(result)
}

func (r *jsonRenderer) Validation(report ValidationReport) error {
	return r.encoder.Encode(report)
}

func (r *jsonRenderer) Actions(rows []ActionRow) error {
	if rows == nil {
		rows = []ActionRow{}
	}
	return r.encoder.Encode(rows)
}

func (r *jsonRenderer) Action(row ActionRow) error {
	return r.encoder.Encode(row)
}

func (r *jsonRenderer) Error(err error) error {
	return r.encoder.Encode(map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	})
}
