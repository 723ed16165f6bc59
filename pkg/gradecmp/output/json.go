// Package output renders comparison reports as Excel workbooks or JSON.
package output

import (
	"encoding/json"

	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
)

// ToJSON serializes a report.
func ToJSON(r *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(r, "", "  ")
	}
	return json.Marshal(r)
}
