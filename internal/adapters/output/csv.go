// internal/adapters/output/csv.go
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"linkscout/internal/core/domain"
	"linkscout/internal/core/ports"
)

// csvHeader is the fixed column layout of every export. Column order is part
// of the format; downstream spreadsheets key on it.
var csvHeader = []string{"Group Name", "Group Link", "Logo URL", "Status", "Members", "Error Detail"}

// CSVExporter serializes a finished batch as UTF-8 CSV, one row per result,
// in batch (completion) order.
type CSVExporter struct {
	// ActiveOnly limits the export to active results when set.
	ActiveOnly bool
}

var _ ports.Exporter = (*CSVExporter)(nil)

// NewCSVExporter creates an exporter that writes every result.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes the header row followed by one row per result. An empty
// batch produces a header-only file, which is still a valid export.
func (e *CSVExporter) Export(w io.Writer, batch *domain.ValidationBatch) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range batch.Results {
		if e.ActiveOnly && !r.IsActive() {
			continue
		}
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", r.Link, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// row maps one result to the fixed column layout. A zero member count means
// the page exposed none, so the cell stays empty rather than printing "0".
func row(r domain.ValidationResult) []string {
	members := ""
	if r.HasMemberCount() {
		members = strconv.Itoa(r.MemberCount)
	}
	return []string{
		r.GroupName,
		r.Link,
		r.LogoURL,
		r.Status.Label(),
		members,
		r.ErrorDetail,
	}
}
