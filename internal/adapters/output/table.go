// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"linkscout/internal/core/domain"
)

// maxCellWidth keeps long URLs from blowing up the terminal layout.
const maxCellWidth = 60

// OutputTable prints a readable results table followed by a status summary.
func OutputTable(w io.Writer, batch *domain.ValidationBatch, counts map[domain.LinkStatus]int) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== LinkScout Results ===\n")
	fmt.Fprintf(tw, "Candidates:\t%d\n", batch.Metadata.Total)
	fmt.Fprintf(tw, "Validated:\t%d\n", batch.Len())
	fmt.Fprintf(tw, "Duration:\t%s\n\n", batch.Metadata.Duration.Round(time.Millisecond))

	if batch.Len() > 0 {
		fmt.Fprintln(tw, "STATUS\tGROUP NAME\tMEMBERS\tLINK\tDETAIL")
		fmt.Fprintln(tw, "------\t----------\t-------\t----\t------")

		for _, r := range batch.Results {
			members := "-"
			if r.HasMemberCount() {
				members = fmt.Sprintf("%d", r.MemberCount)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				r.Status.Label(),
				truncate(r.GroupName),
				members,
				truncate(r.Link),
				truncate(r.ErrorDetail),
			)
		}
	} else {
		fmt.Fprintln(tw, "No candidates validated.")
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	fmt.Fprintf(w, "\n%d active out of %d checked (%d expired, %d invalid, %d errors)\n",
		counts[domain.StatusActive],
		batch.Len(),
		counts[domain.StatusExpired],
		counts[domain.StatusInvalid],
		counts[domain.StatusError],
	)
	return nil
}

// truncate cuts on runes: group names are routinely non-ASCII and a byte
// slice could split a character mid-sequence.
func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-3]) + "..."
}
