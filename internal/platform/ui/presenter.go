// internal/platform/ui/presenter.go
package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"linkscout/internal/core/domain"
)

// Presenter renders the run's lifecycle in the terminal with pterm: a header,
// a live progress bar during validation, and a colored summary at the end.
type Presenter struct {
	mu  sync.Mutex
	bar *pterm.ProgressbarPrinter
}

// NewPresenter creates a terminal presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Header prints the run banner with the query or input description.
func (p *Presenter) Header(subject string) {
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("LinkScout - WhatsApp Invite Validator")
	pterm.Println()
	pterm.Info.Printf("Checking: %s\n", pterm.Cyan(subject))
	pterm.Println()
}

// Progress returns a callback suitable for the validation coordinator. The
// bar is created lazily on the first invocation, when the total is known.
func (p *Presenter) Progress() func(done, total int) {
	return func(done, total int) {
		p.mu.Lock()
		defer p.mu.Unlock()

		if p.bar == nil {
			bar, err := pterm.DefaultProgressbar.
				WithTotal(total).
				WithTitle("Validating").
				Start()
			if err != nil {
				return
			}
			p.bar = bar
		}
		p.bar.Increment()
		if done >= total {
			_, _ = p.bar.Stop()
			p.bar = nil
		}
	}
}

// Summary prints the final status breakdown.
func (p *Presenter) Summary(batch *domain.ValidationBatch, counts map[domain.LinkStatus]int) {
	pterm.Println()
	pterm.DefaultSection.Println("Results")

	pterm.Printf("  %s %s\n", pterm.Green("Active:"), formatCount(counts[domain.StatusActive]))
	pterm.Printf("  %s %s\n", pterm.Yellow("Expired:"), formatCount(counts[domain.StatusExpired]))
	pterm.Printf("  %s %s\n", pterm.Gray("Invalid:"), formatCount(counts[domain.StatusInvalid]))
	pterm.Printf("  %s %s\n", pterm.Red("Errors:"), formatCount(counts[domain.StatusError]))

	pterm.Println()
	pterm.Info.Printf("Checked %d links in %s\n",
		batch.Len(), batch.Metadata.Duration.Round(time.Millisecond))
}

// Failure prints a terminal error message.
func (p *Presenter) Failure(msg string) {
	pterm.Error.Println(msg)
}

func formatCount(n int) string {
	return fmt.Sprintf("%d", n)
}
