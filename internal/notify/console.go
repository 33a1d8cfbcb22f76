package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sampbb1996-dot/Frame-scanner/internal/domain"
	"github.com/sampbb1996-dot/Frame-scanner/internal/ports"
)

// ConsoleNotifier prints alerts to a writer, one block per listing.
type ConsoleNotifier struct {
	out io.Writer
}

var _ ports.Notifier = (*ConsoleNotifier)(nil)

// NewConsoleNotifier writes to out, defaulting to stdout.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{out: out}
}

// Notify prints the alert line followed by the listing URL.
func (c *ConsoleNotifier) Notify(_ context.Context, alert domain.Alert) error {
	_, err := fmt.Fprintf(c.out, "[NOTIFY] %s exc=%.2f %s\n%s\n",
		alert.Item.Source, alert.Excitation, alert.Item.Title, alert.Item.URL)
	if err != nil {
		return fmt.Errorf("write alert: %w", err)
	}
	return nil
}
