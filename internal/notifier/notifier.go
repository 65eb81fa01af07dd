package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
)

// Notifier defines the interface for posting result notifications
type Notifier interface {
	// Notify posts the newly played games. It stops early when ctx is done.
	Notify(ctx context.Context, games []league.EnrichedGame) error
}

// New returns the notifier for mode: "none" (nil notifier), "dry-run" (writes
// to out, or stdout when out is nil), "twitter" or "telegram".
func New(mode string, out io.Writer) (Notifier, error) {
	switch mode {
	case "", "none":
		return nil, nil
	case "dry-run":
		if out == nil {
			out = os.Stdout
		}
		return NewDryRunNotifier(out), nil
	case "twitter":
		n, err := NewTwitterNotifier()
		if err != nil {
			return nil, err
		}
		return n, nil
	case "telegram":
		n, err := NewTelegramNotifier()
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unknown notifier: %q", mode)
	}
}
