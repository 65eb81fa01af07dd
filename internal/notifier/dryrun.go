package notifier

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
)

// DryRunNotifier prints what would be tweeted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the tweets that would be posted
func (n *DryRunNotifier) Notify(ctx context.Context, games []league.EnrichedGame) error {
	for i, g := range games {
		tweet := formatTweet(g)
		fmt.Fprintf(n.out, "--- Tweet %d/%d ---\n", i+1, len(games))
		fmt.Fprintln(n.out, tweet)
		fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", utf8.RuneCountInString(tweet))
	}
	return nil
}
