package notifier

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
)

const maxTweetLength = 280

// TwitterNotifier posts new results to Twitter
type TwitterNotifier struct {
	client *twitter.Client
	delay  time.Duration
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client, delay: 2 * time.Second}, nil
}

// Notify posts one tweet per game
func (n *TwitterNotifier) Notify(ctx context.Context, games []league.EnrichedGame) error {
	for i, g := range games {
		if err := ctx.Err(); err != nil {
			return err
		}
		tweet := formatTweet(g)

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			logger.IncrCounter("notify.failure")
			return fmt.Errorf("failed to post tweet for game %s: %w", g.Key(), err)
		}
		logger.IncrCounter("notify.sent")

		// Rate limiting: wait between tweets
		if i < len(games)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(n.delay):
			}
		}
	}

	return nil
}

// formatTweet formats a played game as a tweet
func formatTweet(g league.EnrichedGame) string {
	var b strings.Builder

	b.WriteString("🤽 Neues Ergebnis!\n\n")
	fmt.Fprintf(&b, "%s %s %s\n", g.Home, scoreText(g), g.Away)

	if g.KickoffText != "" {
		fmt.Fprintf(&b, "📅 %s\n", g.KickoffText)
	}
	if g.Location != "" {
		fmt.Fprintf(&b, "📍 %s\n", g.Location)
	}
	if q := quarterLine(g); q != "" {
		fmt.Fprintf(&b, "⏱️ %s\n", q)
	}

	b.WriteString("\n#Wasserball #WaterPolo")

	tweet := b.String()
	if runes := []rune(tweet); len(runes) > maxTweetLength {
		tweet = string(runes[:maxTweetLength-3]) + "..."
	}
	return tweet
}

func scoreText(g league.EnrichedGame) string {
	if g.HomeGoals == nil || g.AwayGoals == nil {
		return g.Score
	}
	s := fmt.Sprintf("%d:%d", *g.HomeGoals, *g.AwayGoals)
	if g.HasShootout() {
		s += league.ShootoutMarker
	}
	return s
}

func quarterLine(g league.EnrichedGame) string {
	parts := make([]string, 0, len(g.Quarters))
	for _, q := range g.Quarters {
		if q.Home == nil || q.Away == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%d", *q.Home, *q.Away))
	}
	return strings.Join(parts, ", ")
}
