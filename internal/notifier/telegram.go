package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
)

// overridden in tests
var apiBaseURL = "https://api.telegram.org/bot"

const telegramTimeout = 10 * time.Second

// TelegramNotifier sends one digest message per refresh to a Telegram chat
type TelegramNotifier struct {
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewTelegramNotifier creates a notifier from TELEGRAM_BOT_TOKEN and
// TELEGRAM_CHAT_ID.
func NewTelegramNotifier() (*TelegramNotifier, error) {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required (TELEGRAM_BOT_TOKEN)")
	}
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required (TELEGRAM_CHAT_ID)")
	}

	return &TelegramNotifier{
		botToken:   botToken,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: telegramTimeout},
	}, nil
}

// Notify sends all games in a single message
func (n *TelegramNotifier) Notify(ctx context.Context, games []league.EnrichedGame) error {
	if len(games) == 0 {
		return nil
	}
	if err := n.sendMessage(ctx, formatDigest(games)); err != nil {
		logger.IncrCounter("notify.failure")
		return err
	}
	logger.IncrCounter("notify.sent")
	return nil
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s%s/sendMessage", apiBaseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}

// formatDigest lists new results as an HTML message
func formatDigest(games []league.EnrichedGame) string {
	var b strings.Builder

	if len(games) == 1 {
		b.WriteString("🤽 <b>Neues Ergebnis</b>\n\n")
	} else {
		fmt.Fprintf(&b, "🤽 <b>%d neue Ergebnisse</b>\n\n", len(games))
	}

	for _, g := range games {
		fmt.Fprintf(&b, "• %s <b>%s</b> %s\n",
			html.EscapeString(g.Home), html.EscapeString(scoreText(g)), html.EscapeString(g.Away))
		if q := quarterLine(g); q != "" {
			fmt.Fprintf(&b, "  <i>%s</i>\n", html.EscapeString(q))
		}
		if g.KickoffText != "" {
			fmt.Fprintf(&b, "  📅 %s\n", html.EscapeString(g.KickoffText))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
