package web

import (
	"fmt"
	"strconv"
	"time"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
)

const missing = "–"

func numFormatter(p *int) string {
	if p == nil {
		return missing
	}
	return strconv.Itoa(*p)
}

func avgFormatter(p *float64) string {
	if p == nil {
		return missing
	}
	return fmt.Sprintf("%.2f", *p)
}

func diffFormatter(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func stampFormatter(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("02.01.2006 15:04:05")
}

// outcomeClass maps an outcome to the CSS class of its schedule row.
func outcomeClass(o league.Outcome) string {
	switch o {
	case league.OutcomeWin:
		return "win"
	case league.OutcomeWinShootout:
		return "win-so"
	case league.OutcomeLoss:
		return "loss"
	case league.OutcomeLossShootout:
		return "loss-so"
	default:
		return "open"
	}
}
