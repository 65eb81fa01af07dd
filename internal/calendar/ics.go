package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
)

const (
	gameDuration  = 90 * time.Minute
	maxLineOctets = 75
)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/VincentSchmalor/WPAnalysis/calendar"))

// GenerateICS generates an iCalendar (.ics) file with one event per fixture of
// team. Fixtures without a kickoff time are left out. Relative protocol links
// are resolved against pageURL.
func GenerateICS(team string, games []league.TeamGame, pageURL string) string {
	var ics strings.Builder

	writeLine(&ics, "BEGIN:VCALENDAR")
	writeLine(&ics, "VERSION:2.0")
	writeLine(&ics, "PRODID:-//WPAnalysis//wpanalysis//DE")
	writeLine(&ics, "CALSCALE:GREGORIAN")
	writeLine(&ics, "METHOD:PUBLISH")
	writeLine(&ics, "X-WR-CALNAME:"+escapeICS(team))

	// DTSTAMP - timestamp when this calendar was created
	now := formatICSTime(time.Now())

	for _, g := range games {
		if g.Kickoff == nil {
			continue
		}

		start := *g.Kickoff
		end := start.Add(gameDuration)

		writeLine(&ics, "BEGIN:VEVENT")
		writeLine(&ics, fmt.Sprintf("UID:%s@wpanalysis", uidFor(team, g)))
		writeLine(&ics, "DTSTAMP:"+now)
		writeLine(&ics, "DTSTART:"+formatICSTime(start))
		writeLine(&ics, "DTEND:"+formatICSTime(end))
		writeLine(&ics, "SUMMARY:"+escapeICS(summary(g)))
		writeLine(&ics, "DESCRIPTION:"+escapeICS(description(g)))
		if g.Location != "" {
			writeLine(&ics, "LOCATION:"+escapeICS(g.Location))
		}
		if link := protocolLink(pageURL, g.ProtocolURL); link != "" {
			writeLine(&ics, "URL:"+link)
		}
		writeLine(&ics, "STATUS:CONFIRMED")
		writeLine(&ics, "SEQUENCE:0")
		writeLine(&ics, "TRANSP:OPAQUE")
		writeLine(&ics, "END:VEVENT")
	}

	writeLine(&ics, "END:VCALENDAR")

	return ics.String()
}

func summary(g league.TeamGame) string {
	s := fmt.Sprintf("%s - %s", g.Home, g.Away)
	if g.Status == league.StatusPlayed {
		s += " (" + g.Score + ")"
	}
	return s
}

func description(g league.TeamGame) string {
	lines := []string{
		fmt.Sprintf("%s vs %s (%s)", g.Team, g.Opponent(), g.Venue),
	}
	if g.Number != "" {
		lines = append(lines, "Spiel-Nr.: "+g.Number)
	}
	if g.Status == league.StatusPlayed {
		lines = append(lines, fmt.Sprintf("Ergebnis: %s - %s", g.Score, g.Outcome))
		if g.QuarterText != "" {
			lines = append(lines, "Viertel: "+g.QuarterText)
		}
	}
	return strings.Join(lines, "\n")
}

// uidFor derives a stable event UID from the team and the fixture key.
func uidFor(team string, g league.TeamGame) string {
	return uuid.NewSHA1(uidNamespace, []byte(team+"|"+g.Key())).String()
}

func protocolLink(pageURL, ref string) string {
	if ref == "" {
		return ""
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if refURL.IsAbs() {
		return refURL.String()
	}
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return ""
	}
	return base.ResolveReference(refURL).String()
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// writeLine folds content lines longer than 75 octets (RFC 5545 3.1) without
// splitting a UTF-8 sequence.
func writeLine(b *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// continuation lines start with a space
		limit = maxLineOctets - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}
