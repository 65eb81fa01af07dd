package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
)

const (
	DefaultLeagueURL = "https://dsvdaten.dsv.de/Modules/WB/League.aspx?Season=2024&LeagueID=77&Group=&LeagueKind=L&StateID=17"
	UserAgent        = "wpanalysis/1.0 (github.com/VincentSchmalor/WPAnalysis)"
	Timeout          = 30 * time.Second

	// Position of each dataset among all <table> elements of the page
	scheduleTable  = 1
	standingsTable = 2

	scheduleHeaderRows  = 2
	standingsHeaderRows = 1
	minStandingCells    = 9

	maxPageSize = 10 << 20
)

var (
	// ErrFetch is returned when the league page cannot be downloaded.
	ErrFetch = errors.New("fetching league page")
	// ErrSchema is returned when the page does not have the expected tables.
	ErrSchema = errors.New("unexpected league page layout")
)

// Scraper downloads a league results page and extracts its tables
type Scraper struct {
	client  *http.Client
	url     string
	maxSize int64
}

// New creates a Scraper for url. An empty url selects DefaultLeagueURL and a
// non-positive timeout selects Timeout.
func New(url string, timeout time.Duration) *Scraper {
	if url == "" {
		url = DefaultLeagueURL
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		url:     url,
		maxSize: maxPageSize,
	}
}

// URL returns the page address the scraper reads from.
func (s *Scraper) URL() string {
	return s.url
}

// Fetch downloads the page and returns its schedule and standings rows.
func (s *Scraper) Fetch(ctx context.Context) (league.RawTables, error) {
	start := time.Now()
	defer func() {
		logger.RecordTiming("fetch.duration", time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return league.RawTables{}, fmt.Errorf("%w: creating request: %w", ErrFetch, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return league.RawTables{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return league.RawTables{}, fmt.Errorf("%w: unexpected status code: %d", ErrFetch, resp.StatusCode)
	}

	// one byte past the limit tells a full page from a cut-off one
	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSize+1))
	if err != nil {
		return league.RawTables{}, fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}
	if int64(len(data)) > s.maxSize {
		return league.RawTables{}, fmt.Errorf("%w: page larger than %d bytes", ErrFetch, s.maxSize)
	}

	logger.Debug("league page downloaded", logger.Fields{
		"url":         s.url,
		"status":      resp.StatusCode,
		"bytes":       len(data),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return ParseTables(bytes.NewReader(data))
}

// ParseTables extracts the schedule (table 1) and standings (table 2) from a
// results page. A page with fewer tables yields ErrSchema.
func ParseTables(r io.Reader) (league.RawTables, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return league.RawTables{}, errors.Wrapf(ErrSchema, "parsing HTML: %v", err)
	}

	tables := doc.Find("table")
	if tables.Length() <= standingsTable {
		return league.RawTables{}, errors.Wrapf(ErrSchema, "found %d tables, need table index %d", tables.Length(), standingsTable)
	}

	return league.RawTables{
		Schedule:  parseSchedule(tables.Eq(scheduleTable)),
		Standings: parseStandings(tables.Eq(standingsTable)),
	}, nil
}

// parseSchedule reads the seven positional cells of each fixture row. Cells
// the row does not have read as "".
func parseSchedule(table *goquery.Selection) []league.RawGameRow {
	rows := make([]league.RawGameRow, 0)

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i < scheduleHeaderRows {
			return
		}

		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}

		protocol, _ := cells.Eq(5).Find("a[href]").First().Attr("href")

		rows = append(rows, league.RawGameRow{
			Number:      cellText(cells, 0),
			DateTime:    cellText(cells, 1),
			Home:        cellText(cells, 2),
			Away:        cellText(cells, 3),
			Location:    cellText(cells, 4),
			Score:       cellText(cells, 5),
			QuarterText: cellText(cells, 6),
			ProtocolURL: protocol,
		})
	})

	return rows
}

// parseStandings drops footer and spacer rows (fewer than nine cells) and the
// draws column.
func parseStandings(table *goquery.Selection) []league.RawStandingRow {
	rows := make([]league.RawStandingRow, 0)

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i < standingsHeaderRows {
			return
		}

		cells := tr.Find("td")
		if cells.Length() < minStandingCells {
			return
		}

		rows = append(rows, league.RawStandingRow{
			Rank:           cellText(cells, 0),
			Team:           cellText(cells, 1),
			Games:          cellText(cells, 2),
			Wins:           cellText(cells, 3),
			Losses:         cellText(cells, 5),
			Goals:          cellText(cells, 6),
			GoalDifference: cellText(cells, 7),
			Points:         cellText(cells, 8),
		})
	})

	return rows
}

func cellText(cells *goquery.Selection, i int) string {
	if i >= cells.Length() {
		return ""
	}
	return cells.Eq(i).Text()
}
