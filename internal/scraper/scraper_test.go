package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/league.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return data
}

func TestParseTables(t *testing.T) {
	tables, err := ParseTables(strings.NewReader(string(loadFixture(t))))
	if err != nil {
		t.Fatalf("ParseTables failed: %v", err)
	}

	if len(tables.Schedule) != 4 {
		t.Fatalf("expected 4 schedule rows, got %d", len(tables.Schedule))
	}
	if len(tables.Standings) != 3 {
		t.Fatalf("expected 3 standings rows, got %d", len(tables.Standings))
	}

	first := tables.Schedule[0]
	if strings.TrimSpace(first.Number) != "1001" {
		t.Errorf("Number = %q, want 1001", first.Number)
	}
	if !strings.Contains(first.DateTime, "16:00 Uhr") {
		t.Errorf("DateTime = %q, should contain kickoff time", first.DateTime)
	}
	if first.Home != "SV Würzburg 05" || first.Away != "TV Aschaffenburg" {
		t.Errorf("teams = %q vs %q", first.Home, first.Away)
	}
	if first.Score != "11:6" {
		t.Errorf("Score = %q, want 11:6", first.Score)
	}
	if first.QuarterText != "(3:2, 4:1, 2:3, 2:0)" {
		t.Errorf("QuarterText = %q", first.QuarterText)
	}
	if first.ProtocolURL != "/Modules/WB/Protocol.aspx?GameID=1001" {
		t.Errorf("ProtocolURL = %q", first.ProtocolURL)
	}

	open := tables.Schedule[3]
	if open.Score != "-" || open.ProtocolURL != "" {
		t.Errorf("open fixture: score=%q protocol=%q", open.Score, open.ProtocolURL)
	}

	top := tables.Standings[0]
	if top.Rank != "1." || top.Team != "SSV Schweinfurt" {
		t.Errorf("standings[0] = %q %q", top.Rank, top.Team)
	}
	// the draws column (index 4) is skipped: losses come from index 5
	if top.Wins != "2" || top.Losses != "0" || top.Goals != "18:16" || top.GoalDifference != "+2" || top.Points != "5" {
		t.Errorf("standings[0] columns = %+v", top)
	}

	for _, row := range tables.Standings {
		if row.Team == "SG Mainfranken" {
			t.Error("row with fewer than nine cells should be dropped")
		}
	}
}

func TestParseTables_Schema(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no tables", `<html><body><p>Wartungsarbeiten</p></body></html>`},
		{"one table", `<table><tr><td>x</td></tr></table>`},
		{"two tables", `<table></table><table><tr><td>x</td></tr></table>`},
		{"empty page", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTables(strings.NewReader(tt.html))
			if !errors.Is(err, ErrSchema) {
				t.Errorf("ParseTables() error = %v, want ErrSchema", err)
			}
		})
	}
}

func TestParseTables_ShortScheduleRow(t *testing.T) {
	html := `
		<table></table>
		<table>
			<tr><th>h1</th></tr>
			<tr><th>h2</th></tr>
			<tr><td>7</td><td>1.2.25, 10:00 Uhr</td><td>A</td></tr>
			<tr></tr>
		</table>
		<table><tr><th>h</th></tr></table>
	`

	tables, err := ParseTables(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseTables() error: %v", err)
	}
	if len(tables.Schedule) != 1 {
		t.Fatalf("expected 1 schedule row, got %d", len(tables.Schedule))
	}

	row := tables.Schedule[0]
	if row.Home != "A" || row.Away != "" || row.Score != "" || row.QuarterText != "" {
		t.Errorf("short row = %+v, missing cells should read as empty", row)
	}
	if len(tables.Standings) != 0 {
		t.Errorf("expected no standings rows, got %d", len(tables.Standings))
	}
}

func TestFetch(t *testing.T) {
	fixture := loadFixture(t)

	tests := []struct {
		name        string
		body        []byte
		statusCode  int
		wantErr     error
		wantFixture bool
	}{
		{
			name:        "successful fetch",
			body:        fixture,
			statusCode:  http.StatusOK,
			wantFixture: true,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusServiceUnavailable,
			wantErr:    ErrFetch,
		},
		{
			name:       "layout changed",
			body:       []byte(`<html><body><table></table></body></html>`),
			statusCode: http.StatusOK,
			wantErr:    ErrSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "wpanalysis") {
					t.Errorf("User-Agent = %q, should contain 'wpanalysis'", userAgent)
				}
				w.WriteHeader(tt.statusCode)
				w.Write(tt.body)
			}))
			defer server.Close()

			s := New(server.URL, time.Second)
			tables, err := s.Fetch(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Fetch() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if tt.wantFixture && len(tables.Schedule) != 4 {
				t.Errorf("Fetch() returned %d schedule rows, want 4", len(tables.Schedule))
			}
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	s := New(server.URL, 50*time.Millisecond)
	if _, err := s.Fetch(context.Background()); !errors.Is(err, ErrFetch) {
		t.Errorf("Fetch() error = %v, want ErrFetch", err)
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	fixture := loadFixture(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixture)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(server.URL, time.Second).Fetch(ctx)
	if !errors.Is(err, ErrFetch) || !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want ErrFetch wrapping context.Canceled", err)
	}
}

func TestFetch_PageSizeLimit(t *testing.T) {
	fixture := loadFixture(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixture)
	}))
	defer server.Close()

	s := New(server.URL, time.Second)

	s.maxSize = int64(len(fixture))
	if _, err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("page of exactly the limit: Fetch() error = %v", err)
	}

	s.maxSize = int64(len(fixture)) - 1
	_, err := s.Fetch(context.Background())
	if !errors.Is(err, ErrFetch) || !strings.Contains(err.Error(), "larger than") {
		t.Errorf("oversized page: Fetch() error = %v, want ErrFetch", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New("", 0)
	if s.URL() != DefaultLeagueURL {
		t.Errorf("URL() = %q, want default", s.URL())
	}
	if s.client.Timeout != Timeout {
		t.Errorf("timeout = %v, want %v", s.client.Timeout, Timeout)
	}
	if s.maxSize != maxPageSize {
		t.Errorf("maxSize = %d, want %d", s.maxSize, maxPageSize)
	}
}
