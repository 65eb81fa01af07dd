package league

import (
	"strconv"
	"time"
)

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func fmtIntPtr(p *int) string {
	if p == nil {
		return "nil"
	}
	return strconv.Itoa(*p)
}

// sampleSchedule is a small season: three teams, one shootout, one open
// fixture and one fixture without quarter data.
func sampleSchedule() []EnrichedGame {
	rows := []RawGameRow{
		{Number: "1", DateTime: "5.10.24, 16:00 Uhr", Home: "A", Away: "B", Score: "11:6", QuarterText: "3:2 4:1 2:3 2:0"},
		{Number: "2", DateTime: "6.10.24, 14:00 Uhr", Home: "C", Away: "A", Score: "10:9 n.EW", QuarterText: "2:2 2:2 2:2 2:2 2:1"},
		{Number: "3", DateTime: "9.10.24, 19:30 Uhr", Home: "B", Away: "C", Score: "7:8"},
		{Number: "4", DateTime: "12.10.24, 16:00 Uhr", Home: "B", Away: "A", Score: "-"},
	}
	return EnrichSchedule(rows, time.UTC)
}
