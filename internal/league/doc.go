// Package league holds the water-polo league records and the pure functions
// that derive them from one another.
//
// Scraped rows (RawGameRow, RawStandingRow) are enriched into EnrichedGame and
// Standing values, split into one TeamGame view per team and reduced to
// TeamStats. Unreadable cells never abort the pipeline: the affected fields
// stay nil and the row is kept.
package league
