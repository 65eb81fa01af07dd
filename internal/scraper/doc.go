// Package scraper provides HTTP fetching and HTML table extraction for a
// water polo league results page.
//
// The page carries its data in plain <table> elements without stable ids, so
// tables are located by position: the second table is the schedule (two
// header rows, seven cells per fixture) and the third is the standings (one
// header row, nine cells per team including a draws column that is dropped).
// Cell text is returned untouched; cleaning and parsing happen in package
// league.
package scraper
