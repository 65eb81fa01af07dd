// Package cli implements the command-line interface for wpanalysis.
//
// The cli package provides the Cobra-based CLI with commands to print the
// schedule, the league table, the derived team records and a single team's
// view (text or JSON, with sorting), to export a team's fixtures as iCalendar,
// and to serve the dashboard. It coordinates the config, scraper, snapshot,
// notifier and web packages.
package cli
