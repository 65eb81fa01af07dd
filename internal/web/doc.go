// Package web serves the league dashboard and its JSON API.
//
// Handlers read the snapshot published in a snapshot.Store and never block on
// the league page, except POST /api/refresh which triggers a fetch. Connected
// dashboards are told about new snapshots over a websocket at /ws.
package web
