package models

import "encoding/json"

// PullResponse is one page of the server's incremental change feed.
//
// Changes is keyed by the plural resource name (see [ResourcePlural]); each
// value is the list of changed entities of that resource, in server order.
// Entity payloads are opaque here; the engine validates and extracts
// identifiers through the validators package before caching.
type PullResponse struct {
	// Cursor echoes the cursor the page was requested with.
	Cursor int64 `json:"cursor"`

	// NextCursor is the position to request the following page from. Always
	// greater than or equal to Cursor.
	NextCursor int64 `json:"next_cursor"`

	// HasMore signals that more changes exist beyond this page.
	HasMore bool `json:"has_more"`

	Changes map[string][]json.RawMessage `json:"changes"`
}
