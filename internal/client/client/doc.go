// Package client talks to the remote diary service.
//
// # Overview
//
// The package provides:
//  1. The Client interface: ListEntries, GetEntry and CreateEntry.
//  2. HTTPClient, a JSON-over-HTTP implementation against a configurable
//     base URL. It holds one *http.Client whose connection pool is shared by
//     all calls; HTTPClient itself carries no mutable state.
//
// # Error Handling
//
// Every failure matches ErrSyncFailed with errors.Is, and the wrapped text
// carries the detail (status code, decode error) for logging. A 404 on
// GetEntry additionally matches common.ErrNotFound. Nothing is retried.
//
// # Wire format
//
//	GET  /diary       -> [{id, title, text, images:[{url}], locationName, dateTime}]
//	GET  /diary/{id}  -> {id, title, text, images:[{url}], locationName, dateTime}
//	POST /diary       <- {title, text, locationName, images:[base64], dateTime}
//	                  -> {id}
//
// Unknown response fields are ignored. id, title, text and dateTime are
// required; images may be missing and locationName may be null.
package client
