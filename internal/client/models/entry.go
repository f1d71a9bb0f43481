// Package models defines the local diary records (trips, entries, images,
// app state) and the wire types exchanged with the remote diary service.
package models

import "strings"

// Trip is the top-level journey container. It owns its entries.
type Trip struct {
	// ID is assigned by the store on insert.
	ID   int64
	Name string
	// CreatedAt is Unix epoch milliseconds.
	CreatedAt int64
}

// Entry is one diary entry of a trip.
//
// Title, Text and Location may change only while IsPublished is false.
// IsPublished goes from false to true once, after a successful publish.
type Entry struct {
	ID       int64
	TripID   int64
	Title    string
	Text     string
	Location *string
	// Timestamp is the creation instant in Unix epoch milliseconds. It is set
	// once and never changed.
	Timestamp   int64
	IsPublished bool
}

// LocationOrEmpty returns the location or "" when it is unset.
func (e Entry) LocationOrEmpty() string {
	if e.Location == nil {
		return ""
	}
	return *e.Location
}

// Image is a reference to image bytes held outside the store, such as a
// file path or an s3:// URI.
type Image struct {
	ID       int64
	EntryID  int64
	ImageURI string
}

// AppStateID is the fixed primary key of the single app_state row.
const AppStateID int64 = 0

// AppState records whether onboarding has been shown.
type AppState struct {
	ID            int64
	IsFirstLaunch bool
}

// OptionalString returns nil for blank input and a pointer to the trimmed
// value otherwise.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
