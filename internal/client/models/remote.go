package models

// RemoteImage is an element of the "images" array of a remote entry.
type RemoteImage struct {
	URL string `json:"url"`
}

// RemoteEntry is a diary entry as returned by GET /diary and GET /diary/{id}.
type RemoteEntry struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Text         string        `json:"text"`
	Images       []RemoteImage `json:"images"`
	LocationName *string       `json:"locationName"`
	// DateTime is an ISO-8601 UTC timestamp, e.g. "2025-01-14T21:34:54.393Z".
	DateTime string `json:"dateTime"`
}

// CreateEntryRequest is the body of POST /diary.
type CreateEntryRequest struct {
	Title        string  `json:"title"`
	Text         string  `json:"text"`
	LocationName *string `json:"locationName"`
	// Images holds Base64-encoded image payloads, in entry order.
	Images   []string `json:"images"`
	DateTime string   `json:"dateTime"`
}

// CreatedResponse is the body returned by POST /diary.
type CreatedResponse struct {
	ID string `json:"id"`
}
