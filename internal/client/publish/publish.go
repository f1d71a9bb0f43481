// Package publish turns a local entry and its image references into a
// remote create request and sends it.
package publish

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/travelbook/internal/client/client"
	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/client/resolver"
	"github.com/dmitrijs2005/travelbook/internal/logging"
)

const (
	// TimestampLayout is ISO-8601 with milliseconds and a literal Z.
	TimestampLayout = "2006-01-02T15:04:05.000Z"

	UntitledTitle = "Untitled"
	EmptyText     = "No text"
)

// FormatTimestamp renders epoch milliseconds in UTC, e.g.
// 1736890494393 -> "2025-01-14T21:34:54.393Z".
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(TimestampLayout)
}

// BuildRequest assembles the create request for e. Blank titles and texts
// are replaced with placeholders; the location is passed through as is.
func BuildRequest(e models.Entry, encodedImages []string) models.CreateEntryRequest {
	title := e.Title
	if strings.TrimSpace(title) == "" {
		title = UntitledTitle
	}
	text := e.Text
	if strings.TrimSpace(text) == "" {
		text = EmptyText
	}
	images := encodedImages
	if images == nil {
		images = []string{}
	}

	return models.CreateEntryRequest{
		Title:        title,
		Text:         text,
		LocationName: e.Location,
		Images:       images,
		DateTime:     FormatTimestamp(e.Timestamp),
	}
}

// Encoder reads image bytes and Base64-encodes them.
type Encoder struct {
	resolver resolver.Resolver
	log      logging.Logger
}

func NewEncoder(r resolver.Resolver, log logging.Logger) *Encoder {
	return &Encoder{resolver: r, log: log}
}

// Encode returns the payloads of the readable images, in order, and the
// images that could not be read. A read failure never fails the call.
func (e *Encoder) Encode(ctx context.Context, images []models.Image) (encoded []string, dropped []models.Image) {
	encoded = make([]string, 0, len(images))
	for _, img := range images {
		b, err := e.resolver.OpenBytes(ctx, img.ImageURI)
		if err != nil {
			e.log.Warn(ctx, "image dropped from publish",
				"entry_id", img.EntryID, "image_id", img.ID, "uri", img.ImageURI, "error", err)
			dropped = append(dropped, img)
			continue
		}
		encoded = append(encoded, base64.StdEncoding.EncodeToString(b))
	}
	return encoded, dropped
}

// Publisher sends entries to the remote diary.
type Publisher struct {
	remote client.Client
	log    logging.Logger
}

func NewPublisher(remote client.Client, log logging.Logger) *Publisher {
	return &Publisher{remote: remote, log: log}
}

// Publish creates e remotely with the given image payloads and returns the
// id the server assigned. It makes exactly one attempt.
func (p *Publisher) Publish(ctx context.Context, e models.Entry, encodedImages []string) (string, error) {
	req := BuildRequest(e, encodedImages)

	id, err := p.remote.CreateEntry(ctx, req)
	if err != nil {
		return "", fmt.Errorf("publish entry %d: %w", e.ID, err)
	}

	p.log.Info(ctx, "entry sent", "entry_id", e.ID, "remote_id", id, "images", len(req.Images))
	return id, nil
}
