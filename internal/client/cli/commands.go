package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/common"
)

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}

func (a *App) Trips(ctx context.Context) error {
	trips := snapshot(ctx, a.svc.Trips.Trips)
	if len(trips) == 0 {
		fmt.Fprintln(a.out, "No trips yet.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tCREATED")
	for _, t := range trips {
		fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Name, formatMillis(t.CreatedAt))
	}
	return w.Flush()
}

func (a *App) AddTrip(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("addtrip <name>")
	}
	t, err := a.svc.Trips.Add(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Trip %d created.\n", t.ID)
	return nil
}

func (a *App) RenameTrip(ctx context.Context, args []string) error {
	const usage = "renametrip <id> <name>"
	id, err := parseID(args, 0, usage)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return usageError(usage)
	}
	return a.svc.Trips.Update(ctx, &models.Trip{ID: id, Name: strings.Join(args[1:], " ")})
}

func (a *App) DeleteTrip(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "deltrip <id>")
	if err != nil {
		return err
	}
	if err := a.svc.Trips.DeleteWithEntries(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Trip %d deleted.\n", id)
	return nil
}

func (a *App) Entries(ctx context.Context, args []string) error {
	tripID, err := parseID(args, 0, "entries <trip id>")
	if err != nil {
		return err
	}

	entries := snapshot(ctx, func(ctx context.Context) <-chan []models.Entry {
		return a.svc.Entries.Entries(ctx, tripID)
	})
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tDATE\tSTATUS")
	for _, e := range entries {
		status := "draft"
		if e.IsPublished {
			status = "published"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Title, e.LocationOrEmpty(), formatMillis(e.Timestamp), status)
	}
	return w.Flush()
}

func (a *App) AddEntry(ctx context.Context, args []string) error {
	tripID, err := parseID(args, 0, "addentry <trip id>")
	if err != nil {
		return err
	}

	title, err := a.ask("Title")
	if err != nil {
		return err
	}
	text, err := a.askMultiline("Text")
	if err != nil {
		return err
	}
	location, err := a.ask("Location (optional)")
	if err != nil {
		return err
	}

	id, err := a.svc.Entries.Add(ctx, tripID, title, text, models.OptionalString(location))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Entry %d created.\n", id)
	return nil
}

func (a *App) EditEntry(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "editentry <id>")
	if err != nil {
		return err
	}

	e, err := a.svc.Entries.Get(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("entry %d: %w", id, common.ErrNotFound)
	}
	if e.IsPublished {
		return fmt.Errorf("entry %d is published and can no longer be edited", id)
	}

	title, err := a.ask(fmt.Sprintf("Title [%s]", e.Title))
	if err != nil {
		return err
	}
	text, err := a.askMultiline("Text (empty keeps the current text)")
	if err != nil {
		return err
	}
	location, err := a.ask(fmt.Sprintf("Location [%s] ('-' clears)", e.LocationOrEmpty()))
	if err != nil {
		return err
	}

	if title != "" {
		e.Title = title
	}
	if text != "" {
		e.Text = text
	}
	switch location {
	case "":
	case "-":
		e.Location = nil
	default:
		e.Location = models.OptionalString(location)
	}

	if err := a.svc.Entries.Update(ctx, e); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Entry %d updated.\n", id)
	return nil
}

func (a *App) DeleteEntry(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "delentry <id>")
	if err != nil {
		return err
	}
	if err := a.svc.Entries.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Entry %d deleted.\n", id)
	return nil
}

func (a *App) Images(ctx context.Context, args []string) error {
	entryID, err := parseID(args, 0, "images <entry id>")
	if err != nil {
		return err
	}

	images := snapshot(ctx, func(ctx context.Context) <-chan []models.Image {
		return a.svc.Images.Images(ctx, entryID)
	})
	if len(images) == 0 {
		fmt.Fprintln(a.out, "No images.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tURI")
	for _, img := range images {
		fmt.Fprintf(w, "%d\t%s\n", img.ID, img.ImageURI)
	}
	return w.Flush()
}

func (a *App) AddImage(ctx context.Context, args []string) error {
	const usage = "addimage <entry id> <uri>"
	entryID, err := parseID(args, 0, usage)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return usageError(usage)
	}

	id, err := a.svc.Images.Add(ctx, entryID, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Image %d added.\n", id)
	return nil
}

func (a *App) DeleteImage(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "delimage <id>")
	if err != nil {
		return err
	}
	return a.svc.Images.Delete(ctx, id)
}

func (a *App) Publish(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "publish <entry id>")
	if err != nil {
		return err
	}

	e, err := a.svc.Entries.Get(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("entry %d: %w", id, common.ErrNotFound)
	}
	if e.IsPublished {
		fmt.Fprintf(a.out, "Entry %q is already published.\n", e.Title)
		return nil
	}

	report, err := a.svc.Entries.Publish(ctx, id)
	if err != nil {
		a.log.Debug(ctx, "publish failed", "entry_id", id, "error", err)
		fmt.Fprintf(a.out, "Failed to publish entry %q\n", e.Title)
		return nil
	}

	fmt.Fprintf(a.out, "Published entry %q (remote id %s).\n", e.Title, report.RemoteID)
	if report.Partial() {
		fmt.Fprintf(a.out, "Warning: %d image(s) could not be read and were left out.\n", len(report.Dropped))
	}
	return nil
}

func (a *App) Remote(ctx context.Context) error {
	entries := a.svc.Remote.List(ctx)
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No remote entries.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tDATE\tIMAGES")
	for _, e := range entries {
		loc := ""
		if e.LocationName != nil {
			loc = *e.LocationName
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", e.ID, e.Title, loc, e.DateTime, len(e.Images))
	}
	return w.Flush()
}

func (a *App) RemoteGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("remoteget <remote id>")
	}

	e, err := a.svc.Remote.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintf(a.out, "Remote entry %s not found.\n", args[0])
			return nil
		}
		return err
	}

	fmt.Fprintf(a.out, "%s\n%s\n\n%s\n", e.Title, e.DateTime, e.Text)
	if e.LocationName != nil {
		fmt.Fprintf(a.out, "Location: %s\n", *e.LocationName)
	}
	for _, img := range e.Images {
		fmt.Fprintf(a.out, "Image: %s\n", img.URL)
	}
	return nil
}
