package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/client/store"
	"github.com/dmitrijs2005/travelbook/internal/client/watch"
	"github.com/dmitrijs2005/travelbook/internal/common"
)

// ImageService manages the image references of an entry.
type ImageService interface {
	Images(ctx context.Context, entryID int64) <-chan []models.Image
	// Add attaches uri to an unpublished entry.
	Add(ctx context.Context, entryID int64, uri string) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type imageService struct {
	store *store.Store
}

func NewImageService(s *store.Store) ImageService {
	return &imageService{store: s}
}

func (s *imageService) Images(ctx context.Context, entryID int64) <-chan []models.Image {
	return s.store.ListImagesByEntry(ctx, entryID)
}

func (s *imageService) Add(ctx context.Context, entryID int64, uri string) (int64, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return 0, fmt.Errorf("image uri is empty: %w", common.ErrInvalidArgument)
	}

	var id int64
	err := s.store.InTx(context.WithoutCancel(ctx), func(ctx context.Context, r store.Repos) error {
		e, err := r.Entries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if e == nil {
			return fmt.Errorf("entry %d: %w", entryID, common.ErrNotFound)
		}
		if e.IsPublished {
			return fmt.Errorf("entry %d: %w", entryID, common.ErrEntryPublished)
		}
		id, err = r.Images.Insert(ctx, &models.Image{EntryID: entryID, ImageURI: uri})
		return err
	}, watch.Images)
	if err != nil {
		return 0, fmt.Errorf("add image: %w", err)
	}
	return id, nil
}

func (s *imageService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteImage(context.WithoutCancel(ctx), id); err != nil {
		return fmt.Errorf("delete image %d: %w", id, err)
	}
	return nil
}
