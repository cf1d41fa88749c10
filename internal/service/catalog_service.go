package service

import (
	"context"
	"fmt"

	"huonganh/internal/database"
	"huonganh/internal/domain"
	"huonganh/internal/models"

	"github.com/rs/zerolog"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// CatalogService manages the ordered catalog tables. Reordering is an
// adjacent swap followed by a full dense rewrite of sort_order 0..N-1.
type CatalogService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewCatalogService(store domain.Store, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// swapIndices computes the adjacent swap for an ordered list of n records
// where the target record sits at index idx. The second return is false for
// boundary no-ops (up at index 0, down at the last index) and unknown ids.
func swapIndices(idx, n int, direction string) (int, bool) {
	if idx < 0 {
		return 0, false
	}
	switch direction {
	case DirectionUp:
		if idx == 0 {
			return 0, false
		}
		return idx - 1, true
	case DirectionDown:
		if idx == n-1 {
			return 0, false
		}
		return idx + 1, true
	default:
		return 0, false
	}
}

// denseOrders rewrites positions for the whole id list after a swap.
func denseOrders(ids []int64) []database.OrderUpdate {
	updates := make([]database.OrderUpdate, len(ids))
	for i, id := range ids {
		updates[i] = database.OrderUpdate{ID: id, SortOrder: i}
	}
	return updates
}

func (s *CatalogService) ReorderService(ctx context.Context, id int64, direction string) error {
	services, err := s.store.ListServices(ctx)
	if err != nil {
		return err
	}

	ids := make([]int64, len(services))
	idx := -1
	for i, svc := range services {
		ids[i] = svc.ID
		if svc.ID == id {
			idx = i
		}
	}
	if idx == -1 {
		return database.ErrNotFound
	}

	target, ok := swapIndices(idx, len(ids), direction)
	if !ok {
		return nil
	}
	ids[idx], ids[target] = ids[target], ids[idx]

	return s.store.ReorderServices(ctx, denseOrders(ids))
}

func (s *CatalogService) ReorderGalleryImage(ctx context.Context, id int64, direction string) error {
	images, err := s.store.ListGalleryImages(ctx)
	if err != nil {
		return err
	}

	ids := make([]int64, len(images))
	idx := -1
	for i, img := range images {
		ids[i] = img.ID
		if img.ID == id {
			idx = i
		}
	}
	if idx == -1 {
		return database.ErrNotFound
	}

	target, ok := swapIndices(idx, len(ids), direction)
	if !ok {
		return nil
	}
	ids[idx], ids[target] = ids[target], ids[idx]

	return s.store.ReorderGalleryImages(ctx, denseOrders(ids))
}

func (s *CatalogService) ReorderAboutSection(ctx context.Context, id int64, direction string) error {
	sections, err := s.store.ListAboutSections(ctx)
	if err != nil {
		return err
	}

	ids := make([]int64, len(sections))
	idx := -1
	for i, sec := range sections {
		ids[i] = sec.ID
		if sec.ID == id {
			idx = i
		}
	}
	if idx == -1 {
		return database.ErrNotFound
	}

	target, ok := swapIndices(idx, len(ids), direction)
	if !ok {
		return nil
	}
	ids[idx], ids[target] = ids[target], ids[idx]

	return s.store.ReorderAboutSections(ctx, denseOrders(ids))
}

// SeedServices inserts catalog services from the config sidecar when the
// table is empty, preserving the file order.
func (s *CatalogService) SeedServices(ctx context.Context, seed []models.Service) error {
	existing, err := s.store.ListServices(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for i := range seed {
		svc := seed[i]
		if err := s.store.CreateService(ctx, &svc); err != nil {
			return fmt.Errorf("seed service %q: %w", svc.Title, err)
		}
	}
	s.logger.Info().Int("count", len(seed)).Msg("services catalog seeded")
	return nil
}

// ServiceTitles returns the fixed service list offered on the booking form.
func (s *CatalogService) ServiceTitles(ctx context.Context) ([]string, error) {
	services, err := s.store.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(services))
	for i, svc := range services {
		titles[i] = svc.Title
	}
	return titles, nil
}
