package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/naresh-2026/warehouseProducts/internal/apperr"
	"github.com/naresh-2026/warehouseProducts/internal/cache"
	"github.com/naresh-2026/warehouseProducts/internal/models"
	"github.com/naresh-2026/warehouseProducts/internal/store"
	"github.com/naresh-2026/warehouseProducts/internal/websocket"
)

// AdjustResult reports the outcome of a quantity adjustment: either the
// record survived with a new quantity, or it was exhausted and removed.
type AdjustResult struct {
	Deleted bool
	// Product is the updated record when Deleted is false.
	Product models.Product
	// ID is the removed record's ID when Deleted is true.
	ID string
}

// ProductServiceProvider defines the interface for inventory operations.
type ProductServiceProvider interface {
	AddItem(ctx context.Context, owner, name string, quantity int, category string, isPublic bool) (models.Product, error)
	AdjustQuantity(ctx context.Context, owner, name, category string, delta int) (AdjustResult, error)
	ListRecent(ctx context.Context, owner string) ([]models.Product, error)
	ListAll(ctx context.Context, owner string) ([]models.Product, error)
}

// ProductService is the inventory ledger. It owns the quantity-merge and
// deletion-on-exhaustion rules; persistence itself lives in the store.
type ProductService struct {
	store       store.ProductStore
	activity    ActivityServiceProvider
	hub         *websocket.Hub
	cache       *cache.Cache
	recentLimit int
}

// NewProductService creates a new ProductService. The hub and cache may be
// nil; activity may be nil in tests.
func NewProductService(st store.ProductStore, activity ActivityServiceProvider, hub *websocket.Hub, c *cache.Cache, recentLimit int) *ProductService {
	if recentLimit < 1 {
		recentLimit = 5
	}
	return &ProductService{
		store:       st,
		activity:    activity,
		hub:         hub,
		cache:       c,
		recentLimit: recentLimit,
	}
}

// AddItem inserts a new inventory record. Adding never merges: submitting
// the same name and category twice creates two distinct records.
func (s *ProductService) AddItem(ctx context.Context, owner, name string, quantity int, category string, isPublic bool) (models.Product, error) {
	if owner == "" || name == "" || category == "" {
		return models.Product{}, apperr.Validation("username, product name and item type are required")
	}
	if quantity < 1 {
		return models.Product{}, apperr.Validation("quantity must be at least 1")
	}

	product, err := s.store.Insert(ctx, models.Product{
		Username: owner,
		Name:     name,
		Category: category,
		Quantity: quantity,
		IsPublic: isPublic,
	})
	if err != nil {
		return models.Product{}, err
	}

	s.notify(ctx, "item.add", fmt.Sprintf("Added %d x '%s' (%s).", quantity, name, category), product)
	return product, nil
}

// AdjustQuantity merges a signed delta into the record matching the natural
// key. A resulting quantity above zero is persisted; zero or below deletes
// the record entirely. The lookup and write are not isolated against a
// concurrent adjustment of the same key: the last write wins.
func (s *ProductService) AdjustQuantity(ctx context.Context, owner, name, category string, delta int) (AdjustResult, error) {
	if owner == "" || name == "" || category == "" {
		return AdjustResult{}, apperr.Validation("username, product name and item type are required")
	}
	if delta == 0 {
		return AdjustResult{}, apperr.Validation("quantity to update must be non-zero")
	}

	existing, err := s.store.FindOne(ctx, owner, name, category)
	if err != nil {
		return AdjustResult{}, err
	}

	newQuantity := existing.Quantity + delta
	if newQuantity > 0 {
		if err := s.store.Update(ctx, existing.ID, store.UpdateFields{Quantity: &newQuantity}); err != nil {
			return AdjustResult{}, err
		}
		existing.Quantity = newQuantity
		s.notify(ctx, "item.update", fmt.Sprintf("Quantity of '%s' (%s) changed by %+d to %d.", name, category, delta, newQuantity), existing)
		return AdjustResult{Product: existing}, nil
	}

	if err := s.store.Remove(ctx, existing.ID); err != nil {
		return AdjustResult{}, err
	}
	s.notify(ctx, "item.delete", fmt.Sprintf("'%s' (%s) exhausted and removed.", name, category), existing)
	return AdjustResult{Deleted: true, ID: existing.ID}, nil
}

// ListRecent returns the owner's newest records, capped at the configured
// window.
func (s *ProductService) ListRecent(ctx context.Context, owner string) ([]models.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRecent(ctx, owner)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Debug().Err(err).Str("owner", owner).Msg("Recent-listing cache lookup failed")
		}
	}

	products, err := s.store.ListByOwner(ctx, owner, s.recentLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetRecent(ctx, owner, products); err != nil {
			log.Debug().Err(err).Str("owner", owner).Msg("Recent-listing cache store failed")
		}
	}
	return products, nil
}

// ListAll returns the owner's full inventory, newest first.
func (s *ProductService) ListAll(ctx context.Context, owner string) ([]models.Product, error) {
	return s.store.ListByOwner(ctx, owner, 0)
}

// notify fans a mutation out to the activity log, the websocket hub and the
// cache invalidation. All of it is best-effort: a failed side effect never
// fails the mutation that triggered it.
func (s *ProductService) notify(ctx context.Context, eventType, message string, product models.Product) {
	owner := product.Username

	if s.activity != nil {
		if err := s.activity.Record(eventType, "info", message, &owner); err != nil {
			log.Warn().Err(err).Str("type", eventType).Msg("Failed to record activity")
		}
	}

	if s.hub != nil {
		s.hub.BroadcastTo(owner, websocket.NewInventoryEventMessage(map[string]any{
			"type":    eventType,
			"message": message,
			"product": product,
		}))
	}

	if s.cache != nil {
		if err := s.cache.InvalidateOwner(ctx, owner); err != nil {
			log.Debug().Err(err).Str("owner", owner).Msg("Recent-listing cache invalidation failed")
		}
	}
}
