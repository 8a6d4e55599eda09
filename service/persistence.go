package service

import (
	"context"
	"fmt"

	"burger-house-api/events"
	"burger-house-api/models"

	"github.com/goccy/go-json"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// Keys under which each collection is stored
const (
	KeyUsers     = "burger_house_users"
	KeyCustomers = "burger_house_customers"
	KeyOrders    = "burger_house_orders"
	KeyReviews   = "burger_house_reviews"
	KeyProducts  = "burger_house_products"
)

// Load replaces the in-memory state with what the store holds. An empty
// store is seeded with the default accounts, sample history and menu; a store
// with users but no products gets the menu only.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := loadCollection(ctx, s, KeyUsers, func(u models.User) int { return u.ID })
	if err != nil {
		return err
	}
	customers, err := loadCollection(ctx, s, KeyCustomers, func(c models.Customer) int { return c.ID })
	if err != nil {
		return err
	}
	orders, err := loadCollection(ctx, s, KeyOrders, func(o models.Order) int { return o.ID })
	if err != nil {
		return err
	}
	if orders, err = checkLineItemIDs(s, orders); err != nil {
		return err
	}
	reviews, err := loadCollection(ctx, s, KeyReviews, func(r models.Review) int { return r.ID })
	if err != nil {
		return err
	}
	products, err := loadCollection(ctx, s, KeyProducts, func(p models.MenuProduct) int { return p.ID })
	if err != nil {
		return err
	}

	s.users, s.customers, s.orders, s.reviews, s.products = users, customers, orders, reviews, products
	s.recomputeCounters()

	switch {
	case len(s.users) == 0:
		s.log.Info("store is empty, seeding sample data")
		if err := s.seedAll(); err != nil {
			return err
		}
	case len(s.products) == 0:
		s.log.Info("store has no menu, seeding catalog")
		s.seedProducts()
	default:
		s.log.Info("store loaded",
			zap.Int("users", len(s.users)),
			zap.Int("customers", len(s.customers)),
			zap.Int("orders", len(s.orders)),
			zap.Int("reviews", len(s.reviews)),
			zap.Int("products", len(s.products)))
		return nil
	}
	return s.save(ctx)
}

// loadCollection reads one key. An absent or unparsable blob is an empty
// collection; a repeated id is corruption.
func loadCollection[T any](ctx context.Context, s *Service, key string, idOf func(T) int) ([]T, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, errors.Annotatef(err, "loading %s", key)
	}
	if !found {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn("unreadable collection, treating as empty", zap.String("key", key), zap.Error(err))
		return nil, nil
	}

	seen := make(map[int]bool, len(items))
	for _, item := range items {
		id := idOf(item)
		if seen[id] {
			return handleCorrupt[T](s, key, errors.Errorf("duplicate id %d", id))
		}
		seen[id] = true
	}
	return items, nil
}

// checkLineItemIDs applies the duplicate id rule to line items, whose ids
// are unique across every order.
func checkLineItemIDs(s *Service, orders []models.Order) ([]models.Order, error) {
	seen := make(map[int]bool)
	for _, o := range orders {
		for _, li := range o.Items {
			if seen[li.ID] {
				return handleCorrupt[models.Order](s, KeyOrders, errors.Errorf("duplicate line item id %d in order %d", li.ID, o.ID))
			}
			seen[li.ID] = true
		}
	}
	return orders, nil
}

func handleCorrupt[T any](s *Service, key string, cause error) ([]T, error) {
	if s.resetOnCorrupt {
		s.log.Warn("discarding collection with duplicate ids", zap.String("key", key), zap.Error(cause))
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, key, cause)
}

func maxID[T any](items []T, idOf func(T) int) int {
	highest := 0
	for _, item := range items {
		if id := idOf(item); id > highest {
			highest = id
		}
	}
	return highest
}

// recomputeCounters derives every id counter from the highest id present,
// so a reload never hands out an id twice.
func (s *Service) recomputeCounters() {
	s.nextUserID = maxID(s.users, func(u models.User) int { return u.ID }) + 1
	s.nextCustomerID = maxID(s.customers, func(c models.Customer) int { return c.ID }) + 1
	s.nextOrderID = maxID(s.orders, func(o models.Order) int { return o.ID }) + 1
	s.nextReviewID = maxID(s.reviews, func(r models.Review) int { return r.ID }) + 1
	s.nextProductID = maxID(s.products, func(p models.MenuProduct) int { return p.ID }) + 1

	highestItem := 0
	for _, o := range s.orders {
		if id := maxID(o.Items, func(li models.LineItem) int { return li.ID }); id > highestItem {
			highestItem = id
		}
	}
	s.nextLineItemID = highestItem + 1
}

// save writes all five collections. Everything is marshalled before the
// first write so an encoding failure leaves the store untouched.
func (s *Service) save(ctx context.Context) error {
	blobs := []struct {
		key   string
		value interface{}
	}{
		{KeyUsers, nonNil(s.users)},
		{KeyCustomers, nonNil(s.customers)},
		{KeyOrders, nonNil(s.orders)},
		{KeyReviews, nonNil(s.reviews)},
		{KeyProducts, nonNil(s.products)},
	}

	encoded := make([][]byte, len(blobs))
	for i, b := range blobs {
		raw, err := json.Marshal(b.value)
		if err != nil {
			return errors.Annotatef(err, "encoding %s", b.key)
		}
		encoded[i] = raw
	}

	for i, b := range blobs {
		if err := s.kv.Put(ctx, b.key, encoded[i]); err != nil {
			s.log.Error("save failed", zap.String("key", b.key), zap.Error(err))
			return errors.Annotatef(err, "saving %s", b.key)
		}
	}
	return nil
}

// nonNil makes empty collections encode as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// Reset wipes every collection and seeds the sample data again
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users, s.customers, s.orders, s.reviews, s.products = nil, nil, nil, nil, nil
	s.recomputeCounters()
	if err := s.seedAll(); err != nil {
		return err
	}
	s.log.Warn("store reset to seed data")
	if err := s.save(ctx); err != nil {
		return err
	}
	s.events.Publish(events.TopicProductsChanged, 0)
	return nil
}
