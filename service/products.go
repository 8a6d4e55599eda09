package service

import (
	"context"
	"time"

	"burger-house-api/events"
	"burger-house-api/models"

	"github.com/juju/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductInput carries every editable field of a menu product
type ProductInput struct {
	Name             string                 `json:"name" validate:"required"`
	ShortDescription string                 `json:"short_description"`
	LongDescription  string                 `json:"long_description"`
	Price            decimal.Decimal        `json:"price"`
	Category         models.ProductCategory `json:"category" validate:"required"`
	ImageRef         string                 `json:"image_ref"`
	Ingredients      []string               `json:"ingredients"`
	Allergens        []string               `json:"allergens"`
	Calories         int                    `json:"calories" validate:"min=0"`
	PrepTime         int                    `json:"prep_time" validate:"min=0"`
	Available        bool                   `json:"available"`
}

func (s *Service) validateProduct(in ProductInput) error {
	if err := s.validate.Struct(in); err != nil {
		return errors.NotValidf("product: %v", err)
	}
	if !in.Category.Valid() {
		return errors.NotValidf("category %q", in.Category)
	}
	if in.Price.IsNegative() {
		return errors.NotValidf("price %s", in.Price)
	}
	return nil
}

func (s *Service) Products() []models.MenuProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MenuProduct(nil), s.products...)
}

// AvailableProducts is the menu customers can order from
func (s *Service) AvailableProducts() []models.MenuProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.MenuProduct
	for _, p := range s.products {
		if p.Available {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) ProductsByCategory(category models.ProductCategory) []models.MenuProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.MenuProduct
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) ProductByID(id int) (models.MenuProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.productIndex(id)
	if i < 0 {
		return models.MenuProduct{}, errors.NotFoundf("product %d", id)
	}
	return s.products[i], nil
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (models.MenuProduct, error) {
	if err := s.validateProduct(in); err != nil {
		return models.MenuProduct{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.insertProduct(in)
	if err := s.save(ctx); err != nil {
		return models.MenuProduct{}, err
	}
	s.log.Info("product created", zap.Int("product_id", p.ID), zap.String("name", p.Name))
	s.events.Publish(events.TopicProductsChanged, p.ID)
	return p, nil
}

func (s *Service) insertProduct(in ProductInput) models.MenuProduct {
	now := s.now()
	p := models.MenuProduct{ID: s.nextProductID, CreatedAt: now}
	applyProductInput(&p, in, now)
	s.nextProductID++
	s.products = append(s.products, p)
	return p
}

func applyProductInput(p *models.MenuProduct, in ProductInput, now time.Time) {
	p.Name = in.Name
	p.ShortDescription = in.ShortDescription
	p.LongDescription = in.LongDescription
	p.Price = in.Price
	p.Category = in.Category
	p.ImageRef = in.ImageRef
	p.Ingredients = append([]string(nil), in.Ingredients...)
	p.Allergens = append([]string(nil), in.Allergens...)
	p.Calories = in.Calories
	p.PrepTime = in.PrepTime
	p.Available = in.Available
	p.ModifiedAt = now
}

// UpdateProduct replaces every editable field and bumps modified_at
func (s *Service) UpdateProduct(ctx context.Context, id int, in ProductInput) (models.MenuProduct, error) {
	if err := s.validateProduct(in); err != nil {
		return models.MenuProduct{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return models.MenuProduct{}, errors.NotFoundf("product %d", id)
	}
	applyProductInput(&s.products[i], in, s.now())
	if err := s.save(ctx); err != nil {
		return models.MenuProduct{}, err
	}
	s.events.Publish(events.TopicProductsChanged, id)
	return s.products[i], nil
}

// ToggleProductAvailability flips whether a product can be ordered
func (s *Service) ToggleProductAvailability(ctx context.Context, id int) (models.MenuProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return models.MenuProduct{}, errors.NotFoundf("product %d", id)
	}
	p := &s.products[i]
	p.Available = !p.Available
	p.ModifiedAt = s.now()
	if err := s.save(ctx); err != nil {
		return models.MenuProduct{}, err
	}
	s.log.Info("product availability toggled", zap.Int("product_id", id), zap.Bool("available", p.Available))
	s.events.Publish(events.TopicProductsChanged, id)
	return *p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return errors.NotFoundf("product %d", id)
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	if err := s.save(ctx); err != nil {
		return err
	}
	s.log.Info("product deleted", zap.Int("product_id", id))
	s.events.Publish(events.TopicProductsChanged, id)
	return nil
}

func (s *Service) productIndex(id int) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
