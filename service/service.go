// Package service is the burger house data service: the single owner of
// users, customers, orders, reviews and menu products. State lives in
// memory and is written back whole to a store.KV after every mutation.
package service

import (
	"context"
	"sync"
	"time"

	"burger-house-api/events"
	"burger-house-api/models"
	"burger-house-api/store"

	"github.com/go-playground/validator/v10"
	"github.com/juju/clock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultEstimatedTime is the kitchen estimate every new order starts with
const DefaultEstimatedTime = "20-30 min"

// Service is safe for concurrent use. Reads share a lock, mutations and the
// save that follows them hold it exclusively.
type Service struct {
	mu sync.RWMutex

	kv             store.KV
	log            *zap.Logger
	clock          clock.Clock
	events         events.Publisher
	validate       *validator.Validate
	newCode        func() string
	bcryptCost     int
	resetOnCorrupt bool

	users     []models.User
	customers []models.Customer
	orders    []models.Order
	reviews   []models.Review
	products  []models.MenuProduct

	nextUserID     int
	nextCustomerID int
	nextOrderID    int
	nextLineItemID int
	nextReviewID   int
	nextProductID  int
}

type Option func(*Service)

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithBcryptCost sets the cost used when hashing new passwords
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

// WithResetOnCorrupt makes Load discard a collection with duplicate ids
// instead of failing.
func WithResetOnCorrupt(reset bool) Option {
	return func(s *Service) { s.resetOnCorrupt = reset }
}

// WithCodeGenerator replaces the random source of customer unique codes
func WithCodeGenerator(gen func() string) Option {
	return func(s *Service) { s.newCode = gen }
}

// New builds an empty service. Call Load before use, or use Open.
func New(kv store.KV, opts ...Option) *Service {
	s := &Service{
		kv:             kv,
		log:            zap.NewNop(),
		clock:          clock.WallClock,
		events:         events.Discard{},
		validate:       validator.New(),
		newCode:        randomCode,
		bcryptCost:     bcrypt.DefaultCost,
		nextUserID:     1,
		nextCustomerID: 1,
		nextOrderID:    1,
		nextLineItemID: 1,
		nextReviewID:   1,
		nextProductID:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open builds a service and loads its state from kv, seeding if needed
func Open(ctx context.Context, kv store.KV, opts ...Option) (*Service, error) {
	s := New(kv, opts...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) now() time.Time {
	return s.clock.Now()
}
