package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"burger-house-api/events"
	"burger-house-api/models"
	"burger-house-api/statemachine"

	"github.com/juju/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemInput is one order line as submitted at checkout or the till
type ItemInput struct {
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity" validate:"min=1,max=99"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// OrderInput describes a new order. CustomerID 0 means an anonymous comanda.
type OrderInput struct {
	CustomerID      int                `json:"customer_id"`
	Items           []ItemInput        `json:"items" validate:"required,min=1,dive"`
	Source          models.OrderSource `json:"source"`
	KitchenNotes    string             `json:"kitchen_notes"`
	DeliveryAddress string             `json:"delivery_address"`
	ContactPhone    string             `json:"contact_phone"`
	PaymentMethod   string             `json:"payment_method"`
}

// MenuSelection picks a quantity of a menu product by id
type MenuSelection struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1,max=99"`
}

// StatusUpdate moves an order along. Nil estimate or notes keep the
// previous value.
type StatusUpdate struct {
	Status        models.OrderStatus `json:"status"`
	EstimatedTime *string            `json:"estimated_time"`
	KitchenNotes  *string            `json:"kitchen_notes"`
}

func (s *Service) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Order(nil), s.orders...)
}

func (s *Service) OrderByID(id int) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.orderIndex(id)
	if i < 0 {
		return models.Order{}, errors.NotFoundf("order %d", id)
	}
	return s.orders[i], nil
}

// OrdersByCustomer returns a customer's orders, newest first
func (s *Service) OrdersByCustomer(customerID int) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// OrdersByStatus returns orders in the given status, oldest first so the
// kitchen works through them in arrival order.
func (s *Service) OrdersByStatus(status models.OrderStatus) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for _, o := range s.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// ItemsFromMenu prices selections from the current menu. Unknown or
// unavailable products are rejected.
func (s *Service) ItemsFromMenu(selections []MenuSelection) ([]ItemInput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(selections) == 0 {
		return nil, errors.NotValidf("empty selection")
	}
	items := make([]ItemInput, 0, len(selections))
	for _, sel := range selections {
		i := s.productIndex(sel.ProductID)
		if i < 0 {
			return nil, errors.NotFoundf("product %d", sel.ProductID)
		}
		p := s.products[i]
		if !p.Available {
			return nil, errors.NotValidf("unavailable product %q", p.Name)
		}
		items = append(items, ItemInput{ProductName: p.Name, Quantity: sel.Quantity, UnitPrice: p.Price})
	}
	return items, nil
}

// CreateOrder records a new pending order and immediately credits the
// owning customer with one point per whole currency unit of the total.
func (s *Service) CreateOrder(ctx context.Context, in OrderInput) (models.Order, error) {
	if err := s.validate.Struct(in); err != nil {
		return models.Order{}, errors.NotValidf("order: %v", err)
	}
	for _, it := range in.Items {
		if it.UnitPrice.IsNegative() {
			return models.Order{}, errors.NotValidf("negative price for %q", it.ProductName)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.insertOrder(in)
	if err != nil {
		return models.Order{}, err
	}
	if err := s.save(ctx); err != nil {
		return models.Order{}, err
	}

	s.log.Info("order created",
		zap.Int("order_id", order.ID),
		zap.Int("customer_id", order.CustomerID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.String("source", string(order.Source)))
	s.events.Publish(events.TopicNewOrder, order)
	return order, nil
}

func (s *Service) insertOrder(in OrderInput) (models.Order, error) {
	customer := -1
	if in.CustomerID != 0 {
		customer = s.customerIndex(in.CustomerID)
		if customer < 0 {
			return models.Order{}, errors.NotFoundf("customer %d", in.CustomerID)
		}
	}

	total := decimal.Zero
	for _, it := range in.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	points := 0
	if customer >= 0 {
		var err error
		if points, err = pointsFor(total, s.customers[customer].LoyaltyPoints); err != nil {
			return models.Order{}, err
		}
	}

	source := in.Source
	if source == "" {
		source = models.SourceOnline
	}

	now := s.now()
	order := models.Order{
		ID:              s.nextOrderID,
		CustomerID:      in.CustomerID,
		Timestamp:       now,
		Status:          models.StatusPending,
		Source:          source,
		EstimatedTime:   DefaultEstimatedTime,
		KitchenNotes:    in.KitchenNotes,
		DeliveryAddress: in.DeliveryAddress,
		ContactPhone:    in.ContactPhone,
		PaymentMethod:   in.PaymentMethod,
		LastUpdated:     now,
	}
	s.nextOrderID++

	for _, it := range in.Items {
		li := models.LineItem{
			ID:          s.nextLineItemID,
			OrderID:     order.ID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
		s.nextLineItemID++
		order.Items = append(order.Items, li)
	}
	order.Total = total
	s.orders = append(s.orders, order)

	if customer >= 0 {
		s.customers[customer].LoyaltyPoints += points
	}
	return order, nil
}

// pointsFor is the whole-unit part of total, refused when crediting it would
// overflow the balance.
func pointsFor(total decimal.Decimal, balance int) (int, error) {
	earned := total.Floor()
	if earned.GreaterThan(decimal.NewFromInt(int64(math.MaxInt - balance))) {
		return 0, errors.NotValidf("order total %s", total.StringFixed(2))
	}
	return int(earned.IntPart()), nil
}

// CreateComanda records an order taken at the till. An empty code makes it
// anonymous; otherwise the code must resolve through FindCustomerByCode.
func (s *Service) CreateComanda(ctx context.Context, code string, items []ItemInput, notes string) (models.Order, error) {
	in := OrderInput{Items: items, Source: models.SourceComanda, KitchenNotes: notes}
	if strings.TrimSpace(code) != "" {
		customer, err := s.FindCustomerByCode(code)
		if err != nil {
			return models.Order{}, err
		}
		in.CustomerID = customer.ID
	}
	return s.CreateOrder(ctx, in)
}

// UpdateOrderStatus applies a staff transition. Only the edges in
// statemachine are accepted.
func (s *Service) UpdateOrderStatus(ctx context.Context, id int, upd StatusUpdate) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.orderIndex(id)
	if i < 0 {
		return models.Order{}, errors.NotFoundf("order %d", id)
	}
	if err := statemachine.CanTransition(s.orders[i].Status, upd.Status); err != nil {
		return models.Order{}, err
	}
	return s.applyTransition(ctx, i, upd)
}

// CancelOrder lets a customer withdraw one of their own orders
func (s *Service) CancelOrder(ctx context.Context, id, customerID int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.orderIndex(id)
	if i < 0 || s.orders[i].CustomerID != customerID {
		return models.Order{}, errors.NotFoundf("order %d", id)
	}
	err := statemachine.CanTransitionAs(s.orders[i].Status, models.StatusCanceled, models.RoleCustomer)
	if err != nil {
		return models.Order{}, err
	}
	return s.applyTransition(ctx, i, StatusUpdate{Status: models.StatusCanceled})
}

func (s *Service) applyTransition(ctx context.Context, i int, upd StatusUpdate) (models.Order, error) {
	o := &s.orders[i]
	from := o.Status
	o.Status = upd.Status
	if upd.EstimatedTime != nil {
		o.EstimatedTime = *upd.EstimatedTime
	}
	if upd.KitchenNotes != nil {
		o.KitchenNotes = *upd.KitchenNotes
	}
	o.LastUpdated = s.now()

	if err := s.save(ctx); err != nil {
		return models.Order{}, err
	}
	s.log.Info("order status changed",
		zap.Int("order_id", o.ID),
		zap.String("from", string(from)),
		zap.String("to", string(o.Status)))
	s.events.Publish(events.TopicOrderStatusChanged, events.StatusChange{OrderID: o.ID, From: from, To: o.Status})
	return *o, nil
}

func (s *Service) orderIndex(id int) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
