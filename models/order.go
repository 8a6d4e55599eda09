package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of a burger order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCanceled       OrderStatus = "canceled"
)

// OrderStatuses lists every status in lifecycle order
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCanceled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrderSource tells whether an order came through checkout or a staff comanda
type OrderSource string

const (
	SourceOnline  OrderSource = "online"
	SourceComanda OrderSource = "comanda"
)

type Order struct {
	ID              int             `json:"id"`
	CustomerID      int             `json:"customer_id"` // 0 for anonymous comandas
	Timestamp       time.Time       `json:"timestamp"`
	Total           decimal.Decimal `json:"total"`
	Items           []LineItem      `json:"items"`
	Status          OrderStatus     `json:"status"`
	Source          OrderSource     `json:"source"`
	EstimatedTime   string          `json:"estimated_time,omitempty"`
	KitchenNotes    string          `json:"kitchen_notes,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	ContactPhone    string          `json:"contact_phone,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	LastUpdated     time.Time       `json:"last_updated"`
}

type LineItem struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"order_id"`
	ProductName string          `json:"product_name"` // snapshot name, not a foreign key
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Subtotal is quantity times unit price
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
