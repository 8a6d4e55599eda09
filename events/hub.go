// Package events carries advisory change notifications from the data
// service to anything that wants to refresh. Delivery is asynchronous and
// nothing may depend on it for correctness.
package events

import (
	"burger-house-api/models"

	"github.com/juju/pubsub/v2"
)

// Topic names published by the data service
const (
	TopicNewOrder           = "new-order"
	TopicOrderStatusChanged = "order-status-changed"
	TopicProductsChanged    = "products-changed"
)

// StatusChange is the payload of TopicOrderStatusChanged
type StatusChange struct {
	OrderID int                `json:"order_id"`
	From    models.OrderStatus `json:"from"`
	To      models.OrderStatus `json:"to"`
}

// Publisher is what the data service needs from a hub
type Publisher interface {
	Publish(topic string, payload interface{})
}

// Hub fans named events out to subscribers
type Hub struct {
	hub *pubsub.SimpleHub
}

func NewHub() *Hub {
	return &Hub{hub: pubsub.NewSimpleHub(&pubsub.SimpleHubConfig{})}
}

func (h *Hub) Publish(topic string, payload interface{}) {
	h.hub.Publish(topic, payload)
}

// Subscribe calls handler for every event on topic until the returned
// func is called.
func (h *Hub) Subscribe(topic string, handler func(payload interface{})) func() {
	return h.hub.Subscribe(topic, func(_ string, data interface{}) {
		handler(data)
	})
}

// SubscribeAll calls handler for every event on any topic
func (h *Hub) SubscribeAll(handler func(topic string, payload interface{})) func() {
	return h.hub.SubscribeMatch(pubsub.MatchAll, handler)
}

// Discard drops every event
type Discard struct{}

func (Discard) Publish(string, interface{}) {}
