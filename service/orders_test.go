package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"burger-house-api/events"
	"burger-house-api/models"
	"burger-house-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestComandaForKnownCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	items, err := f.svc.ItemsFromMenu([]service.MenuSelection{{ProductID: 2, Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Bacon Deluxe", items[0].ProductName)

	order, err := f.svc.CreateComanda(ctx, "mg123456", items, "no pickles")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.SourceComanda, order.Source)
	assert.Equal(t, "no pickles", order.KitchenNotes)
	assert.Equal(t, service.DefaultEstimatedTime, order.EstimatedTime)
	assert.True(t, price("11.99").Equal(order.Total), order.Total.String())
	assert.Equal(t, maria(t, f.svc).ID, order.CustomerID)
	assert.Equal(t, 1261, maria(t, f.svc).LoyaltyPoints)
	assert.Contains(t, f.events.topics(), events.TopicNewOrder)
}

func TestAnonymousComanda(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	total := f.svc.GlobalStats().TotalPoints

	order, err := f.svc.CreateComanda(ctx, "", []service.ItemInput{{ProductName: "Cola", Quantity: 3, UnitPrice: price("2.20")}}, "")
	require.NoError(t, err)
	assert.Zero(t, order.CustomerID)
	assert.True(t, price("6.60").Equal(order.Total))
	assert.Equal(t, total, f.svc.GlobalStats().TotalPoints)

	_, err = f.svc.CreateComanda(ctx, "NOPE0000", []service.ItemInput{{ProductName: "Cola", Quantity: 1, UnitPrice: price("2.20")}}, "")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestOversizedOrdersCannotOverflowPoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	m := maria(t, f.svc)
	orders := len(f.svc.Orders())

	_, err := f.svc.CreateOrder(ctx, service.OrderInput{
		CustomerID: m.ID,
		Items:      []service.ItemInput{{ProductName: "Fries", Quantity: math.MaxInt64, UnitPrice: price("1.50")}},
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.CreateOrder(ctx, service.OrderInput{
		CustomerID: m.ID,
		Items:      []service.ItemInput{{ProductName: "Gold Burger", Quantity: 99, UnitPrice: price("1000000000000000000000000000000")}},
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.AddPoints(ctx, m.ID, math.MaxInt)
	assert.ErrorIs(t, err, service.ErrValidation)

	assert.Equal(t, m.LoyaltyPoints, maria(t, f.svc).LoyaltyPoints)
	assert.Len(t, f.svc.Orders(), orders)
}

func TestPointsAwardedOnceAtCreation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	m := maria(t, f.svc)

	order, err := f.svc.CreateOrder(ctx, service.OrderInput{
		CustomerID: m.ID,
		Items: []service.ItemInput{
			{ProductName: "Classic Burger", Quantity: 1, UnitPrice: price("9.99")},
			{ProductName: "Fries", Quantity: 1, UnitPrice: price("3.49")},
			{ProductName: "Craft Lemonade", Quantity: 1, UnitPrice: price("5.51")},
		},
		DeliveryAddress: "Calle Mayor 12",
	})
	require.NoError(t, err)
	assert.True(t, price("18.99").Equal(order.Total))
	assert.Equal(t, models.SourceOnline, order.Source)
	assert.Equal(t, m.LoyaltyPoints+18, maria(t, f.svc).LoyaltyPoints)

	for _, next := range []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	} {
		_, err := f.svc.UpdateOrderStatus(ctx, order.ID, service.StatusUpdate{Status: next})
		require.NoError(t, err, next)
	}
	assert.Equal(t, m.LoyaltyPoints+18, maria(t, f.svc).LoyaltyPoints)
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	orders := len(f.svc.Orders())

	_, err := f.svc.CreateOrder(ctx, service.OrderInput{})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.CreateOrder(ctx, service.OrderInput{Items: []service.ItemInput{{ProductName: "Fries", Quantity: 0, UnitPrice: price("3.49")}}})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.CreateOrder(ctx, service.OrderInput{Items: []service.ItemInput{{ProductName: "Fries", Quantity: 1, UnitPrice: price("-1")}}})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.CreateOrder(ctx, service.OrderInput{CustomerID: 99, Items: []service.ItemInput{{ProductName: "Fries", Quantity: 1, UnitPrice: price("3.49")}}})
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.Len(t, f.svc.Orders(), orders)
}

func TestItemsFromMenuRejectsUnknownAndUnavailable(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ItemsFromMenu([]service.MenuSelection{{ProductID: 999, Quantity: 1}})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.svc.ItemsFromMenu([]service.MenuSelection{{ProductID: 5, Quantity: 1}})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.ItemsFromMenu(nil)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	order, err := f.svc.CreateOrder(ctx, service.OrderInput{
		CustomerID:   maria(t, f.svc).ID,
		Items:        []service.ItemInput{{ProductName: "Fries", Quantity: 1, UnitPrice: price("3.49")}},
		KitchenNotes: "extra salt",
	})
	require.NoError(t, err)

	got, err := f.svc.UpdateOrderStatus(ctx, order.ID, service.StatusUpdate{
		Status:        models.StatusConfirmed,
		EstimatedTime: strPtr("10-15 min"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10-15 min", got.EstimatedTime)
	assert.Equal(t, "extra salt", got.KitchenNotes)

	got, err = f.svc.UpdateOrderStatus(ctx, order.ID, service.StatusUpdate{
		Status:       models.StatusPreparing,
		KitchenNotes: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "10-15 min", got.EstimatedTime)
	assert.Empty(t, got.KitchenNotes)

	_, err = f.svc.UpdateOrderStatus(ctx, order.ID, service.StatusUpdate{Status: models.StatusPending})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
	_, err = f.svc.UpdateOrderStatus(ctx, order.ID, service.StatusUpdate{Status: models.StatusPreparing})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
	_, err = f.svc.UpdateOrderStatus(ctx, order.ID, service.StatusUpdate{Status: models.StatusDelivered})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
	_, err = f.svc.UpdateOrderStatus(ctx, 999, service.StatusUpdate{Status: models.StatusConfirmed})
	assert.ErrorIs(t, err, service.ErrNotFound)

	stored, err := f.svc.OrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, stored.Status)

	var changes int
	for _, topic := range f.events.topics() {
		if topic == events.TopicOrderStatusChanged {
			changes++
		}
	}
	assert.Equal(t, 2, changes)
}

func TestTerminalOrdersCannotMove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, o := range f.svc.Orders() {
		_, err := f.svc.UpdateOrderStatus(ctx, o.ID, service.StatusUpdate{Status: models.StatusCanceled})
		assert.ErrorIs(t, err, service.ErrInvalidTransition, "order %d is %s", o.ID, o.Status)
	}
}

func TestLastUpdatedFollowsClock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	order, err := f.svc.CreateOrder(ctx, service.OrderInput{Items: []service.ItemInput{{ProductName: "Cola", Quantity: 1, UnitPrice: price("2.20")}}})
	require.NoError(t, err)
	assert.Equal(t, testNow, order.LastUpdated)

	f.clock.Advance(7 * time.Minute)
	got, err := f.svc.UpdateOrderStatus(ctx, order.ID, service.StatusUpdate{Status: models.StatusConfirmed})
	require.NoError(t, err)
	assert.True(t, got.LastUpdated.After(order.LastUpdated))
	assert.Equal(t, order.Timestamp, got.Timestamp)
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	m := maria(t, f.svc)

	order, err := f.svc.CreateOrder(ctx, service.OrderInput{CustomerID: m.ID, Items: []service.ItemInput{{ProductName: "Cola", Quantity: 1, UnitPrice: price("2.20")}}})
	require.NoError(t, err)

	carlos, err := f.svc.FindCustomerByCode(service.SeedCarlosCode)
	require.NoError(t, err)
	_, err = f.svc.CancelOrder(ctx, order.ID, carlos.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	canceled, err := f.svc.CancelOrder(ctx, order.ID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, canceled.Status)

	second, err := f.svc.CreateOrder(ctx, service.OrderInput{CustomerID: m.ID, Items: []service.ItemInput{{ProductName: "Cola", Quantity: 1, UnitPrice: price("2.20")}}})
	require.NoError(t, err)
	_, err = f.svc.UpdateOrderStatus(ctx, second.ID, service.StatusUpdate{Status: models.StatusConfirmed})
	require.NoError(t, err)
	_, err = f.svc.CancelOrder(ctx, second.ID, m.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestOrderQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	m := maria(t, f.svc)

	history := f.svc.OrdersByCustomer(m.ID)
	require.Len(t, history, 2)
	assert.True(t, history[0].Timestamp.After(history[1].Timestamp))

	_, err := f.svc.CreateOrder(ctx, service.OrderInput{CustomerID: m.ID, Items: []service.ItemInput{{ProductName: "Cola", Quantity: 1, UnitPrice: price("2.20")}}})
	require.NoError(t, err)
	pending := f.svc.OrdersByStatus(models.StatusPending)
	require.Len(t, pending, 1)
	assert.Equal(t, m.ID, pending[0].CustomerID)
	assert.Len(t, f.svc.OrdersByStatus(models.StatusDelivered), 2)
	assert.Len(t, f.svc.OrdersByCustomer(m.ID), 3)
}

func TestOrderStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	stats := f.svc.OrderStats()
	assert.Len(t, stats.ByStatus, len(models.OrderStatuses))
	assert.Equal(t, 2, stats.ByStatus[models.StatusDelivered])
	assert.Equal(t, 1, stats.ByStatus[models.StatusCanceled])
	assert.Zero(t, stats.ByStatus[models.StatusPending])
	assert.Zero(t, stats.TodayCount)

	kept, err := f.svc.CreateOrder(ctx, service.OrderInput{Items: []service.ItemInput{{ProductName: "Bacon Deluxe", Quantity: 1, UnitPrice: price("11.99")}}})
	require.NoError(t, err)
	dropped, err := f.svc.CreateOrder(ctx, service.OrderInput{Items: []service.ItemInput{{ProductName: "Fries", Quantity: 1, UnitPrice: price("3.49")}}})
	require.NoError(t, err)
	_, err = f.svc.UpdateOrderStatus(ctx, dropped.ID, service.StatusUpdate{Status: models.StatusCanceled})
	require.NoError(t, err)

	stats = f.svc.OrderStats()
	assert.Equal(t, 2, stats.TodayCount)
	assert.True(t, kept.Total.Equal(stats.TodayRevenue), stats.TodayRevenue.String())
	assert.Equal(t, 1, stats.ByStatus[models.StatusPending])
	assert.Equal(t, 2, stats.ByStatus[models.StatusCanceled])
}
