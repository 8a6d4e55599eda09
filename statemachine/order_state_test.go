package statemachine

import (
	"testing"

	"burger-house-api/models"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearPathIsAllowed(t *testing.T) {
	path := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.NoError(t, CanTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
	}
}

func TestCancelFromEveryNonTerminalState(t *testing.T) {
	for _, s := range models.OrderStatuses {
		err := CanTransition(s, models.StatusCanceled)
		if IsTerminal(s) {
			assert.ErrorIs(t, err, ErrInvalidTransition, s)
		} else {
			assert.NoError(t, err, s)
		}
	}
}

func TestIllegalTransitionsAreRejected(t *testing.T) {
	cases := []struct{ from, to models.OrderStatus }{
		{models.StatusDelivered, models.StatusPending},
		{models.StatusPending, models.StatusDelivered},
		{models.StatusPreparing, models.StatusConfirmed},
		{models.StatusReady, models.StatusReady},
		{models.StatusCanceled, models.StatusConfirmed},
	}
	for _, c := range cases {
		err := CanTransition(c.from, c.to)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCanceled))
	assert.Equal(t,
		[]models.OrderStatus{models.StatusConfirmed, models.StatusCanceled},
		ValidTransitionsFrom(models.StatusPending))
}

func TestCanTransitionAsChecksRole(t *testing.T) {
	assert.NoError(t, CanTransitionAs(models.StatusPending, models.StatusConfirmed, models.RoleStaff))
	assert.NoError(t, CanTransitionAs(models.StatusPending, models.StatusCanceled, models.RoleCustomer))

	err := CanTransitionAs(models.StatusPending, models.StatusConfirmed, models.RoleCustomer)
	assert.True(t, errors.Is(err, errors.Forbidden))

	err = CanTransitionAs(models.StatusConfirmed, models.StatusCanceled, models.RoleCustomer)
	assert.True(t, errors.Is(err, errors.Forbidden))

	err = CanTransitionAs(models.StatusDelivered, models.StatusPending, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
