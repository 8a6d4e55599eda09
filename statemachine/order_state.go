package statemachine

import (
	"fmt"
	"strings"

	"burger-house-api/models"

	"github.com/juju/errors"
)

// ErrInvalidTransition is returned for any status change outside the table below
const ErrInvalidTransition = errors.ConstError("invalid order status transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Roles []models.UserRole  `json:"roles"`
}

var (
	kitchen    = []models.UserRole{models.RoleStaff, models.RoleAdmin}
	cancellers = []models.UserRole{models.RoleStaff, models.RoleAdmin, models.RoleCustomer}
)

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusConfirmed, Roles: kitchen},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Roles: kitchen},
	{From: models.StatusPreparing, To: models.StatusReady, Roles: kitchen},
	{From: models.StatusReady, To: models.StatusOutForDelivery, Roles: kitchen},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Roles: kitchen},

	// Customers may only withdraw an order nobody has accepted yet
	{From: models.StatusPending, To: models.StatusCanceled, Roles: cancellers},
	{From: models.StatusConfirmed, To: models.StatusCanceled, Roles: kitchen},
	{From: models.StatusPreparing, To: models.StatusCanceled, Roles: kitchen},
	{From: models.StatusReady, To: models.StatusCanceled, Roles: kitchen},
	{From: models.StatusOutForDelivery, To: models.StatusCanceled, Roles: kitchen},
}

type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

var transitionMap = func() map[transitionKey]Transition {
	m := make(map[transitionKey]Transition, len(validTransitions))
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = t
	}
	return m
}()

// IsTerminal reports whether no transition leaves status
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCanceled
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks the edge exists. Role checks are done by CanTransitionAs.
func CanTransition(from, to models.OrderStatus) error {
	if _, ok := transitionMap[transitionKey{from, to}]; ok {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s, valid transitions from %s: %s",
		ErrInvalidTransition, from, to, from, describeValidFrom(from))
}

// CanTransitionAs checks both the edge and that role may perform it
func CanTransitionAs(from, to models.OrderStatus, role models.UserRole) error {
	if err := CanTransition(from, to); err != nil {
		return err
	}
	for _, r := range transitionMap[transitionKey{from, to}].Roles {
		if r == role {
			return nil
		}
	}
	return errors.Forbiddenf("%s -> %s by role %q", from, to, role)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
