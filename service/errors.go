package service

import (
	"burger-house-api/statemachine"

	"github.com/juju/errors"
)

// Error kinds returned by the service. Test with errors.Is.
const (
	ErrNotFound           = errors.NotFound
	ErrDuplicateKey       = errors.AlreadyExists
	ErrValidation         = errors.NotValid
	ErrForbidden          = errors.Forbidden
	ErrInvalidTransition  = statemachine.ErrInvalidTransition
	ErrInsufficientPoints = errors.ConstError("insufficient loyalty points")
	ErrCorruptStore       = errors.ConstError("corrupt store")
)
