package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// RegisterDriverResult is the outcome of a registration.
type RegisterDriverResult struct {
	Driver *driver.Driver
	// Created is false when the contact was already registered.
	Created bool
}

// RegisterDriverCommandHandler registers drivers. A new driver is offered the head of
// the dispatch queue before Handle returns.
type RegisterDriverCommandHandler struct {
	registrar DriverRegistrar
}

func NewRegisterDriverCommandHandler(registrar DriverRegistrar) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{registrar: registrar}
}

// Handle registers the driver, or finds the one already registered under the contact.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) (RegisterDriverResult, error) {
	if err := cmd.Validate(); err != nil {
		return RegisterDriverResult{}, err
	}

	d, created, err := h.registrar.RegisterDriver(ctx, cmd.Name(), cmd.Contact())
	if err != nil {
		return RegisterDriverResult{}, err
	}
	return RegisterDriverResult{Driver: d, Created: created}, nil
}
