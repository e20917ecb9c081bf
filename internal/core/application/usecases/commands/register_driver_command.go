package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand signs a driver up for dispatch. The contact handle is the
// identity the driver channel reaches the driver on; registering the same contact
// twice returns the existing driver.
//
// Example:
//
//	cmd, err := NewRegisterDriverCommand("Ana", "+598 99 123 456")
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
//	if res.Created {
//	    // welcome message
//	}
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	name    string
	contact string

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand validates that both name and contact are present.
func NewRegisterDriverCommand(name, contact string) (RegisterDriverCommand, error) {
	command := RegisterDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setName(name),
		command.setContact(contact),
	); err != nil {
		return RegisterDriverCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) Name() string {
	return c.name
}

func (c RegisterDriverCommand) Contact() string {
	return c.contact
}

func (c *RegisterDriverCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return driver.ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *RegisterDriverCommand) setContact(contact string) error {
	contact = driver.NormalizeContact(contact)
	if contact == "" {
		return driver.ErrContactIsRequired
	}
	c.contact = contact
	return nil
}
