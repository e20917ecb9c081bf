// Package guard implements the constructor guard used by value objects, entities and
// commands to tell a constructed instance apart from its zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created through their
// constructor. Its zero value fails validation.
//
// Example:
//
//	type Command struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewCommand(id kernel.UUID) Command {
//	    return Command{orderID: id, guard: guard.NewConstructorGuard()}
//	}
//
//	func (c Command) Validate() error {
//	    return c.guard.Validate(ErrCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
