package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartAutoAssignmentCommandIsNotConstructed = errors.New(
	"StartAutoAssignmentCommand must be created via NewStartAutoAssignmentCommand constructor",
)

// StartAutoAssignmentCommand triggers an auto-assignment run for one order:
// a widening radius search for nearby couriers, offers to the closest eligible
// candidates, and an audit log of every step.
//
// Example:
//
//	cmd, err := NewStartAutoAssignmentCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrOrderNotFound) {
//	    // unknown order
//	}
type StartAutoAssignmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartAutoAssignmentCommand creates a command to run auto-assignment for
// the given order.
func NewStartAutoAssignmentCommand(orderID kernel.UUID) (StartAutoAssignmentCommand, error) {
	cmd := StartAutoAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return StartAutoAssignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartAutoAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrStartAutoAssignmentCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c StartAutoAssignmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *StartAutoAssignmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
