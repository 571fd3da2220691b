package commands

import (
	"errors"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/guard"
)

var ErrRefreshTrackingCommandIsNotConstructed = errors.New(
	"RefreshTrackingCommand must be created via NewRefreshTrackingCommand constructor",
)

// RefreshTrackingCommand requests the latest carrier tracking snapshot for
// one order.
type RefreshTrackingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefreshTrackingCommand creates a tracking refresh command.
func NewRefreshTrackingCommand(orderID kernel.UUID) (RefreshTrackingCommand, error) {
	cmd := RefreshTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return RefreshTrackingCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshTrackingCommand) Validate() error {
	return c.guard.Validate(ErrRefreshTrackingCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to refresh.
func (c RefreshTrackingCommand) OrderID() kernel.UUID {
	return c.orderID
}
