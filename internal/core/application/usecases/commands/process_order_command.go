package commands

import (
	"errors"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/guard"
)

var (
	ErrProcessOrderCommandIsNotConstructed = errors.New(
		"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
	)
	ErrParcelWeightIsInvalid = errors.New("parcel weights must be greater than 0")
)

// ProcessOrderCommand requests one orchestrator pass over a single order.
// Each pass advances the order by at most one stage transition; callers run
// it repeatedly (usually from the processing job) until the order leaves the
// label and sync stages.
//
// Example:
//
//	cmd, err := NewProcessOrderCommand(orderID, []float64{1.5})
//	if err != nil {
//	    return fmt.Errorf("invalid process request: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to process order: %w", err)
//	}
type ProcessOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	parcelWeights []float64

	guard guard.ConstructorGuard
}

// NewProcessOrderCommand creates a command to run one orchestrator pass.
// parcelWeights optionally lists per-parcel weights in kilograms for label
// creation; nil lets the carrier apply its defaults.
func NewProcessOrderCommand(orderID kernel.UUID, parcelWeights []float64) (ProcessOrderCommand, error) {
	cmd := ProcessOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setParcelWeights(parcelWeights),
	); err != nil {
		return ProcessOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessOrderCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to process.
func (c ProcessOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ParcelWeights returns the per-parcel weights in kilograms, nil when the
// carrier defaults apply.
func (c ProcessOrderCommand) ParcelWeights() []float64 {
	return c.parcelWeights
}

func (c *ProcessOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessOrderCommand) setParcelWeights(weights []float64) error {
	for _, w := range weights {
		if w <= 0 {
			return ErrParcelWeightIsInvalid
		}
	}

	c.parcelWeights = weights
	return nil
}
