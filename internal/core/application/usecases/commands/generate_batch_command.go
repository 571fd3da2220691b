package commands

import (
	"errors"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/guard"
)

var (
	ErrGenerateBatchCommandIsNotConstructed = errors.New(
		"GenerateBatchCommand must be created via NewGenerateBatchCommand constructor",
	)
	ErrChannelIsRequired = errors.New("channel is required")
)

// GenerateBatchCommand requests grouping of a channel's synced, unbatched
// orders into a new batch. accountID optionally narrows the selection to one
// channel account; operator names who triggered the run.
type GenerateBatchCommand struct { //nolint:recvcheck //using for validation
	channel   string
	accountID string
	operator  string

	guard guard.ConstructorGuard
}

// NewGenerateBatchCommand creates a batch generation command.
func NewGenerateBatchCommand(channel, accountID, operator string) (GenerateBatchCommand, error) {
	if channel == "" {
		return GenerateBatchCommand{}, ErrChannelIsRequired
	}

	return GenerateBatchCommand{
		channel:   channel,
		accountID: accountID,
		operator:  operator,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateBatchCommand) Validate() error {
	return c.guard.Validate(ErrGenerateBatchCommandIsNotConstructed)
}

// Channel returns the sales channel to batch orders for.
func (c GenerateBatchCommand) Channel() string {
	return c.channel
}

// AccountID returns the account filter, empty for all of the channel's accounts.
func (c GenerateBatchCommand) AccountID() string {
	return c.accountID
}

// Operator returns who triggered the batch run.
func (c GenerateBatchCommand) Operator() string {
	return c.operator
}
