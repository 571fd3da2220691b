package commands

import (
	"errors"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/guard"
)

var ErrPullOrdersCommandIsNotConstructed = errors.New(
	"PullOrdersCommand must be created via NewPullOrdersCommand constructor",
)

// PullOrdersCommand requests an ingestion pass: fetch pending orders from
// every configured sales channel account and register the new ones.
// An optional channel filter narrows the pass to one channel's accounts.
type PullOrdersCommand struct { //nolint:recvcheck //using for validation
	channel string

	guard guard.ConstructorGuard
}

// NewPullOrdersCommand creates an ingestion pass command. channel may be
// empty to pull from every configured account.
func NewPullOrdersCommand(channel string) (PullOrdersCommand, error) {
	return PullOrdersCommand{
		channel: channel,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PullOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPullOrdersCommandIsNotConstructed)
}

// Channel returns the channel filter, empty when all channels are pulled.
func (c PullOrdersCommand) Channel() string {
	return c.channel
}
