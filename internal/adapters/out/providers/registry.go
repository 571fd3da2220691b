// Package providers holds the registry that maps provider codes to channel
// and carrier integrations. Concrete integrations register constructor
// functions at process start; every lookup builds a fresh instance so a
// bound credential never leaks between concurrent operations.
package providers

import (
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/ports"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"
)

// Registry implements ports.ProviderRegistry over two constructor tables.
// Registration happens during composition, before any lookup; afterwards the
// tables are read-only and lookups are safe for concurrent use.
type Registry struct {
	channels  map[string]func() ports.OrderChannel
	logistics map[string]func() ports.LogisticsProvider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		channels:  make(map[string]func() ports.OrderChannel),
		logistics: make(map[string]func() ports.LogisticsProvider),
	}
}

// RegisterOrderChannel registers a sales channel constructor under its code.
// A second registration for the same code replaces the first.
func (r *Registry) RegisterOrderChannel(code string, constructor func() ports.OrderChannel) {
	r.channels[code] = constructor
}

// RegisterLogisticsProvider registers a carrier constructor under its code.
func (r *Registry) RegisterLogisticsProvider(code string, constructor func() ports.LogisticsProvider) {
	r.logistics[code] = constructor
}

// OrderChannel returns a new channel adapter for the given code.
func (r *Registry) OrderChannel(code string) (ports.OrderChannel, error) {
	constructor, ok := r.channels[code]
	if !ok {
		return nil, errs.NewObjectNotFoundError("channel", code)
	}
	return constructor(), nil
}

// LogisticsProvider returns a new carrier adapter for the given code.
func (r *Registry) LogisticsProvider(code string) (ports.LogisticsProvider, error) {
	constructor, ok := r.logistics[code]
	if !ok {
		return nil, errs.NewObjectNotFoundError("carrier", code)
	}
	return constructor(), nil
}
