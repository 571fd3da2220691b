package ports

// ProviderRegistry resolves provider codes to integration instances. The
// registration table is built once at process start and read-only afterwards,
// so lookups are safe for concurrent use. Every lookup returns a fresh
// instance: binding a credential never mutates shared state.
type ProviderRegistry interface {
	// OrderChannel returns a new channel adapter for the given code.
	// Returns an error unwrapping to errs.ErrObjectNotFound when the code
	// was never registered.
	OrderChannel(code string) (OrderChannel, error)

	// LogisticsProvider returns a new carrier adapter for the given code.
	// Returns an error unwrapping to errs.ErrObjectNotFound when the code
	// was never registered.
	LogisticsProvider(code string) (LogisticsProvider, error)
}
