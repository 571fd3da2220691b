// Package services contains stateless domain services that coordinate
// behavior across aggregates without owning state of their own.
//
// CredentialResolver binds the credential lookup rules (active-only, one per
// integration triple) into a single place consumed by the flow orchestrator
// and the channel pull step.
package services
