// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every backend call is scoped by the identity loaded from the
// IdentityStore at call time. A missing identity blocks the call with
// domain.ErrNoSession before anything is sent.
package services
