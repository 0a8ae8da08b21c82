// Package kernel provides core domain primitives for the order engine.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - OrderNumber: the externally-assigned identity of an order, immutable
//     once created, also the source of the pub/sub topic for that order
//   - Monetary helpers over shopspring/decimal implementing the engine's
//     coerce-to-zero parsing policy and money rounding
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
