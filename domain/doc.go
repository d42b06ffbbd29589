// Package domain defines the contracts that domaingen implements for
// annotated types.
//
// A type opts in with a directive in its doc comment:
//
//	//domain:derive Entity
//	type User struct {
//		id      uuid.UUID
//		version uint64
//		name    string
//	}
//
// Running domaingen in the package writes domaingen_gen.go with the methods
// for each requested contract:
//
//   - Entity: ID, Version, Equal and getters for the other unexported fields
//   - ValueObject: a validation error type, NewT, Equal, Clone and String
//   - DomainEvent: ID, AggregateID, Version, Occurred and MessageName
//   - DomainEvents: seals the listed variants into the union interface
//   - Command, Query: MessageName and the marker method
//
// Value objects still supply Validate and Value themselves; the generated
// constructor calls Validate on every candidate value.
package domain
