package domain

// Integer is the set of fixed-width integer types accepted as an entity
// version.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Entity is an object with a globally unique, persistent identity and a
// version that increases with every change. K is the UUID type of the
// identity.
type Entity[K comparable, V Integer] interface {
	ID() K
	Version() V
}

// ValueObject wraps a single immutable value that is only constructible
// through validation. T is the wrapped type.
type ValueObject[T any] interface {
	// Validate reports whether value may be wrapped. It is called on the
	// zero value of the implementing type.
	Validate(value T) bool
	// Value returns the wrapped value.
	Value() T
}

// Message is anything dispatched through a bus: commands, queries and events.
type Message interface {
	MessageName() string
}

// DomainEvent is an immutable record of something that happened to an
// aggregate.
type DomainEvent[K comparable] interface {
	Message
	ID() K
	AggregateID() K
	Version() uint64
	// Occurred is the Unix time of the event in nanoseconds.
	Occurred() int64
}

// DomainEvents is satisfied by union interfaces whose variants are all
// domain events. Dispatch to the variant happens through the interface.
type DomainEvents[K comparable] interface {
	DomainEvent[K]
}

// Command is a message asking for a state change.
type Command interface {
	Message
	Command()
}

// Query is a message asking for data without changing state.
type Query interface {
	Message
	Query()
}
