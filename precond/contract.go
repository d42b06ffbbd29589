// Package precond checks type descriptors against the structural rules of
// each generated contract.
package precond

import "fmt"

// Contract identifies which implementation is requested for a type.
type Contract int

const (
	// Entity requests identity and version accessors.
	Entity Contract = iota + 1
	// ValueObject requests a validating constructor, equality and cloning.
	ValueObject
	// DomainEvent requests the event accessor set.
	DomainEvent
	// DomainEvents requests the marker for a union of events.
	DomainEvents
	// Command requests the command message marker.
	Command
	// Query requests the query message marker.
	Query
)

var contractNames = map[Contract]string{
	Entity:       "Entity",
	ValueObject:  "ValueObject",
	DomainEvent:  "DomainEvent",
	DomainEvents: "DomainEvents",
	Command:      "Command",
	Query:        "Query",
}

// String returns the directive spelling of the contract.
func (c Contract) String() string {
	if name, ok := contractNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Contract(%d)", int(c))
}

// ParseContract maps a directive word to its Contract.
func ParseContract(s string) (Contract, bool) {
	for c, name := range contractNames {
		if name == s {
			return c, true
		}
	}
	return 0, false
}

// Contracts returns every known contract in declaration order.
func Contracts() []Contract {
	return []Contract{Entity, ValueObject, DomainEvent, DomainEvents, Command, Query}
}
