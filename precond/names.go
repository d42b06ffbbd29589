package precond

import (
	"go/token"

	"github.com/lex00/domaingen/naming"
	"github.com/lex00/domaingen/shape"
)

// DeriveNames computes the identifiers generated for a valid request. The
// synthesizer emits exactly these names, so collision checks and output can
// not drift apart.
func DeriveNames(c Contract, d *shape.TypeDescriptor) naming.Names {
	n := naming.Names{Receiver: naming.ReceiverName(d.Name)}

	switch c {
	case Entity:
		n.Methods = []string{"ID", "Version", "Equal"}
		for _, f := range d.Fields {
			if f.Embedded || f.Name == "id" || f.Name == "version" || naming.IsExported(f.Name) || f.Name == "_" {
				continue
			}
			method := naming.GetterName(f.Name)
			if !token.IsIdentifier(method) {
				continue
			}
			g := naming.Getter{Field: f.Name, Method: method}
			n.Getters = append(n.Getters, g)
			n.Methods = append(n.Methods, g.Method)
		}
	case ValueObject:
		n.ValidationError = naming.ValidationErrorName(d.Name)
		n.Constructor = naming.ConstructorName(d.Name)
		n.Idents = []string{n.ValidationError, n.Constructor}
		n.Methods = []string{"Equal", "Clone", "String"}
	case DomainEvent:
		n.Methods = []string{"ID", "AggregateID", "Version", "Occurred", "MessageName"}
	case DomainEvents:
		n.Seal = naming.SealName(d.Name)
	case Command:
		n.Methods = []string{"MessageName", "Command"}
	case Query:
		n.Methods = []string{"MessageName", "Query"}
	}

	return n
}
