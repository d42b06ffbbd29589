package precond

import "fmt"

// Reason is the closed set of precondition failure kinds.
type Reason int

const (
	// NotAStruct means a record was required.
	NotAStruct Reason = iota + 1
	// NotAnEnum means a tagged union was required.
	NotAnEnum
	// MissingField means a required field is absent.
	MissingField
	// WrongFieldType means a required field has the wrong declared type.
	WrongFieldType
	// WrongFieldCount means the record has the wrong number of fields.
	WrongFieldCount
	// FloatingPointVersionNotAllowed means an event version is a float.
	FloatingPointVersionNotAllowed
	// NameCollision means a generated identifier is already declared.
	NameCollision
	// UnknownVariant means a union variant is not a local type that can
	// carry methods.
	UnknownVariant
)

// String returns the name of the reason.
func (r Reason) String() string {
	switch r {
	case NotAStruct:
		return "NotAStruct"
	case NotAnEnum:
		return "NotAnEnum"
	case MissingField:
		return "MissingField"
	case WrongFieldType:
		return "WrongFieldType"
	case WrongFieldCount:
		return "WrongFieldCount"
	case FloatingPointVersionNotAllowed:
		return "FloatingPointVersionNotAllowed"
	case NameCollision:
		return "NameCollision"
	case UnknownVariant:
		return "UnknownVariant"
	default:
		return "Unknown"
	}
}

// Failure describes the first precondition a type did not meet.
type Failure struct {
	Reason   Reason
	Contract Contract
	// Type is the name of the offending declaration.
	Type string
	// Field is the field involved, the identifier for NameCollision or the
	// variant for UnknownVariant.
	Field string
	// Expected describes the required type for WrongFieldType.
	Expected string
	// Actual is the declared type token for WrongFieldType.
	Actual string
	// ExpectedCount and ActualCount are set for WrongFieldCount.
	ExpectedCount int
	ActualCount   int
}

// Error implements the error interface.
func (f *Failure) Error() string {
	switch f.Reason {
	case NotAStruct:
		return fmt.Sprintf("%s: %s must be a struct type", f.Contract, f.Type)
	case NotAnEnum:
		return fmt.Sprintf("%s: %s must be an interface type listing its variants", f.Contract, f.Type)
	case MissingField:
		return fmt.Sprintf("%s: %s is missing required field `%s` (%s)", f.Contract, f.Type, f.Field, f.Expected)
	case WrongFieldType:
		return fmt.Sprintf("%s: field `%s` of %s must be %s, found %s", f.Contract, f.Field, f.Type, f.Expected, f.Actual)
	case WrongFieldCount:
		return fmt.Sprintf("%s: %s must have exactly %d field(s), found %d", f.Contract, f.Type, f.ExpectedCount, f.ActualCount)
	case FloatingPointVersionNotAllowed:
		return fmt.Sprintf("%s: field `version` of %s must be an integer type, found floating point %s", f.Contract, f.Type, f.Actual)
	case NameCollision:
		return fmt.Sprintf("%s: generated identifier %s for %s is already declared in the package", f.Contract, f.Field, f.Type)
	case UnknownVariant:
		return fmt.Sprintf("%s: variant %s of %s must be a non-interface type declared in the package", f.Contract, f.Field, f.Type)
	default:
		return fmt.Sprintf("%s: %s failed preconditions", f.Contract, f.Type)
	}
}
