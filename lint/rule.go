package lint

import (
	"fmt"
	"go/token"

	"github.com/lex00/domaingen/precond"
)

// Rule describes one diagnostic domaingen can report.
type Rule struct {
	// ID is the unique identifier, e.g. "DG003".
	ID string
	// Severity is the severity issues of this rule carry.
	Severity Severity
	// Description is a brief description of what the rule checks.
	Description string
}

// Rule identifiers.
const (
	RuleNotAStruct       = "DG001"
	RuleNotAnEnum        = "DG002"
	RuleMissingField     = "DG003"
	RuleWrongFieldType   = "DG004"
	RuleWrongFieldCount  = "DG005"
	RuleFloatingVersion  = "DG006"
	RuleNameCollision    = "DG007"
	RuleUnknownVariant   = "DG008"
	RuleIgnoredDirective = "DG100"
)

var rules = []Rule{
	{RuleNotAStruct, SeverityError, "contract requires a struct type"},
	{RuleNotAnEnum, SeverityError, "DomainEvents requires an interface type"},
	{RuleMissingField, SeverityError, "contract requires a field that is not declared"},
	{RuleWrongFieldType, SeverityError, "required field has the wrong declared type"},
	{RuleWrongFieldCount, SeverityError, "ValueObject must wrap exactly one field"},
	{RuleFloatingVersion, SeverityError, "DomainEvent version must not be floating point"},
	{RuleNameCollision, SeverityError, "generated identifier is already declared"},
	{RuleUnknownVariant, SeverityError, "DomainEvents variant is not a local non-interface type"},
	{RuleIgnoredDirective, SeverityWarning, "directive names an unknown contract or malformed arguments"},
}

var reasonRules = map[precond.Reason]string{
	precond.NotAStruct:                     RuleNotAStruct,
	precond.NotAnEnum:                      RuleNotAnEnum,
	precond.MissingField:                   RuleMissingField,
	precond.WrongFieldType:                 RuleWrongFieldType,
	precond.WrongFieldCount:                RuleWrongFieldCount,
	precond.FloatingPointVersionNotAllowed: RuleFloatingVersion,
	precond.NameCollision:                  RuleNameCollision,
	precond.UnknownVariant:                 RuleUnknownVariant,
}

// Rules returns every rule in ID order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// LookupRule returns the rule with the given ID.
func LookupRule(id string) (Rule, bool) {
	for _, r := range rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// RuleID returns the rule reporting failures of the given reason.
// Unknown reasons, such as an unsupported contract, report as DG001.
func RuleID(reason precond.Reason) string {
	if id, ok := reasonRules[reason]; ok {
		return id
	}
	return RuleNotAStruct
}

// FromFailure converts a precondition failure at pos into an Issue.
func FromFailure(f *precond.Failure, pos token.Position) Issue {
	return Issue{
		Rule:       RuleID(f.Reason),
		Message:    f.Error(),
		File:       pos.Filename,
		Line:       pos.Line,
		Column:     pos.Column,
		Severity:   SeverityError,
		Suggestion: suggest(f),
	}
}

func suggest(f *precond.Failure) string {
	switch f.Reason {
	case precond.NotAStruct:
		return fmt.Sprintf("declare %s as a struct type", f.Type)
	case precond.NotAnEnum:
		return fmt.Sprintf("declare %s as an interface and list its variants after the contract name", f.Type)
	case precond.MissingField:
		return fmt.Sprintf("add a field `%s` of type %s", f.Field, f.Expected)
	case precond.WrongFieldType:
		return fmt.Sprintf("declare `%s` as %s", f.Field, f.Expected)
	case precond.WrongFieldCount:
		return "keep a single field named `value`"
	case precond.FloatingPointVersionNotAllowed:
		return fmt.Sprintf("declare `%s` as uint64", f.Field)
	case precond.NameCollision:
		return fmt.Sprintf("rename or remove the existing %s", f.Field)
	case precond.UnknownVariant:
		return fmt.Sprintf("declare `type %s struct{ ... }` in the package or drop it from the directive", f.Field)
	}
	return ""
}
