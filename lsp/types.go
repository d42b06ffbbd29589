// Package lsp answers Language Server Protocol requests for Go files that
// carry //domain:derive directives, so editors show domaingen diagnostics
// while a directive is being written.
//
// DirectiveProvider implements every provider on top of the lint engine and
// Server dispatches to whichever providers are configured. Transport framing
// is left to the editor integration.
package lsp

// Position is a zero-based line and byte offset in a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a span between two positions; End is exclusive.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location points into a document.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// DiagnosticSeverity uses the protocol's numbering.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

// Diagnostic is one lint issue placed in a document. Code carries the rule
// ID, e.g. "DG003".
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity"`
	Code     string             `json:"code,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// CompletionItemKind uses the protocol's numbering. Only the kinds domaingen
// offers are declared.
type CompletionItemKind int

const (
	CompletionKindText       CompletionItemKind = 1
	CompletionKindInterface  CompletionItemKind = 8
	CompletionKindKeyword    CompletionItemKind = 14
	CompletionKindEnumMember CompletionItemKind = 20
	CompletionKindStruct     CompletionItemKind = 22
)

// CompletionItem is one suggestion.
type CompletionItem struct {
	Label         string             `json:"label"`
	Kind          CompletionItemKind `json:"kind,omitempty"`
	Detail        string             `json:"detail,omitempty"`
	Documentation string             `json:"documentation,omitempty"`
	InsertText    string             `json:"insertText,omitempty"`
}

// Hover is markdown shown for the symbol under the cursor.
type Hover struct {
	Contents string `json:"contents"`
	Range    *Range `json:"range,omitempty"`
}
