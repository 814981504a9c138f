package transform

// DiagnosticKind is one of the six diagnostic kinds named in §6.
type DiagnosticKind string

const (
	DiagUnhandledNode         DiagnosticKind = "UnhandledNode"
	DiagAmbiguousType         DiagnosticKind = "AmbiguousType"
	DiagUnknownOpCode         DiagnosticKind = "UnknownOpCode"
	DiagUnresolvedIdentifier  DiagnosticKind = "UnresolvedIdentifier"
	DiagRenamedForCollision   DiagnosticKind = "RenamedForCollision"
	DiagCryptoFallback        DiagnosticKind = "CryptoFallback"
)

// Diagnostic is one accumulated warning. Beyond the kind named in §6,
// it carries a stable Code and the dotted class.method Path that
// produced it (SPEC_FULL §4 item 1), so a caller can render a useful
// message without re-walking the Target AST.
type Diagnostic struct {
	Kind    DiagnosticKind
	Code    string
	Path    string
	Message string
}

// diagnosticSink accumulates warnings for one compilation; it is
// exclusively owned by the single transformation task (§5), so no
// locking.
type diagnosticSink struct {
	items []Diagnostic
}

func (d *diagnosticSink) warn(kind DiagnosticKind, path, message string) {
	d.items = append(d.items, Diagnostic{
		Kind:    kind,
		Code:    string(kind),
		Path:    path,
		Message: message,
	})
}
