package classify

import (
	"strings"

	"github.com/aretw0/canary/pkg/ports"
)

// Sentinels returned when a callable's declaration cannot be recovered.
const (
	// SignatureBuiltin marks a natively-bound callable whose documentation
	// carried no usable declaration.
	SignatureBuiltin = "(builtin method)"
	// SignatureUnknown marks a value that is not introspectable at all.
	SignatureUnknown = "(unknown)"
)

// Signature renders a callable's declared parameters as "(a, b, c)". When the
// declaration cannot be inspected it falls back to the callable's
// documentation string, extracting the first parenthesized fragment of the
// first line if present. Never fails; non-callables yield SignatureUnknown.
func Signature(member any) string {
	fn, ok := member.(ports.Function)
	if !ok {
		if c, callable := member.(ports.Callable); callable {
			return docSignature(c)
		}
		return SignatureUnknown
	}

	params, err := fn.Params()
	if err == nil {
		return "(" + strings.Join(params, ", ") + ")"
	}
	return docSignature(fn)
}

// docSignature recovers a signature fragment from a documentation string.
func docSignature(c ports.Callable) string {
	doc := c.Doc()
	if doc == "" {
		return SignatureBuiltin
	}
	first := doc
	if i := strings.IndexByte(doc, '\n'); i >= 0 {
		first = doc[:i]
	}
	open := strings.IndexByte(first, '(')
	end := strings.LastIndexByte(first, ')')
	if open >= 0 && end > open {
		return strings.TrimSpace(first[open : end+1])
	}
	return SignatureBuiltin
}
