package shapeguard

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType          = "invalid_type"
	CodeNullValue            = "null_value"
	CodeRequired             = "required"
	CodeWrongKind            = "wrong_kind"
	CodeWrongArity           = "wrong_arity"
	CodeWrongResult          = "wrong_result"
	CodeCallFailed           = "call_failed"
	CodeUnknownKey           = "unknown_key"
	CodeDuplicateKey         = "duplicate_key"
	CodeDiscriminantMissing  = "discriminant_missing"
	CodeDiscriminantMismatch = "discriminant_mismatch"
	CodeNoIdentity           = "no_identity"
	CodeIdentityMismatch     = "identity_mismatch"
	CodeUnknownVariant       = "unknown_variant"
	CodeParseError           = "parse_error"
)

// Issue represents a single classification finding.
type Issue struct {
	Path    string // JSON Pointer (for example: /action).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected kind, tag literal, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"string",
	// "got":"bool"}) for i18n and observability.
	Params map[string]any
}

// Issues is a collection of classification findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. wrong_kind at /name
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
