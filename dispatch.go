package shapeguard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shapeguard/shapeguard/i18n"
)

// Handler consumes a value after tag narrowing. The value has passed the
// tag-trusted check only, so payload fields may still be malformed; a
// handler may therefore fail or panic, and the dispatcher contains either
// outcome to the single item.
type Handler func(ctx context.Context, v map[string]any) error

// Dispatcher routes composite values by a shared discriminant field: one
// exhaustive match on the tag instead of ad hoc per-call checks. It is
// configured once and immutable in use.
type Dispatcher struct {
	field    string
	handlers map[string]Handler
}

// NewDispatcher creates a dispatcher keyed on the given discriminant field.
func NewDispatcher(field string) *Dispatcher {
	return &Dispatcher{field: field, handlers: map[string]Handler{}}
}

// Handle registers the handler for one discriminant literal.
func (dp *Dispatcher) Handle(tag string, h Handler) *Dispatcher {
	if h != nil {
		dp.handlers[tag] = h
	}
	return dp
}

// Dispatch narrows v by tag and runs the matching handler. Handler panics
// are recovered and reported as issues; unknown tags and non-composite
// values yield issues. It never panics.
func (dp *Dispatcher) Dispatch(ctx context.Context, v any) error {
	m, iss := asComposite(v)
	if len(iss) > 0 {
		return iss
	}
	if iss := checkTagPresent(m, dp.field); len(iss) > 0 {
		return iss
	}
	tag := m[dp.field].(string)
	h, ok := dp.handlers[tag]
	if !ok {
		return Issues{Issue{Path: "/" + dp.field, Code: CodeUnknownVariant, Message: i18n.T(CodeUnknownVariant, nil), Hint: "unknown variant: '" + tag + "'"}}
	}
	return runHandler(ctx, h, m)
}

// DispatchAll dispatches each value in order, catching per item and
// continuing. Issues are rebased under the item's index so a batch report
// reads like /2/action. A nil return means every item succeeded.
func (dp *Dispatcher) DispatchAll(ctx context.Context, values []any) error {
	var iss Issues
	for i, v := range values {
		err := dp.Dispatch(ctx, v)
		if err == nil {
			continue
		}
		base := "/" + strconv.Itoa(i)
		if child, ok := AsIssues(err); ok {
			for _, it := range child {
				p := it.Path
				if p == "" || p == "/" {
					p = base
				} else {
					p = base + p
				}
				iss = AppendIssues(iss, Issue{Path: p, Code: it.Code, Message: it.Message, Hint: it.Hint, Cause: it.Cause, Params: it.Params})
			}
			continue
		}
		iss = AppendIssues(iss, Issue{Path: base, Code: CodeCallFailed, Message: err.Error(), Cause: err})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// checkTagPresent verifies the discriminant exists and is textual without
// comparing it to a literal.
func checkTagPresent(m map[string]any, field string) Issues {
	dv, exists := m[field]
	if !exists {
		return Issues{Issue{Path: "/" + field, Code: CodeDiscriminantMissing, Message: i18n.T(CodeDiscriminantMissing, nil)}}
	}
	if _, ok := dv.(string); !ok {
		return Issues{Issue{Path: "/" + field, Code: CodeDiscriminantMismatch, Message: i18n.T(CodeDiscriminantMismatch, nil), Hint: "discriminant must be textual"}}
	}
	return nil
}

// runHandler contains a handler failure, panic included, to the current item.
func runHandler(ctx context.Context, h Handler, m map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Issues{Issue{Path: "/", Code: CodeCallFailed, Message: i18n.T(CodeCallFailed, nil), Hint: fmt.Sprint(r)}}
		}
	}()
	if herr := h(ctx, m); herr != nil {
		if iss, ok := AsIssues(herr); ok {
			return iss
		}
		return Issues{Issue{Path: "/", Code: CodeCallFailed, Message: herr.Error(), Cause: herr}}
	}
	return nil
}
