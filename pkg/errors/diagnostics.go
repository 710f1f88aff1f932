package errors

import (
	"fmt"
	"strings"
)

// Diagnostic records a non-fatal, per-entity problem discovered during
// constraint building, layout resolution, or render dispatch. Diagnostics
// never abort a screen; they ride alongside the best-effort result so an
// external collaborator can log or report them.
type Diagnostic struct {
	Code    Code   `json:"code"`
	View    string `json:"view,omitempty"` // Entity id the problem is scoped to
	Side    string `json:"side,omitempty"` // Anchor side, when the problem is per-side
	Message string `json:"message"`
}

// String formats the diagnostic for logs: "CODE view=hero side=start: msg".
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Code))
	if d.View != "" {
		fmt.Fprintf(&b, " view=%s", d.View)
	}
	if d.Side != "" {
		fmt.Fprintf(&b, " side=%s", d.Side)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// Diagnostics is an ordered collection of per-entity problems.
type Diagnostics []Diagnostic

// Add appends a diagnostic with a formatted message.
func (ds *Diagnostics) Add(code Code, view, side, format string, args ...any) {
	*ds = append(*ds, Diagnostic{
		Code:    code,
		View:    view,
		Side:    side,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasCode reports whether any diagnostic carries the given code.
func (ds Diagnostics) HasCode(code Code) bool {
	for _, d := range ds {
		if d.Code == code {
			return true
		}
	}
	return false
}

// ForView returns the diagnostics scoped to the given entity id.
func (ds Diagnostics) ForView(view string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.View == view {
			out = append(out, d)
		}
	}
	return out
}

// Merge returns ds with all diagnostics from other appended.
func (ds Diagnostics) Merge(other Diagnostics) Diagnostics {
	return append(ds, other...)
}
