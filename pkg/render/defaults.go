package render

import (
	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/errors"
)

// Documented placeholder values substituted for missing required
// attributes. Substitution is a non-fatal diagnostic, never a failure.
const (
	// PlaceholderText replaces a missing "text" attribute.
	PlaceholderText = "[missing text]"
	// PlaceholderSource replaces a missing image "source" attribute.
	PlaceholderSource = ""
)

// GlobalDefaults is the fixed fallback table for common optional
// attributes. Entity styles are merged over it before measurement and
// painting, so capabilities can read these keys unconditionally.
var GlobalDefaults = document.StyleMap{
	"padding":      0.0,
	"cornerRadius": 0.0,
	"background":   "",
	"foreground":   "",
	"borderColor":  "",
	"align":        "start",
}

// requiredAttr names an attribute a type cannot render without, and the
// placeholder substituted when the document omits it.
type requiredAttr struct {
	key         string
	placeholder any
}

// requiredAttrs is the per-type required-attribute table.
var requiredAttrs = map[string][]requiredAttr{
	"Text":   {{key: "text", placeholder: PlaceholderText}},
	"Button": {{key: "text", placeholder: PlaceholderText}},
	"Image":  {{key: "source", placeholder: PlaceholderSource}},
}

// ApplyDefaults merges the entity style over the global default table and
// substitutes documented placeholders for any missing required attribute of
// the type. Each substitution is reported as a RENDER_MISSING_ATTRIBUTE
// diagnostic (the caller fills in the view id).
func ApplyDefaults(typeTag string, style document.StyleMap) (document.StyleMap, errors.Diagnostics) {
	merged := style.Merged(GlobalDefaults)

	var diags errors.Diagnostics
	for _, req := range requiredAttrs[typeTag] {
		if merged.Has(req.key) {
			continue
		}
		merged[req.key] = req.placeholder
		diags.Add(errors.ErrCodeMissingAttribute, "", "",
			"type %s requires attribute %q; using placeholder", typeTag, req.key)
	}
	return merged, diags
}
