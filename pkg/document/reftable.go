package document

import (
	"strings"

	"github.com/loomui/loomui/pkg/errors"
)

// Handle is a stable reference to an entity within one screen.
// Handles are assigned in declaration order before any constraint is
// resolved, so a view may anchor to a sibling declared after it.
type Handle int

// HandleRoot is the handle of the implicit viewport root. It is always
// present and always resolvable; documents refer to it as "parent".
const HandleRoot Handle = -1

// RootID is the reserved id of the implicit viewport root.
const RootID = "parent"

// ReferenceTable maps entity ids to handles. It is built once per screen and
// read-only afterwards; every later pipeline stage shares the same table.
type ReferenceTable struct {
	byID map[string]Handle
	ids  []string // handle -> id
}

// BuildReferenceTable assigns a handle to every entity in declaration order.
// Returns a DOCUMENT_DUPLICATE_ID error if two entities share an id, or a
// DOCUMENT_MALFORMED error if an entity claims the reserved root id.
func BuildReferenceTable(entities []*ViewSpec) (*ReferenceTable, error) {
	t := &ReferenceTable{
		byID: make(map[string]Handle, len(entities)),
		ids:  make([]string, len(entities)),
	}
	for i, e := range entities {
		if e.ID == RootID {
			return nil, errors.New(errors.ErrCodeMalformed, "entity id %q is reserved for the viewport root", RootID)
		}
		if _, exists := t.byID[e.ID]; exists {
			return nil, errors.New(errors.ErrCodeDuplicateID, "duplicate entity id %q", e.ID)
		}
		t.byID[e.ID] = Handle(i)
		t.ids[i] = e.ID
	}
	return t, nil
}

// Resolve returns the handle for an entity id. The reserved id "parent"
// resolves to HandleRoot and always succeeds.
func (t *ReferenceTable) Resolve(id string) (Handle, bool) {
	if id == RootID {
		return HandleRoot, true
	}
	h, ok := t.byID[id]
	return h, ok
}

// ResolveAnchor resolves a raw anchor reference of the form
// "parent.<side>" or "<id>.<side>". The side is split at the last dot so
// entity ids containing dots remain addressable.
//
// Returns a LAYOUT_UNRESOLVED_REFERENCE error when the reference is not of
// anchor form or names an unknown entity. Anchor validity is deliberately
// not checked at parse time - it requires the full entity set.
func (t *ReferenceTable) ResolveAnchor(ref string) (Handle, Side, error) {
	dot := strings.LastIndexByte(ref, '.')
	if dot <= 0 || dot == len(ref)-1 {
		return 0, 0, errors.New(errors.ErrCodeUnresolvedReference, "anchor %q is not of form <id>.<side>", ref)
	}
	side, ok := ParseSide(ref[dot+1:])
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeUnresolvedReference, "anchor %q has unknown side %q", ref, ref[dot+1:])
	}
	h, ok := t.Resolve(ref[:dot])
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeUnresolvedReference, "anchor %q references unknown entity %q", ref, ref[:dot])
	}
	return h, side, nil
}

// ID returns the entity id for a handle. HandleRoot maps to RootID.
func (t *ReferenceTable) ID(h Handle) string {
	if h == HandleRoot {
		return RootID
	}
	return t.ids[h]
}

// Len returns the number of declared entities (excluding the implicit root).
func (t *ReferenceTable) Len() int { return len(t.ids) }
