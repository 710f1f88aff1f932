package document

// Screen is the root owning unit for one parsed document: the ordered
// entity list plus the reference table built over it. A Screen owns its
// entities for the lifetime of one render; when a new document arrives for
// the same screen, the whole Screen is replaced rather than patched, so
// concurrent screens never share mutable state.
type Screen struct {
	Entities []*ViewSpec
	Refs     *ReferenceTable
}

// Entity returns the entity for a handle, or nil for HandleRoot (the
// implicit root has no ViewSpec).
func (s *Screen) Entity(h Handle) *ViewSpec {
	if h == HandleRoot {
		return nil
	}
	return s.Entities[h]
}

// Lookup returns the entity with the given id.
func (s *Screen) Lookup(id string) (*ViewSpec, bool) {
	h, ok := s.Refs.Resolve(id)
	if !ok || h == HandleRoot {
		return nil, false
	}
	return s.Entities[h], true
}

// Views returns the renderable entities in declaration order,
// excluding guidelines.
func (s *Screen) Views() []*ViewSpec {
	out := make([]*ViewSpec, 0, len(s.Entities))
	for _, e := range s.Entities {
		if !e.IsGuideline() {
			out = append(out, e)
		}
	}
	return out
}

// Guidelines returns the guideline entities in declaration order.
func (s *Screen) Guidelines() []*ViewSpec {
	var out []*ViewSpec
	for _, e := range s.Entities {
		if e.IsGuideline() {
			out = append(out, e)
		}
	}
	return out
}
