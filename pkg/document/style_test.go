package document

import "testing"

func TestStyleMapAccessors(t *testing.T) {
	m := StyleMap{
		"text":    "hello",
		"padding": 2.0,
		"bold":    true,
	}

	if got := m.String("text"); got != "hello" {
		t.Errorf("String(text) = %q, want %q", got, "hello")
	}
	if got := m.String("missing"); got != "" {
		t.Errorf("String(missing) = %q, want empty", got)
	}
	if got := m.StringOr("missing", "fallback"); got != "fallback" {
		t.Errorf("StringOr(missing) = %q, want fallback", got)
	}

	if f, ok := m.Float("padding"); !ok || f != 2.0 {
		t.Errorf("Float(padding) = %v, %v, want 2.0, true", f, ok)
	}
	if got := m.FloatOr("missing", 7); got != 7 {
		t.Errorf("FloatOr(missing) = %v, want 7", got)
	}
	if !m.Bool("bold") {
		t.Error("Bool(bold) should be true")
	}
	if m.Bool("text") {
		t.Error("Bool on a string should be false")
	}
	if !m.Has("padding") || m.Has("missing") {
		t.Error("Has should report presence regardless of type")
	}
}

func TestStyleMapMerged(t *testing.T) {
	base := StyleMap{"text": "hello", "padding": 2.0}
	defaults := StyleMap{"padding": 1.0, "background": "235"}

	merged := base.Merged(defaults)
	if got := merged.FloatOr("padding", 0); got != 2.0 {
		t.Errorf("merged padding = %v, declared value should win", got)
	}
	if got := merged.String("background"); got != "235" {
		t.Errorf("merged background = %q, want default filled", got)
	}

	// Inputs untouched
	if base.Has("background") {
		t.Error("Merged should not modify the receiver")
	}
	if got := defaults.FloatOr("padding", 0); got != 1.0 {
		t.Error("Merged should not modify the defaults")
	}
}
