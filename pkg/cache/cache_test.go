package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCacheSetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = hit=%v err=%v, want miss", hit, err)
	}

	want := []byte("snapshot bytes")
	if err := c.Set(ctx, "k1", want, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, "k1")
	if err != nil || !hit {
		t.Fatalf("Get(k1) = hit=%v err=%v, want hit", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get(k1) = %q, want %q", got, want)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("Get after expiry = hit=%v err=%v, want miss", hit, err)
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should be a no-op, got %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("Get = hit=%v err=%v, want permanent miss", hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
}

func TestDefaultKeyerStability(t *testing.T) {
	k := NewDefaultKeyer()

	if a, b := k.DocumentKey("login"), k.DocumentKey("login"); a != b {
		t.Errorf("DocumentKey not stable: %q vs %q", a, b)
	}
	if a, b := k.DocumentKey("login"), k.DocumentKey("home"); a == b {
		t.Error("different screen ids must produce different keys")
	}

	opts := LayoutKeyOpts{Width: 400, Height: 800}
	if a, b := k.LayoutKey("h1", opts), k.LayoutKey("h1", opts); a != b {
		t.Errorf("LayoutKey not stable: %q vs %q", a, b)
	}
	if a, b := k.LayoutKey("h1", opts), k.LayoutKey("h1", LayoutKeyOpts{Width: 800, Height: 400}); a == b {
		t.Error("viewport changes must change the layout key")
	}
	if a, b := k.ArtifactKey("h1", ArtifactKeyOpts{Format: "term"}), k.ArtifactKey("h1", ArtifactKeyOpts{Format: "svg"}); a == b {
		t.Error("format changes must change the artifact key")
	}
}

func TestDefaultKeyerPrefixes(t *testing.T) {
	k := NewDefaultKeyer()
	tests := []struct {
		key    string
		prefix string
	}{
		{k.DocumentKey("x"), "doc:"},
		{k.LayoutKey("h", LayoutKeyOpts{}), "layout:"},
		{k.ArtifactKey("h", ArtifactKeyOpts{}), "artifact:"},
	}
	for _, tt := range tests {
		if !strings.HasPrefix(tt.key, tt.prefix) {
			t.Errorf("key %q missing prefix %q", tt.key, tt.prefix)
		}
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	k := NewScopedKeyer(inner, "tenant:acme:")

	got := k.DocumentKey("login")
	if !strings.HasPrefix(got, "tenant:acme:") {
		t.Errorf("DocumentKey = %q, want tenant prefix", got)
	}
	if !strings.HasSuffix(got, inner.DocumentKey("login")) {
		t.Error("scoped key should wrap the inner key unchanged")
	}

	// Nil inner falls back to the default keyer.
	fallback := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(fallback.LayoutKey("h", LayoutKeyOpts{}), "p:layout:") {
		t.Error("nil inner should use the default keyer")
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("doc"))
	b := Hash([]byte("doc"))
	if a != b {
		t.Errorf("Hash not deterministic: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("len(Hash) = %d, want 64 hex chars", len(a))
	}
	if Hash([]byte("other")) == a {
		t.Error("different inputs must hash differently")
	}
}
