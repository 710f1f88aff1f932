package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/loomui/loomui/pkg/cache"
	"github.com/loomui/loomui/pkg/config"
	"github.com/loomui/loomui/pkg/pipeline"
)

func testCLI() *CLI {
	c := New(io.Discard, log.ErrorLevel)
	c.Config = config.Default()
	return c
}

func TestWriteArtifactDerivesPath(t *testing.T) {
	c := testCLI()
	dir := t.TempDir()
	input := filepath.Join(dir, "login.json")

	if err := c.writeArtifact([]byte("<svg/>"), pipeline.FormatSVG, input, ""); err != nil {
		t.Fatalf("writeArtifact error: %v", err)
	}

	want := filepath.Join(dir, "login.svg")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("derived output not written: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("output = %q, want the artifact bytes", data)
	}
}

func TestWriteArtifactExplicitOutput(t *testing.T) {
	c := testCLI()
	out := filepath.Join(t.TempDir(), "custom.out")

	if err := c.writeArtifact([]byte("data"), pipeline.FormatJSON, "ignored.json", out); err != nil {
		t.Fatalf("writeArtifact error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("explicit output not written: %v", err)
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir error: %v", err)
	}
	if dir != filepath.Join(base, appName) {
		t.Errorf("cacheDir = %q, want under XDG_CACHE_HOME", dir)
	}
}

func TestConfigDirRespectsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir error: %v", err)
	}
	if dir != filepath.Join(base, appName) {
		t.Errorf("configDir = %q, want under XDG_CONFIG_HOME", dir)
	}
}

func TestNewCacheBackends(t *testing.T) {
	c := testCLI()
	c.Config.Cache.Dir = t.TempDir()

	got, err := c.newCache(false)
	if err != nil {
		t.Fatalf("newCache error: %v", err)
	}
	if _, ok := got.(*cache.FileCache); !ok {
		t.Errorf("newCache(false) = %T, want *cache.FileCache", got)
	}

	got, err = c.newCache(true)
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, ok := got.(*cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want *cache.NullCache", got)
	}

	c.Config.Cache.Backend = config.BackendNone
	got, _ = c.newCache(false)
	if _, ok := got.(*cache.NullCache); !ok {
		t.Errorf("backend none = %T, want *cache.NullCache", got)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := testCLI().RootCommand()

	want := map[string]bool{
		"render": false, "inspect": false, "preview": false,
		"serve": false, "screens": false, "cache": false, "completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
