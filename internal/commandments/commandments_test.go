package commandments_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tristanpoland/DivinePL/internal/commandments"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := commandments.Default()
	if !cfg.Sabbath.Enforce {
		t.Error("sabbath enforcement should default on")
	}
	if !cfg.Blessings.Functions || !cfg.Blessings.Containers || !cfg.Blessings.Modules {
		t.Errorf("blessing requirements should default on, got %+v", cfg.Blessings)
	}
	want := []string{"devil", "satan", "demon", "kill"}
	if !reflect.DeepEqual(cfg.Practices.Forbidden, want) {
		t.Errorf("forbidden defaults %v", cfg.Practices.Forbidden)
	}
	if len(cfg.Practices.Allowed) != 0 {
		t.Errorf("allowed defaults %v", cfg.Practices.Allowed)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), commandments.FileName, `
[sabbath]
enforce = false

[practices]
forbidden = ["mammon"]
allowed = ["killCount"]

[blessings]
functions = false
containers = false
`)
	cfg, err := commandments.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sabbath.Enforce {
		t.Error("enforce not overridden")
	}
	if cfg.Blessings.Functions || cfg.Blessings.Containers {
		t.Errorf("blessing overrides not applied, got %+v", cfg.Blessings)
	}
	if !cfg.Blessings.Modules {
		t.Error("absent modules key must keep the default")
	}
	if !reflect.DeepEqual(cfg.Practices.Forbidden, []string{"mammon"}) {
		t.Errorf("forbidden %v", cfg.Practices.Forbidden)
	}
	if !reflect.DeepEqual(cfg.Practices.Allowed, []string{"killCount"}) {
		t.Errorf("allowed %v", cfg.Practices.Allowed)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), commandments.FileName, `
[practices]
allowed = ["overkill"]
`)
	cfg, err := commandments.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Sabbath.Enforce {
		t.Error("absent sabbath section must keep default enforcement")
	}
	if !cfg.Blessings.Functions || !cfg.Blessings.Containers || !cfg.Blessings.Modules {
		t.Errorf("absent blessings section must keep defaults, got %+v", cfg.Blessings)
	}
	if len(cfg.Practices.Forbidden) != 4 {
		t.Errorf("absent forbidden list must keep defaults, got %v", cfg.Practices.Forbidden)
	}
	if !reflect.DeepEqual(cfg.Practices.Allowed, []string{"overkill"}) {
		t.Errorf("allowed %v", cfg.Practices.Allowed)
	}
}

func TestLoadUnknownKeysIgnored(t *testing.T) {
	path := writeFile(t, t.TempDir(), commandments.FileName, `
[sabbath]
enforce = true
future_knob = "ignored"

[tithing]
percent = 10
`)
	if _, err := commandments.Load(path); err != nil {
		t.Fatalf("unknown keys must not fail: %v", err)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), commandments.FileName, "[sabbath\nenforce =")
	if _, err := commandments.Load(path); err == nil {
		t.Error("malformed TOML must fail")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, commandments.FileName, "[sabbath]\nenforce = false\n")
	nested := filepath.Join(root, "scriptures", "psalms")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := commandments.Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want file under %q", path, root)
	}
}

func TestForScriptWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "main.divine")
	cfg, err := commandments.ForScript(script)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, commandments.Default()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestForScriptWithManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, commandments.FileName, "[blessings]\nfunctions = false\n")
	script := filepath.Join(dir, "main.divine")
	cfg, err := commandments.ForScript(script)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Blessings.Functions {
		t.Error("manifest override not applied")
	}
}
