package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := NewLoader().Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.Source != want.Source || cfg.Render.Style != want.Render.Style || cfg.Server.Addr != want.Server.Addr {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if !cfg.Render.Axis || !cfg.Server.Watch {
		t.Errorf("boolean defaults lost: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "toldot.yaml")
	data := "source: people.yaml\nrender:\n  style: handdrawn\n  zoom: 2.5\nserver:\n  addr: \":9000\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader()
	cfg, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != "people.yaml" || cfg.Render.Style != "handdrawn" || cfg.Render.Zoom != 2.5 || cfg.Server.Addr != ":9000" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Render.Language != Default().Render.Language {
		t.Errorf("unset keys should keep defaults, Language = %q", cfg.Render.Language)
	}
	if l.FileUsed() != path {
		t.Errorf("FileUsed() = %q, want %q", l.FileUsed(), path)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("an explicit missing config file should fail")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "toldot.yaml")
	if err := os.WriteFile(path, []byte("render:\n  style: handdrawn\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TOLDOT_RENDER_STYLE", "simple")
	t.Setenv("TOLDOT_SOURCE", "https://api.example.org")

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Style != "simple" {
		t.Errorf("Style = %q, want env override", cfg.Render.Style)
	}
	if cfg.Source != "https://api.example.org" {
		t.Errorf("Source = %q, want env override", cfg.Source)
	}
}

func TestBindFlag(t *testing.T) {
	isolate(t)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("source", "", "")
	if err := fs.Parse([]string{"--source", "data.json"}); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TOLDOT_SOURCE", "from-env.json")

	l := NewLoader()
	if err := l.BindFlag("source", fs.Lookup("source")); err != nil {
		t.Fatal(err)
	}
	if err := l.BindFlag("missing", fs.Lookup("missing")); err == nil {
		t.Error("binding an undefined flag should fail")
	}
	cfg, err := l.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source != "data.json" {
		t.Errorf("Source = %q, flag should win over env", cfg.Source)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# toldot configuration") {
		t.Error("config file should start with the header comment")
	}
	var got Config
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("written config is not YAML: %v", err)
	}
	if got.Server.Addr != Default().Server.Addr {
		t.Errorf("Server.Addr = %q", got.Server.Addr)
	}
	if err := WriteDefault(path); err == nil {
		t.Error("WriteDefault should refuse to overwrite")
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/xdg/toldot" {
		t.Errorf("Dir() = %q", dir)
	}
	path, _ := DefaultPath()
	if path != "/tmp/xdg/toldot/config.yaml" {
		t.Errorf("DefaultPath() = %q", path)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Render.Zoom = 3
	opts := cfg.PipelineOptions()
	if opts.Zoom != 3 || opts.Style != cfg.Render.Style || opts.Source != cfg.Source {
		t.Errorf("PipelineOptions() = %+v", opts)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("default config should yield valid options: %v", err)
	}
}
