package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/snippets", filepath.Join(home, "snippets")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExpandTilde(tt.in); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGlobalConfigPath_RespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", GlobalConfigDir, GlobalConfigFile)
	if got := GlobalConfigPath(); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.SnippetsDir != "" || cfg.Editor != "" {
		t.Errorf("LoadGlobalConfig() = %+v, want empty", cfg)
	}
}

func TestSaveAndLoadGlobalConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	cfg := &GlobalConfig{SnippetsDir: "/data/snips", Editor: "vim"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if loaded.SnippetsDir != "/data/snips" {
		t.Errorf("SnippetsDir = %q, want %q", loaded.SnippetsDir, "/data/snips")
	}
	if loaded.Editor != "vim" {
		t.Errorf("Editor = %q, want %q", loaded.Editor, "vim")
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	path := filepath.Join(dir, GlobalConfigDir, GlobalConfigFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("snippets_dir: [unclosed"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() on invalid YAML should error")
	}
}

func TestResolveDir_Precedence(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	// Config file sets snippets_dir
	cfg := &GlobalConfig{SnippetsDir: "/from/config"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Flag wins over everything
	t.Setenv(EnvDir, "/from/env")
	if got := ResolveDir("/from/flag"); got != "/from/flag" {
		t.Errorf("ResolveDir(flag) = %q, want /from/flag", got)
	}

	// Env wins over config
	if got := ResolveDir(""); got != "/from/env" {
		t.Errorf("ResolveDir() with env = %q, want /from/env", got)
	}

	// Config wins over default
	t.Setenv(EnvDir, "")
	ResetGlobalConfigCache()
	if got := ResolveDir(""); got != "/from/config" {
		t.Errorf("ResolveDir() with config = %q, want /from/config", got)
	}
}

func TestResolveDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvDir, "")
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	if got := ResolveDir(""); got != DefaultDir() {
		t.Errorf("ResolveDir() = %q, want default %q", got, DefaultDir())
	}
}

func TestIndexDBPath(t *testing.T) {
	want := filepath.Join("/data", CacheDirName, IndexDBFile)
	if got := IndexDBPath("/data"); got != want {
		t.Errorf("IndexDBPath() = %q, want %q", got, want)
	}
}
