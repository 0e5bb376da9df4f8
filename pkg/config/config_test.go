package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[keyboard]
indent_unit = "\t"
languages = ["highlevel"]

[suggest]
limit = 3
fold_case = false
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Keyboard.IndentUnit != "\t" || !reflect.DeepEqual(cfg.Keyboard.Languages, []string{"highlevel"}) {
		t.Errorf("keyboard = %+v", cfg.Keyboard)
	}
	if cfg.Suggest.Limit != 3 || cfg.Suggest.FoldCase {
		t.Errorf("suggest = %+v", cfg.Suggest)
	}
	// untouched sections keep defaults
	if cfg.Server.MaxContext != 256 || cfg.Keyboard.RepeatIntervalMs != 100 {
		t.Errorf("defaults lost: %+v %+v", cfg.Server, cfg.Keyboard)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// limit has the wrong type, so the typed decode fails
	path := writeConfig(t, `
[suggest]
limit = "lots"
cache_size = 16

[server]
max_context = 64
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Suggest.Limit != 12 {
		t.Errorf("bad limit should fall back to default, got %d", cfg.Suggest.Limit)
	}
	if cfg.Suggest.CacheSize != 16 || cfg.Server.MaxContext != 64 {
		t.Errorf("valid values not recovered: %+v %+v", cfg.Suggest, cfg.Server)
	}
}

func TestLoadConfigGarbage(t *testing.T) {
	path := writeConfig(t, "this is [not toml")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSanitize(t *testing.T) {
	path := writeConfig(t, `
[keyboard]
indent_unit = ""
languages = []

[cli]
default_limit = 40
`)
	cfg, _ := LoadConfig(path)
	def := DefaultConfig()
	if cfg.Keyboard.IndentUnit != def.Keyboard.IndentUnit {
		t.Errorf("indent_unit = %q", cfg.Keyboard.IndentUnit)
	}
	if !reflect.DeepEqual(cfg.Keyboard.Languages, def.Keyboard.Languages) {
		t.Errorf("languages = %v", cfg.Keyboard.Languages)
	}
	if cfg.CLI.DefaultLimit != def.CLI.DefaultLimit {
		t.Errorf("default_limit = %d", cfg.CLI.DefaultLimit)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(reloaded, DefaultConfig()) {
		t.Errorf("saved config does not round trip: %+v", reloaded)
	}
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[suggest]\nlimit = 4\n")
	cfg, used, err := LoadConfigWithPriority(path)
	if err != nil {
		t.Fatalf("LoadConfigWithPriority: %v", err)
	}
	if used != path || cfg.Suggest.Limit != 4 {
		t.Errorf("used %s, limit %d", used, cfg.Suggest.Limit)
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	limit := 5
	off := false
	if err := cfg.Update(path, &limit, &off, []string{"english"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Suggest.Limit != 5 || reloaded.Suggest.FoldCase || len(reloaded.Keyboard.Languages) != 1 {
		t.Errorf("update not persisted: %+v %+v", reloaded.Suggest, reloaded.Keyboard)
	}
}

func TestDerivedSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Suggest.Limit = 7
	cfg.Dict.MinWeight = 3

	st := cfg.SessionSettings()
	if st.SuggestLimit != 7 || st.IndentUnit != "    " || !st.FoldCase || st.CacheSize != 128 {
		t.Errorf("SessionSettings = %+v", st)
	}
	if opts := cfg.DictOptions(); opts.MinWeight != 3 || opts.MaxWords != 50000 {
		t.Errorf("DictOptions = %+v", opts)
	}
}
