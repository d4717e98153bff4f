package scheduler

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/libscan/core/ranking"
)

func TestRefreshInterval(t *testing.T) {
	cases := []struct {
		target, libs, want int
	}{
		{10, 100, 10},
		{10, 101, 11},
		{100, 2, 1},
		{0, 250, 3},
		{5, 0, 1},
	}
	for _, c := range cases {
		got := Config{RefreshTarget: c.target}.RefreshInterval(c.libs)
		if got != c.want {
			t.Fatalf("target %d libs %d: want %d got %d", c.target, c.libs, c.want, got)
		}
	}
}

func TestDecodeConfigYAML(t *testing.T) {
	data := "refresh_target: 20\nweights:\n  score: 1\n  rarity: 0\n  value: 1\n"
	cfg, err := DecodeConfig(bytes.NewBufferString(data), "yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.RefreshTarget != 20 || cfg.Weights.Score != 1 || cfg.Weights.Value != 1 {
		t.Fatalf("bad cfg %#v", cfg)
	}
}

func TestDecodeConfigDefaults(t *testing.T) {
	cfg, err := DecodeConfig(bytes.NewBufferString(`{}`), "json")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.RefreshTarget != DefaultRefreshTarget || cfg.Weights != ranking.DefaultWeights() {
		t.Fatalf("defaults not applied %#v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sched.json")
	if err := os.WriteFile(path, []byte(`{"refresh_target":5,"weights":{"score":1,"signup":2}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RefreshTarget != 5 || cfg.Weights.Signup != 2 {
		t.Fatalf("bad cfg %#v", cfg)
	}
	if _, err := LoadConfig(path + ".txt"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	if _, err := DecodeConfig(bytes.NewBufferString("{}"), "toml"); err == nil {
		t.Fatalf("expected format error")
	}
	if _, err := DecodeConfig(bytes.NewBufferString("refresh_target: [1"), "yaml"); err == nil {
		t.Fatalf("expected yaml error")
	}
	if _, err := DecodeConfig(bytes.NewBufferString(`{"weights":{"score":-1}}`), "json"); err == nil {
		t.Fatalf("expected validation error")
	}
}
