package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.InputPort != "Sparrow 8x60" || cfg.ReleaseAfterMs != 250 || cfg.PollIntervalMs != 10 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if !cfg.NavOnNonzero {
		t.Error("navOnNonzero should default to true")
	}
}

func TestLoadConfigLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"outputPort": "HUI Out", "releaseAfterMs": 500, "navOnNonzero": false}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.OutputPort != "HUI Out" || cfg.ReleaseAfterMs != 500 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.NavOnNonzero {
		t.Error("navOnNonzero=false not applied")
	}
	if cfg.InputPort != "Sparrow 8x60" {
		t.Errorf("unset field lost its default: %q", cfg.InputPort)
	}
}

func TestMapperDefaultIsControllerKeyed(t *testing.T) {
	m, err := DefaultConfig().Mapper()
	if err != nil {
		t.Fatalf("Mapper: %v", err)
	}
	z, ok := m.Zone(CCEvent{Controller: 11})
	if !ok || z != 0 {
		t.Errorf("CC11 -> (%d,%v), want (0,true)", z, ok)
	}
}

func TestMapperChannelKeyed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChannelKeyed = true
	m, err := cfg.Mapper()
	if err != nil {
		t.Fatalf("Mapper: %v", err)
	}
	z, ok := m.Zone(CCEvent{Channel: 4, Controller: 5})
	if !ok || z != 4 {
		t.Errorf("ch4/CC5 -> (%d,%v), want (4,true)", z, ok)
	}
}

func TestMapperCustomTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CCToZone = map[string]int{
		"20": 0, "21": 1, "22": 2, "23": 3,
		"24": 4, "25": 5, "26": 6, "27": 7,
	}
	m, err := cfg.Mapper()
	if err != nil {
		t.Fatalf("Mapper: %v", err)
	}
	z, ok := m.Zone(CCEvent{Controller: 23})
	if !ok || z != 3 {
		t.Errorf("CC23 -> (%d,%v), want (3,true)", z, ok)
	}
	if _, ok := m.Zone(CCEvent{Controller: 11}); ok {
		t.Error("default CC11 still mapped after override")
	}
}

func TestMapperRejectsBadTables(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CCToZone = map[string]int{"20": 0} // zones 1-7 unsourced
	if _, err := cfg.Mapper(); err == nil {
		t.Error("incomplete table accepted")
	}

	cfg = DefaultConfig()
	cfg.CCToZone = map[string]int{"x": 0}
	if _, err := cfg.Mapper(); err == nil {
		t.Error("non-numeric CC key accepted")
	}

	cfg = DefaultConfig()
	cfg.ChannelKeyed = true
	cfg.ChannelCC = []uint8{1, 2, 3}
	if _, err := cfg.Mapper(); err == nil {
		t.Error("short channelCC accepted")
	}
}

func TestNavCustomTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NavCC = map[string]string{"30": "bank-left", "31": "chan-right"}
	nav, err := cfg.Nav()
	if err != nil {
		t.Fatalf("Nav: %v", err)
	}
	btn, ok := nav[30]
	if !ok || btn.Port != NavPortBankLeft {
		t.Errorf("CC30 -> %+v, want bank-left", btn)
	}
	if _, ok := nav[DEFAULT_BANK_RIGHT_CC]; ok {
		t.Error("default nav CC still mapped after override")
	}

	cfg.NavCC = map[string]string{"30": "warp-drive"}
	if _, err := cfg.Nav(); err == nil {
		t.Error("unknown button name accepted")
	}
}
