package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config is the startup configuration. It is read once and never mutated
// afterwards; flags may override individual fields before the engine starts.
type Config struct {
	InputPort  string `json:"inputPort"`
	OutputPort string `json:"outputPort"`
	NavPort    string `json:"navPort,omitempty"` // empty disables navigation

	// Optional serial fader input, used instead of InputPort when set.
	SerialDevice string `json:"serialDevice,omitempty"`
	SerialBaud   int    `json:"serialBaud,omitempty"`

	ReleaseAfterMs int `json:"releaseAfterMs"`
	PollIntervalMs int `json:"pollIntervalMs"`

	ChannelKeyed     bool `json:"channelKeyed,omitempty"`
	RestrictChannels bool `json:"restrictChannels,omitempty"`
	NavOnNonzero     bool `json:"navOnNonzero"`

	// CCToZone overrides DEFAULT_CC_TO_ZONE (controller-keyed mode).
	// JSON object keys are CC numbers as strings.
	CCToZone map[string]int `json:"ccToZone,omitempty"`
	// ChannelCC overrides DEFAULT_CHANNEL_CC (channel-keyed mode); exactly 8
	// entries, the expected controller per channel.
	ChannelCC []uint8 `json:"channelCC,omitempty"`
	// NavCC maps CC numbers (as string keys) to one of "bank-left",
	// "bank-right", "chan-left", "chan-right".
	NavCC map[string]string `json:"navCC,omitempty"`
}

// DefaultConfig returns the configuration matching the reference hardware
// setup: Sparrow faders in, IAC virtual port out, Supernova navigation.
func DefaultConfig() *Config {
	return &Config{
		InputPort:      "Sparrow 8x60",
		OutputPort:     "IAC Driver CC_to_HUI",
		NavPort:        "Supernova II",
		SerialBaud:     115200,
		ReleaseAfterMs: 250,
		PollIntervalMs: 10,
		NavOnNonzero:   true,
	}
}

// ConfigPath returns the default config file location.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midi-cc-to-hui", "config.json"), nil
}

// LoadConfig reads the config file at path (or the default location when
// path is empty), layering it over the defaults. A missing file is not an
// error: the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ReleaseAfter returns the fader release timeout as a duration.
func (c *Config) ReleaseAfter() time.Duration {
	return time.Duration(c.ReleaseAfterMs) * time.Millisecond
}

// PollInterval returns the loop poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Mapper builds the zone mapper selected by the configuration.
func (c *Config) Mapper() (ZoneMapper, error) {
	if c.ChannelKeyed {
		cc := DEFAULT_CHANNEL_CC
		if len(c.ChannelCC) > 0 {
			if len(c.ChannelCC) != NumZones {
				return nil, fmt.Errorf("channelCC has %d entries, want %d", len(c.ChannelCC), NumZones)
			}
			copy(cc[:], c.ChannelCC)
		}
		return NewChannelZones(cc), nil
	}

	zones := DEFAULT_CC_TO_ZONE
	if len(c.CCToZone) > 0 {
		zones = make(map[uint8]int, len(c.CCToZone))
		for key, z := range c.CCToZone {
			cc, err := strconv.ParseUint(key, 10, 7)
			if err != nil {
				return nil, fmt.Errorf("ccToZone key %q: %w", key, err)
			}
			zones[uint8(cc)] = z
		}
	}
	m, err := NewControllerZones(zones, c.RestrictChannels)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Nav builds the navigation mapping table.
func (c *Config) Nav() (NavMap, error) {
	if len(c.NavCC) == 0 {
		return DEFAULT_NAV_MAP, nil
	}
	nav := make(NavMap, len(c.NavCC))
	for key, name := range c.NavCC {
		cc, err := strconv.ParseUint(key, 10, 7)
		if err != nil {
			return nil, fmt.Errorf("navCC key %q: %w", key, err)
		}
		btn, ok := navButtonsByName[name]
		if !ok {
			return nil, fmt.Errorf("navCC %s: unknown button %q", key, name)
		}
		nav[uint8(cc)] = btn
	}
	return nav, nil
}
