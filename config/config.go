package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// PromptConfig seeds one prompt on the surface
type PromptConfig struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight,omitempty"`
	CC     int     `json:"cc"`
	Color  string  `json:"color,omitempty"`
}

// LayoutConfig holds the grid breakpoint rule
type LayoutConfig struct {
	Breakpoint     int `json:"breakpoint,omitempty"`     // width units
	CompactColumns int `json:"compactColumns,omitempty"` // width <= breakpoint
	WideColumns    int `json:"wideColumns,omitempty"`
}

// MIDIConfig stores device preferences
type MIDIConfig struct {
	AutoConnect bool   `json:"autoConnect"`
	PortName    string `json:"portName,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Layout           LayoutConfig   `json:"layout,omitempty"`
	ThrottleWindowMS int            `json:"throttleWindowMs,omitempty"`
	BaseRadius       float64        `json:"baseRadius,omitempty"`
	Prompts          []PromptConfig `json:"prompts,omitempty"`
	MIDI             MIDIConfig     `json:"midi,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Breakpoint:     600,
			CompactColumns: 4,
			WideColumns:    6,
		},
		ThrottleWindowMS: 100,
		BaseRadius:       25,
		Prompts: []PromptConfig{
			{Text: "Bossa Nova", Weight: 0, CC: 0, Color: "#9900ff"},
			{Text: "Chillwave", Weight: 0, CC: 1, Color: "#5200ff"},
			{Text: "Drum and Bass", Weight: 0, CC: 2, Color: "#ff25f6"},
			{Text: "Post Punk", Weight: 0, CC: 3, Color: "#2af6de"},
			{Text: "Shoegaze", Weight: 0, CC: 4, Color: "#ffdd28"},
			{Text: "Funk", Weight: 0, CC: 5, Color: "#2af6de"},
			{Text: "Chiptune", Weight: 0, CC: 6, Color: "#9900ff"},
			{Text: "Lush Strings", Weight: 0, CC: 7, Color: "#3dffab"},
			{Text: "Sparkling Arpeggios", Weight: 0, CC: 8, Color: "#d8ff3e"},
			{Text: "Staccato Rhythms", Weight: 0, CC: 9, Color: "#d9b2ff"},
			{Text: "Punchy Kick", Weight: 0, CC: 10, Color: "#3dffab"},
			{Text: "Dubstep", Weight: 0, CC: 11, Color: "#ffdd28"},
			{Text: "K Pop", Weight: 0, CC: 12, Color: "#ff25f6"},
			{Text: "Neo Soul", Weight: 0, CC: 13, Color: "#5200ff"},
			{Text: "Trip Hop", Weight: 0, CC: 14, Color: "#d8ff3e"},
			{Text: "Thrash", Weight: 0, CC: 15, Color: "#d9b2ff"},
		},
		MIDI: MIDIConfig{AutoConnect: false},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "promptdj"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
