package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed_default.yaml
var embeddedSeed []byte

// SeedStaff is one staff role created when a store starts empty
type SeedStaff struct {
	Title       string `yaml:"title"`
	IsAvailable bool   `yaml:"isAvailable"`
}

// SeedAnnouncement is one announcement created when a store starts empty
type SeedAnnouncement struct {
	Text     string `yaml:"text"`
	IsActive bool   `yaml:"isActive"`
	Priority int    `yaml:"priority"`
}

// SeedVideoConfig is the initial legacy video
type SeedVideoConfig struct {
	VideoID string `yaml:"videoId"`
	Title   string `yaml:"title"`
}

// SeedContent is the initial content of a fresh store
type SeedContent struct {
	Staff         []SeedStaff        `yaml:"staff"`
	Announcements []SeedAnnouncement `yaml:"announcements"`
	VideoConfig   *SeedVideoConfig   `yaml:"videoConfig"`
}

// LoadSeed reads the seed file named by cfg, falling back to the embedded defaults
func LoadSeed(cfg SeedConfig) (*SeedContent, error) {
	buf := embeddedSeed
	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %s: %w", cfg.File, err)
		}
		buf = data
	}

	seed := &SeedContent{}
	if err := yaml.Unmarshal(buf, seed); err != nil {
		return nil, fmt.Errorf("in seed file: %w", err)
	}

	for i, s := range seed.Staff {
		if s.Title == "" {
			return nil, fmt.Errorf("seed staff #%d has an empty title", i+1)
		}
	}
	for i, a := range seed.Announcements {
		if a.Text == "" {
			return nil, fmt.Errorf("seed announcement #%d has empty text", i+1)
		}
	}
	if seed.VideoConfig != nil && seed.VideoConfig.VideoID == "" {
		seed.VideoConfig = nil
	}

	return seed, nil
}

// DefaultSeed returns the embedded seed content
func DefaultSeed() *SeedContent {
	seed, err := LoadSeed(SeedConfig{})
	if err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return seed
}
