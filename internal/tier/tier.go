// Package tier maps subscription tiers to product quota limits.
//
// Limits are product guardrails, not security boundaries: the checks built
// on them are read-then-act, and a racing pair of creations can overshoot a
// limit by one. That is accepted.
package tier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits holds the per-tier quota ceilings.
type Limits struct {
	// DraftLimit is the maximum number of unpublished documents an owner
	// may hold. 0 means none allowed; use Unlimited for no ceiling.
	DraftLimit int `yaml:"draft_limit"`

	// PublishedLimit is the maximum number of published documents.
	PublishedLimit int `yaml:"published_limit"`
}

// Unlimited disables a limit when used as its value.
const Unlimited = -1

// AllowsDraft reports whether an owner with count existing drafts may
// create another.
func (l Limits) AllowsDraft(count int) bool {
	return l.DraftLimit == Unlimited || count < l.DraftLimit
}

// AllowsPublish reports whether an owner with count published documents may
// publish another.
func (l Limits) AllowsPublish(count int) bool {
	return l.PublishedLimit == Unlimited || count < l.PublishedLimit
}

// Config is the static tier-to-limits mapping.
type Config struct {
	Tiers map[string]Limits `yaml:"tiers"`
}

// DefaultTier is used when a lookup names an unknown tier.
const DefaultTier = "free"

// DefaultConfig returns the built-in mapping used when no config file is
// supplied.
func DefaultConfig() Config {
	return Config{Tiers: map[string]Limits{
		"free": {DraftLimit: 3, PublishedLimit: 1},
		"pro":  {DraftLimit: 25, PublishedLimit: 10},
		"team": {DraftLimit: Unlimited, PublishedLimit: Unlimited},
	}}
}

// Load reads a tier config from a YAML file.
//
// Expected shape:
//
//	tiers:
//	  free:
//	    draft_limit: 3
//	    published_limit: 1
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("tier config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tier config %s: %w", path, err)
	}
	if len(cfg.Tiers) == 0 {
		return Config{}, fmt.Errorf("tier config %s: no tiers defined", path)
	}
	return cfg, nil
}

// For returns the limits for the named tier, falling back to DefaultTier
// for unknown names.
func (c Config) For(tierName string) Limits {
	if l, ok := c.Tiers[tierName]; ok {
		return l
	}
	return c.Tiers[DefaultTier]
}
