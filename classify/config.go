package classify

import (
	"encoding/json"
	"fmt"

	"github.com/sarchlab/pmicdump/fileio"
)

// Config holds the thresholds of the critical-change check.
type Config struct {
	// FullScale is the raw-value range that a drift is measured against.
	// It is empirical and not address-specific. Default: 440.
	FullScale float64 `json:"full_scale"`

	// CriticalPercent is the drift, in percent of FullScale, above which a
	// change is critical. Default: 23.
	CriticalPercent float64 `json:"critical_percent"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() *Config {
	return &Config{
		FullScale:       440,
		CriticalPercent: 23,
	}
}

// LoadConfig loads a Config from a JSON file. Keys missing from the file keep
// their defaults.
func LoadConfig(store fileio.Store, path string) (*Config, error) {
	data, err := store.ReadBytes(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classify config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse classify config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c *Config) SaveConfig(store fileio.Store, path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize classify config: %w", err)
	}

	if err := store.WriteBytes(path, data); err != nil {
		return fmt.Errorf("failed to write classify config file: %w", err)
	}

	return nil
}

// Validate checks that the thresholds are usable.
func (c *Config) Validate() error {
	if c.FullScale <= 0 {
		return fmt.Errorf("full_scale must be > 0")
	}
	if c.CriticalPercent < 0 {
		return fmt.Errorf("critical_percent must be >= 0")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	return &Config{
		FullScale:       c.FullScale,
		CriticalPercent: c.CriticalPercent,
	}
}
