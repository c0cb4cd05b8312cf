package machine

import "fmt"

// Config holds the physical parameters of a machine instance.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// Width is the number of needle positions per bed.
	Width int `json:"width" yaml:"width" mapstructure:"width"`

	// Carriers is the number of yarn carriers, addressed 1..Carriers.
	Carriers int `json:"carriers" yaml:"carriers" mapstructure:"carriers"`

	// MinRacking and MaxRacking bound the signed bed offset.
	MinRacking int `json:"min_racking" yaml:"min_racking" mapstructure:"min_racking"`
	MaxRacking int `json:"max_racking" yaml:"max_racking" mapstructure:"max_racking"`

	// MaxLoopHold is the maximum loop stack height per needle.
	MaxLoopHold int `json:"max_loop_hold" yaml:"max_loop_hold" mapstructure:"max_loop_hold"`

	// HasSliders enables the slider needle bed pair.
	HasSliders bool `json:"has_sliders" yaml:"has_sliders" mapstructure:"has_sliders"`

	// AllowRackedSplits permits split operations at non-zero racking.
	// Most hardware requires splits at racking 0.
	AllowRackedSplits bool `json:"allow_racked_splits" yaml:"allow_racked_splits" mapstructure:"allow_racked_splits"`
}

// DefaultConfig mirrors a Shima Seiki SWG-class machine: 540 needles,
// 10 carriers, racking within ±4 and at most 4 loops per needle.
func DefaultConfig() Config {
	return Config{
		Width:       540,
		Carriers:    10,
		MinRacking:  -4,
		MaxRacking:  4,
		MaxLoopHold: 4,
		HasSliders:  true,
	}
}

func (c Config) validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("machine: width must be positive, got %d", c.Width)
	}
	if c.Carriers <= 0 {
		return fmt.Errorf("machine: carrier count must be positive, got %d", c.Carriers)
	}
	if c.MinRacking > 0 || c.MaxRacking < 0 {
		return fmt.Errorf("machine: racking bounds [%d, %d] must include 0", c.MinRacking, c.MaxRacking)
	}
	if c.MaxLoopHold <= 0 {
		return fmt.Errorf("machine: max loop hold must be positive, got %d", c.MaxLoopHold)
	}
	return nil
}
