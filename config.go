package marquee

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

//go:embed page.yaml
var defaultPageYAML []byte

// Duration is a time.Duration that reads Go duration strings ("200ms", "2s")
// from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: duration must be a string: %w", value.Line, err)
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

// PageConfig is the declarative description of a landing page: the records
// each section iterates and the timing every animation uses.
type PageConfig struct {
	Title    string          `yaml:"title"`
	Tagline  string          `yaml:"tagline"`
	Nav      []string        `yaml:"nav"`
	Timing   TimingConfig    `yaml:"timing"`
	Features []FeatureRecord `yaml:"features"`
	Stats    []StatRecord    `yaml:"stats"`
	Showcase ShowcaseConfig  `yaml:"showcase"`
	Footer   []FooterColumn  `yaml:"footer"`
}

// TimingConfig holds every delay and duration used by the page.
type TimingConfig struct {
	// SensorMargin expands (positive) or shrinks (negative) the viewport's
	// leading edge for every section's visibility trigger.
	SensorMargin   float64       `yaml:"sensor_margin"`
	ShowcaseMargin float64       `yaml:"showcase_margin"`
	Hero           StaggerConfig `yaml:"hero"`
	Heading        StaggerConfig `yaml:"heading"`
	Items          StaggerConfig `yaml:"items"`
	ShowcaseItems  StaggerConfig `yaml:"showcase_items"`
	Underline      StaggerConfig `yaml:"underline"`
	CTA            StaggerConfig `yaml:"cta"`
	Counter        CounterConfig `yaml:"counter"`
}

// StaggerConfig is the YAML form of a uniform stagger group.
type StaggerConfig struct {
	BaseDelay    Duration `yaml:"base_delay"`
	PerItemDelay Duration `yaml:"per_item_delay"`
	ItemDuration Duration `yaml:"item_duration"`
	Easing       string   `yaml:"easing"`
}

// Group builds an n-item stagger group from the config.
func (c StaggerConfig) Group(n int) StaggerGroup {
	return NewStaggerGroup(n, c.BaseDelay.D(), c.PerItemDelay.D(), c.ItemDuration.D(), EasingByName(c.Easing))
}

// CounterConfig is the timing shared by every stat counter.
type CounterConfig struct {
	TotalDuration Duration `yaml:"total_duration"`
	TickInterval  Duration `yaml:"tick_interval"`
}

// Spec returns a counter spec counting to target.
func (c CounterConfig) Spec(target int) CounterSpec {
	return CounterSpec{Target: target, TotalDuration: c.TotalDuration.D(), TickInterval: c.TickInterval.D()}
}

// ShowcaseConfig seeds the synthetic playlist generator.
type ShowcaseConfig struct {
	Seed  uint64 `yaml:"seed"`
	Count int    `yaml:"count"`
}

// FooterColumn is a static list of footer links.
type FooterColumn struct {
	Title string   `yaml:"title"`
	Links []string `yaml:"links"`
}

// DefaultPageConfig returns the built-in page.
func DefaultPageConfig() *PageConfig {
	cfg, err := ParsePageConfig(defaultPageYAML)
	if err != nil {
		panic("marquee: embedded page.yaml: " + err.Error())
	}
	return cfg
}

// LoadPageConfig reads a page description from path.
func LoadPageConfig(path string) (*PageConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("page config %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read page config: %w", err)
	}
	return ParsePageConfig(data)
}

// ParsePageConfig decodes and validates a YAML page description.
func ParsePageConfig(data []byte) (*PageConfig, error) {
	var cfg PageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse page config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every timing and record for values that can never animate.
func (c *PageConfig) Validate() error {
	groups := []struct {
		name string
		cfg  StaggerConfig
	}{
		{"hero", c.Timing.Hero},
		{"heading", c.Timing.Heading},
		{"items", c.Timing.Items},
		{"showcase_items", c.Timing.ShowcaseItems},
		{"underline", c.Timing.Underline},
		{"cta", c.Timing.CTA},
	}
	for _, g := range groups {
		if err := ValidateGroup(g.cfg.Group(1)); err != nil {
			return fmt.Errorf("timing.%s: %w", g.name, err)
		}
		if g.cfg.Easing != "" && !knownEasing(g.cfg.Easing) {
			return fmt.Errorf("timing.%s: %w", g.name,
				configError("ParsePageConfig", "easing", g.cfg.Easing, "unknown easing"))
		}
	}
	for i, st := range c.Stats {
		if err := c.Timing.Counter.Spec(st.Target).Validate(); err != nil {
			return fmt.Errorf("stats[%d]: %w", i, err)
		}
		if st.Color != "" {
			if _, err := ParseHexColor(st.Color); err != nil {
				return fmt.Errorf("stats[%d]: %w", i, err)
			}
		}
	}
	if c.Showcase.Count < 0 {
		return configError("ParsePageConfig", "showcase.count", c.Showcase.Count, "must not be negative")
	}
	return nil
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"easeIn":     ease.InQuad,
	"easeOut":    ease.OutQuad,
	"easeInOut":  ease.InOutQuad,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
	"outBack":    ease.OutBack,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

func knownEasing(name string) bool {
	_, ok := easings[name]
	return ok
}

// EasingByName maps a curve name to a gween easing function. Unknown or empty
// names fall back to ease-out.
func EasingByName(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.OutQuad
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, configError("ParseHexColor", "color", s, "want #rrggbb or #rrggbbaa")
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, configError("ParseHexColor", "color", s, "not hexadecimal")
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
