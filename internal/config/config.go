package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/tally-dev/tally/internal/category"
)

// Environment variables consulted by the CLI.
const (
	EnvConfigPath = "TALLY_CONFIG"
	EnvCurrency   = "TALLY_CURRENCY"
)

// DefaultPath is the config file used when neither a flag nor TALLY_CONFIG is set.
const DefaultPath = "tally.yaml"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Currency   string       `yaml:"currency"`
	Period     PeriodConfig `yaml:"period"`
	Sources    []Source     `yaml:"sources"`
	Categories Categories   `yaml:"categories,omitempty"`
	Ignore     []string     `yaml:"ignore,omitempty"`
}

// PeriodConfig controls how spending is bucketed.
type PeriodConfig struct {
	Length    string `yaml:"length"`     // "weekly" or "monthly"
	WeekStart string `yaml:"week_start"` // weekday name, weekly periods only
}

// Source describes a directory of statements in one format.
type Source struct {
	Format              string `yaml:"format"`
	Dir                 string `yaml:"dir"`
	Extension           string `yaml:"extension"`
	Encoding            string `yaml:"encoding,omitempty"`
	Delimiter           string `yaml:"delimiter,omitempty"`
	AccountName         string `yaml:"account_name,omitempty"`
	AccountFromFilename bool   `yaml:"account_from_filename,omitempty"`
}

// DelimiterRune returns the configured delimiter, or 0 for the format default.
func (s Source) DelimiterRune() (rune, error) {
	if s.Delimiter == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(s.Delimiter)
	if size != len(s.Delimiter) {
		return 0, fmt.Errorf("delimiter %q must be a single character", s.Delimiter)
	}
	return r, nil
}

// Defaults applied to settings a config file leaves out.
const (
	DefaultCurrency  = "£"
	DefaultPeriod    = "weekly"
	DefaultWeekStart = "monday"
)

// Load reads a tally.yaml file from disk. Missing currency and period
// settings take their defaults, relative source directories are resolved
// against the file's directory, and TALLY_CURRENCY overrides the currency.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Config{
		Currency: DefaultCurrency,
		Period:   PeriodConfig{Length: DefaultPeriod, WeekStart: DefaultWeekStart},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i := range cfg.Sources {
		if !filepath.IsAbs(cfg.Sources[i].Dir) {
			cfg.Sources[i].Dir = filepath.Join(base, cfg.Sources[i].Dir)
		}
	}
	if cur := os.Getenv(EnvCurrency); cur != "" {
		cfg.Currency = cur
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with one source per built-in format.
func Default() *Config {
	return &Config{
		Currency: DefaultCurrency,
		Period: PeriodConfig{
			Length:    DefaultPeriod,
			WeekStart: DefaultWeekStart,
		},
		Sources: []Source{
			{Format: "natwest", Dir: "statements/natwest", Extension: "csv"},
			{Format: "santander", Dir: "statements/santander", Extension: "txt", Encoding: "ISO-8859-10"},
			{Format: "hsbc", Dir: "statements/hsbc", Extension: "csv", AccountFromFilename: true},
			{Format: "midata", Dir: "statements/midata", Extension: "csv", Delimiter: "|", AccountFromFilename: true},
		},
		Categories: Categories{
			{Label: "groceries", Keywords: []string{"tesco", "sainsbury", "lidl"}},
			{Label: "transport", Keywords: []string{"tfl", "trainline"}},
			{Label: "eating out", Keywords: []string{"pret", "deliveroo"}},
		},
		Ignore: []string{"transfer"},
	}
}

// Validate rejects category labels that collide with the mapper's reserved
// labels.
func (c *Config) Validate() error {
	for _, label := range c.Mapper().Labels() {
		switch strings.ToLower(label) {
		case category.Uncategorised, category.Ignored:
			return fmt.Errorf("category %q is reserved; use the ignore list to drop transactions", label)
		}
	}
	return nil
}

// Mapper builds the category mapper for this configuration.
func (c *Config) Mapper() *category.Mapper {
	return category.New(c.Categories, c.Ignore)
}
