// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Discovery
	Query string `yaml:"query"`
	Pages int    `yaml:"pages"`

	// Direct input (skips discovery when set)
	InputFile string   `yaml:"input_file"`
	Links     []string `yaml:"links"`

	// Validation
	Workers    int  `yaml:"workers"`
	TimeoutS   int  `yaml:"timeout"` // seconds per validation request
	ProbeLogos bool `yaml:"probe_logos"`

	// RateLimit caps outbound requests per second on each HTTP client
	// (discovery, aggregation and validation each keep their own bucket).
	// 0 disables the cap.
	RateLimit float64 `yaml:"rate"`

	// Discovery pacing
	PageDelayS int `yaml:"page_delay"` // seconds between result pages

	// Outputs
	OutputCSV  string `yaml:"output_csv"`
	ActiveOnly bool   `yaml:"active_only"`
	NoTable    bool   `yaml:"no_table"`

	LogLevel     string `yaml:"log_level"`
	PrintVersion bool   `yaml:"-"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Pages:      1,
		Workers:    4,
		TimeoutS:   10,
		PageDelayS: 2,
		LogLevel:   "info",
	}
}

// Load initializes configuration in layers, later layers overriding earlier
// ones: defaults, .env file, environment, YAML config file, then CLI flags.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs is Load with explicit CLI arguments.
func LoadArgs(args []string) (Config, error) {
	cfg := DefaultConfig()

	// .env populates the process environment without overriding what is
	// already set, so the env layer below picks it up transparently.
	_ = godotenv.Load()

	loadFromEnv(&cfg)

	if path := configFilePath(args); path != "" {
		if err := loadFromFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if err := loadFromFlags(&cfg, args); err != nil {
		return cfg, err
	}

	normalize(&cfg)
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := getenv("LINKSCOUT_QUERY", ""); v != "" {
		cfg.Query = v
	}
	if v := getenv("LINKSCOUT_PAGES", ""); v != "" {
		cfg.Pages = parseInt(v, cfg.Pages)
	}
	if v := getenv("LINKSCOUT_INPUT_FILE", ""); v != "" {
		cfg.InputFile = v
	}
	if v := getenv("LINKSCOUT_WORKERS", ""); v != "" {
		cfg.Workers = parseInt(v, cfg.Workers)
	}
	if v := getenv("LINKSCOUT_TIMEOUT", ""); v != "" {
		cfg.TimeoutS = parseInt(v, cfg.TimeoutS)
	}
	if v := getenv("LINKSCOUT_PAGE_DELAY", ""); v != "" {
		cfg.PageDelayS = parseInt(v, cfg.PageDelayS)
	}
	if v := getenv("LINKSCOUT_PROBE_LOGOS", ""); v != "" {
		cfg.ProbeLogos = parseBool(v)
	}
	if v := getenv("LINKSCOUT_RATE", ""); v != "" {
		cfg.RateLimit = parseFloat(v, cfg.RateLimit)
	}
	if v := getenv("LINKSCOUT_OUTPUT_CSV", ""); v != "" {
		cfg.OutputCSV = v
	}
	if v := getenv("LINKSCOUT_ACTIVE_ONLY", ""); v != "" {
		cfg.ActiveOnly = parseBool(v)
	}
	if v := getenv("LINKSCOUT_NO_TABLE", ""); v != "" {
		cfg.NoTable = parseBool(v)
	}
	if v := getenv("LINKSCOUT_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
}

// configFilePath pre-scans the arguments for --config so the file layer can
// be applied before the flag layer that overrides it. The env var works too.
func configFilePath(args []string) string {
	path := getenv("LINKSCOUT_CONFIG", "")
	for i, a := range args {
		switch {
		case a == "--config" && i+1 < len(args):
			path = args[i+1]
		case strings.HasPrefix(a, "--config="):
			path = strings.TrimPrefix(a, "--config=")
		}
	}
	return path
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func loadFromFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("linkscout", pflag.ContinueOnError)

	fs.StringVarP(&cfg.Query, "query", "q", cfg.Query, "Search query to discover invite links for")
	fs.IntVarP(&cfg.Pages, "pages", "p", cfg.Pages, "Number of search result pages to walk")

	fs.StringVarP(&cfg.InputFile, "input", "i", cfg.InputFile, "File with candidate links (.txt or .csv), skips discovery")
	fs.StringSliceVarP(&cfg.Links, "link", "l", cfg.Links, "Candidate link to validate (repeatable), skips discovery")

	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Concurrent validations")
	fs.IntVar(&cfg.TimeoutS, "timeout", cfg.TimeoutS, "Per-request timeout in seconds")
	fs.IntVar(&cfg.PageDelayS, "page-delay", cfg.PageDelayS, "Seconds to wait between search result pages")
	fs.BoolVar(&cfg.ProbeLogos, "probe-logos", cfg.ProbeLogos, "Confirm extracted logo URLs with a HEAD request")
	fs.Float64Var(&cfg.RateLimit, "rate", cfg.RateLimit, "Maximum requests per second per HTTP client (0 = unlimited)")

	fs.StringVarP(&cfg.OutputCSV, "output", "o", cfg.OutputCSV, "Write results to this CSV file")
	fs.BoolVar(&cfg.ActiveOnly, "active-only", cfg.ActiveOnly, "Export only active groups to the CSV")
	fs.BoolVar(&cfg.NoTable, "no-table", cfg.NoTable, "Disable the terminal results table")

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.PrintVersion, "version", false, "Print version and exit")
	fs.String("config", "", "Path to a YAML config file")

	return fs.Parse(args)
}

func normalize(c *Config) {
	c.Query = strings.TrimSpace(c.Query)
	if c.Pages < 1 {
		c.Pages = 1
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.TimeoutS < 1 {
		c.TimeoutS = 10
	}
	// The floor protects real runs from the search engine's anti-scraping
	// defenses; tests construct the discoverer directly with shorter delays.
	if c.PageDelayS < 2 {
		c.PageDelayS = 2
	}
	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
}

// Timeout returns the per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutS) * time.Second
}

// PageDelay returns the inter-page delay as a duration.
func (c Config) PageDelay() time.Duration {
	return time.Duration(c.PageDelayS) * time.Second
}

// HasDirectInput reports whether discovery should be skipped because the
// caller supplied candidates directly.
func (c Config) HasDirectInput() bool {
	return c.InputFile != "" || len(c.Links) > 0
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}
