package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// DefaultFile is read when Load is given no explicit path and it exists.
const DefaultFile = "i18nlint.toml"

type Report struct {
	Locale string `toml:"locale" env:"REPORT_LOCALE"`
	Format string `toml:"format" env:"REPORT_FORMAT"`
}

type Config struct {
	SiteDir         string   `toml:"site_dir" env:"SITE_DIR"`
	MarkupFile      string   `toml:"markup_file" env:"MARKUP_FILE"`
	ScriptFile      string   `toml:"script_file" env:"SCRIPT_FILE"`
	Source          string   `toml:"source" env:"SOURCE"`
	CatalogGlob     string   `toml:"catalog_glob" env:"CATALOG_GLOB"`
	TranslationsVar string   `toml:"translations_var" env:"TRANSLATIONS_VAR"`
	Languages       []string `toml:"languages" env:"LANGUAGES"`
	BaseLanguage    string   `toml:"base_language" env:"BASE_LANGUAGE"`
	KeyAttributes   []string `toml:"key_attributes" env:"KEY_ATTRIBUTES"`
	RequiredMarkers []string `toml:"required_markers" env:"REQUIRED_MARKERS"`
	LogLevel        string   `toml:"log_level" env:"LOG_LEVEL"`
	Report          Report   `toml:"report"`
}

// Default mirrors the layout of the personal page the tool was written for.
func Default() *Config {
	return &Config{
		SiteDir:         "PersonalPage",
		MarkupFile:      "index.html",
		ScriptFile:      "script.js",
		Source:          "script",
		CatalogGlob:     "locales/*.toml",
		Languages:       []string{"pt", "en", "es"},
		KeyAttributes:   []string{"data-i18n"},
		RequiredMarkers: []string{"clock", "hour-hand", "minute-hand", "second-hand"},
		LogLevel:        "info",
		Report: Report{
			Locale: "pt",
			Format: "text",
		},
	}
}

// Load builds the configuration from, in increasing precedence: defaults,
// the TOML file at path (DefaultFile when path is empty and it exists), and
// I18NLINT_* environment variables, optionally provided by a .env file.
func Load(path string) (*Config, error) {
	// .env is optional when the variables come from the environment (CI).
	_ = godotenv.Load()

	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "I18NLINT_"}); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Base returns the designated base language, else the first listed one.
func (c *Config) Base() string {
	if c.BaseLanguage != "" {
		return c.BaseLanguage
	}
	if len(c.Languages) > 0 {
		return c.Languages[0]
	}
	return ""
}

// Validate applies every rule on the loaded configuration. Flag overrides
// applied after Load must call it again.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SiteDir) == "" {
		return fmt.Errorf("config: site_dir is required and cannot be empty")
	}
	if strings.TrimSpace(c.MarkupFile) == "" {
		return fmt.Errorf("config: markup_file is required")
	}

	switch c.Source {
	case "script":
		if strings.TrimSpace(c.ScriptFile) == "" {
			return fmt.Errorf("config: script_file is required when source is %q", c.Source)
		}
	case "catalog":
		if strings.TrimSpace(c.CatalogGlob) == "" {
			return fmt.Errorf("config: catalog_glob is required when source is %q", c.Source)
		}
	default:
		return fmt.Errorf("config: source must be \"script\" or \"catalog\", got %q", c.Source)
	}

	if len(c.Languages) == 0 {
		return fmt.Errorf("config: languages must list at least one language")
	}
	seen := map[string]bool{}
	for _, l := range c.Languages {
		if _, err := language.Parse(l); err != nil {
			return fmt.Errorf("config: invalid language code %q: %w", l, err)
		}
		if seen[l] {
			return fmt.Errorf("config: language %q listed twice", l)
		}
		seen[l] = true
	}
	if c.BaseLanguage != "" && !slices.Contains(c.Languages, c.BaseLanguage) {
		return fmt.Errorf("config: base_language %q is not in languages %v", c.BaseLanguage, c.Languages)
	}

	if len(c.KeyAttributes) == 0 {
		return fmt.Errorf("config: key_attributes must list at least one attribute")
	}

	if _, err := language.Parse(c.Report.Locale); err != nil {
		return fmt.Errorf("config: invalid report locale %q: %w", c.Report.Locale, err)
	}
	switch strings.ToLower(c.Report.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: report format must be \"text\" or \"json\", got %q", c.Report.Format)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}
