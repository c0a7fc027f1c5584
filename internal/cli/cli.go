// Package cli parses command-line arguments and maps outcomes to exit codes.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"i18nlint/internal/config"
)

// Exit codes.
const (
	ExitChecksFailed = 1
	ExitUsage        = 2
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Options holds the parsed flags. Empty values leave the configuration
// untouched.
type Options struct {
	ConfigPath   string
	SiteDir      string
	Source       string
	BaseLanguage string
	Format       string
	Locale       string
	LogLevel     string
	LogFormat    string
}

// Parse processes command-line arguments. It returns the options, whether the
// program should exit cleanly (help requested), or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	flagSet := flag.NewFlagSet("i18nlint", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
i18nlint - checks the i18n wiring of a static website.

Usage:
  i18nlint [options] [SITE_DIR]

Arguments:
  SITE_DIR
    Directory holding the markup and script assets (default from config).

Exit codes:
  0 all checks passed, 1 a check failed, 2 usage or configuration error.

Options:
`)
		flagSet.PrintDefaults()
	}

	opts := &Options{}
	flagSet.StringVar(&opts.ConfigPath, "config", "", "Path to the TOML config file (default "+config.DefaultFile+" when present).")
	flagSet.StringVar(&opts.Source, "source", "", "Translation source: 'script' or 'catalog'.")
	flagSet.StringVar(&opts.BaseLanguage, "base", "", "Base language every other one is compared against (default: first listed).")
	flagSet.StringVar(&opts.Format, "format", "", "Report format: 'text' or 'json'.")
	flagSet.StringVar(&opts.Locale, "locale", "", "Report language: 'pt', 'en' or 'es'.")
	flagSet.StringVar(&opts.LogLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	flagSet.StringVar(&opts.LogFormat, "log-format", "text", "Log output format: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: ExitUsage, Message: "at most one SITE_DIR argument is accepted"}
	}
	opts.SiteDir = flagSet.Arg(0)

	opts.LogFormat = strings.ToLower(opts.LogFormat)
	if opts.LogFormat != "text" && opts.LogFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	return opts, false, nil
}

// Apply overrides cfg with the flags that were set and re-validates it.
func (o *Options) Apply(cfg *config.Config) error {
	if o.SiteDir != "" {
		cfg.SiteDir = o.SiteDir
	}
	if o.Source != "" {
		cfg.Source = o.Source
	}
	if o.BaseLanguage != "" {
		cfg.BaseLanguage = o.BaseLanguage
	}
	if o.Format != "" {
		cfg.Report.Format = o.Format
	}
	if o.Locale != "" {
		cfg.Report.Locale = o.Locale
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	return cfg.Validate()
}
