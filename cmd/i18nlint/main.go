package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"i18nlint/internal/adapters/markup"
	"i18nlint/internal/adapters/report"
	"i18nlint/internal/adapters/source/catalog"
	"i18nlint/internal/adapters/source/registry"
	"i18nlint/internal/adapters/source/script"
	"i18nlint/internal/application"
	"i18nlint/internal/cli"
	"i18nlint/internal/config"
	"i18nlint/internal/ctxlog"
	"i18nlint/internal/infrastructure/i18n"
)

func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(args, stdout)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
	}
	if err := opts.Apply(cfg); err != nil {
		return &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
	}

	logger, err := newLogger(stderr, cfg.LogLevel, opts.LogFormat)
	if err != nil {
		return &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	sources := registry.New(
		script.New(cfg.ScriptFile, cfg.TranslationsVar),
		catalog.New(cfg.CatalogGlob),
	)
	source, ok := sources.Get(cfg.Source)
	if !ok {
		return &cli.ExitError{Code: cli.ExitUsage, Message: fmt.Sprintf("unknown source %q (want one of %v)", cfg.Source, sources.Names())}
	}

	if info, err := os.Stat(cfg.SiteDir); err != nil || !info.IsDir() {
		logger.Warn("site directory not readable", "dir", cfg.SiteDir)
	}

	svc := application.NewCheckService(os.DirFS(cfg.SiteDir), source, markup.NewScanner(), application.Options{
		SiteDir:         cfg.SiteDir,
		MarkupFile:      cfg.MarkupFile,
		Languages:       cfg.Languages,
		BaseLanguage:    cfg.BaseLanguage,
		KeyAttributes:   cfg.KeyAttributes,
		RequiredMarkers: cfg.RequiredMarkers,
	})
	logger.Debug("checking site", "dir", cfg.SiteDir, "source", source.Name(), "base", svc.BaseLanguage())

	result, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	writer, err := report.New(cfg.Report.Format, i18n.NewTranslator(cfg.Report.Locale, logger), cfg.Report.Locale)
	if err != nil {
		return &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
	}
	if err := writer.Write(stdout, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if !result.Passed() {
		return &cli.ExitError{Code: cli.ExitChecksFailed}
	}
	return nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handlerOpts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
}
