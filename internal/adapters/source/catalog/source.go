// Package catalog loads a translation table from go-i18n message files
// (one file per language, TOML or JSON, language tag taken from the file name
// as in "pt.toml" or "active.pt.toml").
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"i18nlint/internal/ctxlog"
	"i18nlint/internal/domain"
	"i18nlint/internal/domain/entities"
	"i18nlint/internal/ports/output"
)

// Ensure Source implements the output.TranslationSource port.
var _ output.TranslationSource = (*Source)(nil)

// Source reads every message file matching a glob pattern.
type Source struct {
	pattern string
}

func New(pattern string) *Source {
	return &Source{pattern: pattern}
}

func (s *Source) Name() string { return "catalog" }

func (s *Source) Files(site fs.FS) ([]string, error) {
	paths, err := fs.Glob(site, s.pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", s.pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no file matches %s", domain.ErrMissingFile, s.pattern)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *Source) Load(ctx context.Context, site fs.FS, languages []string) (*entities.TranslationTable, error) {
	paths, err := s.Files(site)
	if err != nil {
		return nil, err
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	table := entities.NewTranslationTable()
	for _, path := range paths {
		data, err := fs.ReadFile(site, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", domain.ErrMissingFile, path)
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		mf, err := bundle.ParseMessageFileBytes(data, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, path, err)
		}

		lang := languageCode(mf.Tag, languages)
		table.AddLanguage(lang)
		for _, m := range mf.Messages {
			value := m.Other
			if value == "" {
				value = m.One
			}
			table.Add(lang, m.ID, value)
		}
		ctxlog.FromContext(ctx).Debug("catalog loaded", "file", path, "language", lang, "messages", len(mf.Messages))
	}
	return table, nil
}

// languageCode maps a file tag back to the configured spelling of the
// language ("pt-br" configured, "pt-BR" parsed).
func languageCode(tag language.Tag, languages []string) string {
	for _, l := range languages {
		if t, err := language.Parse(l); err == nil && t == tag {
			return l
		}
	}
	return tag.String()
}
