package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"i18nlint/internal/ctxlog"
	"i18nlint/internal/domain"
	"i18nlint/internal/domain/entities"
	"i18nlint/internal/ports/input"
	"i18nlint/internal/ports/output"
)

// Ensure CheckService implements the input.CheckUseCase port.
var _ input.CheckUseCase = (*CheckService)(nil)

// Options configures a CheckService.
type Options struct {
	// SiteDir is only echoed in the report; assets are read from the fs.FS.
	SiteDir    string
	MarkupFile string
	Languages  []string
	// BaseLanguage defaults to the first entry of Languages.
	BaseLanguage    string
	KeyAttributes   []string
	RequiredMarkers []string
}

type CheckService struct {
	site    fs.FS
	source  output.TranslationSource
	scanner output.MarkupScanner
	opts    Options
}

func NewCheckService(
	site fs.FS,
	source output.TranslationSource,
	scanner output.MarkupScanner,
	opts Options,
) *CheckService {
	return &CheckService{
		site:    site,
		source:  source,
		scanner: scanner,
		opts:    opts,
	}
}

// BaseLanguage returns the language every other one is compared against.
func (s *CheckService) BaseLanguage() string {
	if s.opts.BaseLanguage != "" {
		return s.opts.BaseLanguage
	}
	if len(s.opts.Languages) > 0 {
		return s.opts.Languages[0]
	}
	return ""
}

// unlistedBase rejects a base language outside Languages: its block is never
// loaded, so it is reported as not found rather than empty.
func (s *CheckService) unlistedBase(base string) error {
	if slices.Contains(s.opts.Languages, base) {
		return nil
	}
	return fmt.Errorf("%w: language block not found: base language %q is not in %v",
		domain.ErrParse, base, s.opts.Languages)
}

// Run executes the four checks. Each one runs regardless of the outcome of
// the others; only a cancelled context aborts the run.
func (s *CheckService) Run(ctx context.Context) (*entities.Report, error) {
	log := ctxlog.FromContext(ctx)
	base := s.BaseLanguage()
	report := &entities.Report{
		SiteDir:      s.opts.SiteDir,
		Source:       s.source.Name(),
		BaseLanguage: base,
		Languages:    s.opts.Languages,
	}

	report.Checks = append(report.Checks, s.checkFiles())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	markup, markupErr := s.readMarkup()
	table, tableErr := s.source.Load(ctx, s.site, s.opts.Languages)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Checks = append(report.Checks,
		s.checkParity(table, tableErr, base),
		s.checkReferences(markup, markupErr, table, tableErr, base),
		s.checkElements(markup, markupErr),
	)

	for _, c := range report.Checks {
		if c.Passed() {
			log.Info("check passed", "check", c.Name)
			continue
		}
		log.Warn("check failed", "check", c.Name, "code", domain.Code(c.Err), "error", c.Err)
	}
	return report, nil
}

func (s *CheckService) checkFiles() entities.CheckResult {
	res := entities.CheckResult{Name: entities.CheckFilesExist}

	var errs []error
	if _, err := fs.Stat(s.site, s.opts.MarkupFile); err != nil {
		res.MissingFiles = append(res.MissingFiles, s.opts.MarkupFile)
	}
	files, err := s.source.Files(s.site)
	if err != nil {
		errs = append(errs, err)
	}
	for _, f := range files {
		if _, err := fs.Stat(s.site, f); err != nil {
			res.MissingFiles = append(res.MissingFiles, f)
		}
	}
	if len(res.MissingFiles) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", domain.ErrMissingFile, strings.Join(res.MissingFiles, ", ")))
	}
	res.Err = errors.Join(errs...)
	return res
}

func (s *CheckService) readMarkup() ([]byte, error) {
	data, err := fs.ReadFile(s.site, s.opts.MarkupFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingFile, s.opts.MarkupFile)
		}
		return nil, fmt.Errorf("read %s: %w", s.opts.MarkupFile, err)
	}
	return data, nil
}

func (s *CheckService) checkParity(table *entities.TranslationTable, tableErr error, base string) entities.CheckResult {
	res := entities.CheckResult{Name: entities.CheckTranslationParity}
	if tableErr != nil {
		res.Err = tableErr
		return res
	}
	if err := s.unlistedBase(base); err != nil {
		res.MissingLanguages = []string{base}
		res.Err = err
		return res
	}

	keysByLanguage := make(map[string]entities.KeySet, len(s.opts.Languages))
	var absent []string
	for _, lang := range s.opts.Languages {
		keys, ok := table.Keys(lang)
		if !ok {
			absent = append(absent, lang)
			continue
		}
		keysByLanguage[lang] = keys
	}
	if len(absent) > 0 {
		res.MissingLanguages = absent
		res.Err = fmt.Errorf("%w: language blocks not found: %s", domain.ErrParse, strings.Join(absent, ", "))
		return res
	}
	if keysByLanguage[base].Len() == 0 {
		res.Err = fmt.Errorf("%w: %s", domain.ErrEmptyBase, base)
		return res
	}

	res.Discrepancies = CheckKeyParity(keysByLanguage, base, s.opts.Languages)
	if len(res.Discrepancies) > 0 {
		langs := make([]string, len(res.Discrepancies))
		for i, d := range res.Discrepancies {
			langs[i] = d.Language
		}
		res.Err = fmt.Errorf("%w: %s differ from %s", domain.ErrParity, strings.Join(langs, ", "), base)
	}
	return res
}

func (s *CheckService) checkReferences(
	markup []byte,
	markupErr error,
	table *entities.TranslationTable,
	tableErr error,
	base string,
) entities.CheckResult {
	res := entities.CheckResult{Name: entities.CheckMarkupReferences}
	switch {
	case markupErr != nil:
		res.Err = markupErr
		return res
	case tableErr != nil:
		res.Err = tableErr
		return res
	}
	if err := s.unlistedBase(base); err != nil {
		res.Err = err
		return res
	}

	baseKeys, ok := table.Keys(base)
	if !ok {
		res.Err = fmt.Errorf("%w: language block not found: %s", domain.ErrParse, base)
		return res
	}
	refs, err := s.scanner.Scan(markup, s.opts.KeyAttributes)
	if err != nil {
		res.Err = fmt.Errorf("%w: %s: %v", domain.ErrParse, s.opts.MarkupFile, err)
		return res
	}

	dangling := CheckMarkupReferences(entities.ReferenceKeys(refs), baseKeys)
	if dangling.Len() == 0 {
		return res
	}
	for _, r := range refs {
		if dangling.Has(r.Key) {
			res.Dangling = append(res.Dangling, r)
		}
	}
	res.Err = fmt.Errorf("%w: %s", domain.ErrDanglingReference, strings.Join(dangling.Sorted(), ", "))
	return res
}

func (s *CheckService) checkElements(markup []byte, markupErr error) entities.CheckResult {
	res := entities.CheckResult{Name: entities.CheckRequiredElements}
	if markupErr != nil {
		res.Err = markupErr
		return res
	}
	res.MissingMarkers = MissingElements(string(markup), s.opts.RequiredMarkers)
	if len(res.MissingMarkers) > 0 {
		res.Err = fmt.Errorf("%w: %s", domain.ErrMissingElement, strings.Join(res.MissingMarkers, ", "))
	}
	return res
}
