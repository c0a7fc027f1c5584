package application

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"i18nlint/internal/adapters/markup"
	"i18nlint/internal/adapters/source/catalog"
	"i18nlint/internal/adapters/source/script"
	"i18nlint/internal/domain"
	"i18nlint/internal/domain/entities"
	"i18nlint/internal/testutil"
)

func defaultOptions() Options {
	return Options{
		SiteDir:         "site",
		MarkupFile:      "index.html",
		Languages:       []string{"pt", "en", "es"},
		KeyAttributes:   []string{"data-i18n"},
		RequiredMarkers: []string{"clock", "hour-hand", "minute-hand", "second-hand"},
	}
}

func newService(site fs.FS, opts Options) *CheckService {
	return NewCheckService(site, script.New("script.js", ""), markup.NewScanner(), opts)
}

func run(t *testing.T, svc *CheckService) *entities.Report {
	t.Helper()
	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Checks, 4)
	return report
}

func check(t *testing.T, report *entities.Report, name entities.CheckName) entities.CheckResult {
	t.Helper()
	res, ok := report.Check(name)
	require.True(t, ok, "check %s missing from report", name)
	return res
}

func TestRun_AllChecksPass(t *testing.T) {
	report := run(t, newService(testutil.SiteFS(t, nil), defaultOptions()))

	for _, c := range report.Checks {
		require.NoError(t, c.Err, "check %s", c.Name)
	}
	require.True(t, report.Passed())
	require.Equal(t, "pt", report.BaseLanguage)
	require.Equal(t, "script", report.Source)
}

func TestRun_CatalogSource(t *testing.T) {
	svc := NewCheckService(testutil.SiteFS(t, nil), catalog.New("locales/*.toml"), markup.NewScanner(), defaultOptions())
	report := run(t, svc)
	require.True(t, report.Passed())
	require.Equal(t, "catalog", report.Source)
}

func TestRun_MissingKeyInOneLanguage(t *testing.T) {
	site := testutil.SiteFS(t, map[string]string{
		"script.js": `const translations = {
			pt: { "page_title": "a", "greeting": "b" },
			en: { "page_title": "a" },
			es: { "page_title": "a", "greeting": "b", "bonus": "c" },
		};`,
		"index.html": `<h1 data-i18n="greeting"></h1><div class="clock hour-hand minute-hand second-hand"></div>`,
	})
	report := run(t, newService(site, defaultOptions()))

	parity := check(t, report, entities.CheckTranslationParity)
	require.ErrorIs(t, parity.Err, domain.ErrParity)
	require.Equal(t, []entities.Discrepancy{
		{Language: "en", Missing: []string{"greeting"}},
		{Language: "es", Extra: []string{"bonus"}},
	}, parity.Discrepancies)

	require.NoError(t, check(t, report, entities.CheckMarkupReferences).Err)
	require.NoError(t, check(t, report, entities.CheckRequiredElements).Err)
	require.False(t, report.Passed())
	require.Len(t, report.Failed(), 1)
}

func TestRun_DanglingReference(t *testing.T) {
	site := testutil.SiteFS(t, map[string]string{
		"index.html": `<div class="clock hour-hand minute-hand second-hand">
<p data-i18n="greeting"></p>
<p data-i18n="unknown_key"></p>
<span data-i18n="unknown_key"></span></div>`,
	})
	report := run(t, newService(site, defaultOptions()))

	refs := check(t, report, entities.CheckMarkupReferences)
	require.ErrorIs(t, refs.Err, domain.ErrDanglingReference)
	require.Len(t, refs.Dangling, 2)
	for _, r := range refs.Dangling {
		require.Equal(t, "unknown_key", r.Key)
	}
	require.Equal(t, 3, refs.Dangling[0].Line)
	require.NoError(t, check(t, report, entities.CheckTranslationParity).Err)
}

func TestRun_MissingClockHand(t *testing.T) {
	site := testutil.SiteFS(t, map[string]string{
		"index.html": `<div class="clock"><div class="hour-hand"></div><div class="minute-hand"></div></div>`,
	})
	report := run(t, newService(site, defaultOptions()))

	elems := check(t, report, entities.CheckRequiredElements)
	require.ErrorIs(t, elems.Err, domain.ErrMissingElement)
	require.Equal(t, []string{"second-hand"}, elems.MissingMarkers)
}

func TestRun_MissingScriptDoesNotBlockMarkupChecks(t *testing.T) {
	report := run(t, newService(testutil.SiteFS(t, nil, "script.js"), defaultOptions()))

	files := check(t, report, entities.CheckFilesExist)
	require.ErrorIs(t, files.Err, domain.ErrMissingFile)
	require.Equal(t, []string{"script.js"}, files.MissingFiles)

	require.ErrorIs(t, check(t, report, entities.CheckTranslationParity).Err, domain.ErrMissingFile)
	require.ErrorIs(t, check(t, report, entities.CheckMarkupReferences).Err, domain.ErrMissingFile)
	require.NoError(t, check(t, report, entities.CheckRequiredElements).Err)
}

func TestRun_MissingMarkup(t *testing.T) {
	report := run(t, newService(testutil.SiteFS(t, nil, "index.html"), defaultOptions()))

	require.Equal(t, []string{"index.html"}, check(t, report, entities.CheckFilesExist).MissingFiles)
	require.NoError(t, check(t, report, entities.CheckTranslationParity).Err)
	require.ErrorIs(t, check(t, report, entities.CheckRequiredElements).Err, domain.ErrMissingFile)
}

func TestRun_LanguageBlockNotFound(t *testing.T) {
	site := testutil.SiteFS(t, map[string]string{
		"script.js": `const translations = { pt: { a: "1" }, en: { a: "1" } };`,
	})
	report := run(t, newService(site, defaultOptions()))

	parity := check(t, report, entities.CheckTranslationParity)
	require.ErrorIs(t, parity.Err, domain.ErrParse)
	require.True(t, strings.Contains(parity.Err.Error(), "es"))
}

func TestRun_EmptyBaseLanguage(t *testing.T) {
	site := testutil.SiteFS(t, map[string]string{
		"script.js": `const translations = { pt: {}, en: {}, es: {} };`,
	})
	report := run(t, newService(site, defaultOptions()))

	require.ErrorIs(t, check(t, report, entities.CheckTranslationParity).Err, domain.ErrEmptyBase)
}

func TestRun_DesignatedBaseLanguage(t *testing.T) {
	site := testutil.SiteFS(t, map[string]string{
		"script.js": `const translations = {
			pt: { a: "1" },
			en: { a: "1", b: "2" },
			es: { a: "1", b: "2" },
		};`,
		"index.html": `<p data-i18n="b"></p> clock hour-hand minute-hand second-hand`,
	})
	opts := defaultOptions()
	opts.BaseLanguage = "en"
	report := run(t, newService(site, opts))

	require.Equal(t, "en", report.BaseLanguage)
	parity := check(t, report, entities.CheckTranslationParity)
	require.Equal(t, []entities.Discrepancy{{Language: "pt", Missing: []string{"b"}}}, parity.Discrepancies)
	require.NoError(t, check(t, report, entities.CheckMarkupReferences).Err)
}

func TestRun_UnlistedBaseLanguage(t *testing.T) {
	opts := defaultOptions()
	opts.BaseLanguage = "fr"
	report := run(t, newService(testutil.SiteFS(t, nil), opts))

	parity := check(t, report, entities.CheckTranslationParity)
	require.ErrorIs(t, parity.Err, domain.ErrParse)
	require.NotErrorIs(t, parity.Err, domain.ErrEmptyBase)
	require.Equal(t, []string{"fr"}, parity.MissingLanguages)

	require.ErrorIs(t, check(t, report, entities.CheckMarkupReferences).Err, domain.ErrParse)
	require.NoError(t, check(t, report, entities.CheckRequiredElements).Err)
}

func TestRun_PaddedReferenceIsDangling(t *testing.T) {
	site := testutil.SiteFS(t, map[string]string{
		"index.html": `<div class="clock hour-hand minute-hand second-hand">
<p data-i18n=" greeting"></p></div>`,
	})
	report := run(t, newService(site, defaultOptions()))

	refs := check(t, report, entities.CheckMarkupReferences)
	require.ErrorIs(t, refs.Err, domain.ErrDanglingReference)
	require.Len(t, refs.Dangling, 1)
	require.Equal(t, " greeting", refs.Dangling[0].Key)
}

func TestRun_ModuleScript(t *testing.T) {
	site := testutil.SiteFS(t, map[string]string{
		"script.js": `export const translations = {
			pt: { greeting: "Olá" },
			en: { greeting: "Hello" },
			es: { greeting: "Hola" },
		};`,
		"index.html": `<p data-i18n="greeting"></p> clock hour-hand minute-hand second-hand`,
	})
	report := run(t, newService(site, defaultOptions()))

	require.True(t, report.Passed(), "failed checks: %v", report.Failed())
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService(testutil.SiteFS(t, nil), defaultOptions()).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
