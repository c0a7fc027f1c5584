package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"i18nlint/internal/domain"
	"i18nlint/internal/domain/entities"
	"i18nlint/internal/ports/output"
)

// Ensure TextWriter implements the output.ReportWriter port.
var _ output.ReportWriter = (*TextWriter)(nil)

var checkTitles = map[entities.CheckName]string{
	entities.CheckFilesExist:        "CheckFilesExist",
	entities.CheckTranslationParity: "CheckTranslationParity",
	entities.CheckMarkupReferences:  "CheckMarkupReferences",
	entities.CheckRequiredElements:  "CheckRequiredElements",
}

// TextWriter renders a report as human readable lines in one locale.
type TextWriter struct {
	t      output.T
	locale string
	namer  display.Namer
}

func NewTextWriter(t output.T, locale string) *TextWriter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &TextWriter{t: t, locale: locale, namer: display.Tags(tag)}
}

func (w *TextWriter) Write(out io.Writer, r *entities.Report) error {
	var b strings.Builder

	b.WriteString(w.msg("ReportHeader", map[string]any{
		"Site":   r.SiteDir,
		"Source": r.Source,
		"Base":   w.languageName(r.BaseLanguage),
	}))
	b.WriteString("\n\n")

	pass, fail := w.msg("StatusPass", nil), w.msg("StatusFail", nil)
	width := max(len([]rune(pass)), len([]rune(fail))) + 2
	for _, c := range r.Checks {
		status := pass
		if !c.Passed() {
			status = fail
		}
		fmt.Fprintf(&b, "%-*s %s\n", width, "["+status+"]", w.msg(checkTitles[c.Name], nil))
		for _, line := range w.details(r, c) {
			fmt.Fprintf(&b, "%*s - %s\n", width, "", line)
		}
	}

	b.WriteString("\n")
	total := len(r.Checks)
	if failed := len(r.Failed()); failed > 0 {
		b.WriteString(w.msg("SummaryFail", map[string]any{"Count": failed, "Total": total}))
	} else {
		b.WriteString(w.msg("SummaryPass", map[string]any{"Total": total}))
	}
	b.WriteString("\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func (w *TextWriter) details(r *entities.Report, c entities.CheckResult) []string {
	var lines []string
	for _, f := range c.MissingFiles {
		lines = append(lines, w.msg("MissingFile", map[string]any{"Path": f, "Site": r.SiteDir}))
	}
	for _, l := range c.MissingLanguages {
		lines = append(lines, w.msg("LanguageNotFound", map[string]any{"Language": w.languageName(l)}))
	}
	for _, d := range c.Discrepancies {
		if len(d.Missing) > 0 {
			lines = append(lines, w.msg("MissingKeys", map[string]any{
				"Language": w.languageName(d.Language),
				"Keys":     strings.Join(d.Missing, ", "),
			}))
		}
		if len(d.Extra) > 0 {
			lines = append(lines, w.msg("ExtraKeys", map[string]any{
				"Language": w.languageName(d.Language),
				"Keys":     strings.Join(d.Extra, ", "),
			}))
		}
	}
	for _, ref := range c.Dangling {
		lines = append(lines, w.msg("DanglingKey", map[string]any{
			"Key":  ref.Key,
			"Line": ref.Line,
			"Tag":  ref.Tag,
			"Base": w.languageName(r.BaseLanguage),
		}))
	}
	for _, m := range c.MissingMarkers {
		lines = append(lines, w.msg("MissingMarker", map[string]any{"Marker": m}))
	}
	if len(lines) > 0 || c.Err == nil {
		return lines
	}

	detail := map[string]any{"Detail": c.Err.Error()}
	switch domain.Code(c.Err) {
	case "empty_base":
		return []string{w.msg("EmptyBase", map[string]any{"Language": w.languageName(r.BaseLanguage)})}
	case "missing_file":
		return []string{w.msg("CheckSkipped", detail)}
	case "parse_error":
		return []string{w.msg("ParseError", detail)}
	default:
		return []string{w.msg("UnexpectedError", detail)}
	}
}

func (w *TextWriter) msg(key string, data map[string]any) string {
	return w.t.T(w.locale, key, data)
}

// languageName renders "inglês (en)" style labels in the report locale.
func (w *TextWriter) languageName(code string) string {
	if code == "" {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := w.namer.Name(tag)
	if name == "" {
		return code
	}
	return name + " (" + code + ")"
}
