package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"i18nlint/internal/domain"
	"i18nlint/internal/domain/entities"
	"i18nlint/internal/ports/output"
)

// Ensure JSONWriter implements the output.ReportWriter port.
var _ output.ReportWriter = (*JSONWriter)(nil)

// JSONWriter renders a report for machines (CI annotations, dashboards).
type JSONWriter struct{}

func NewJSONWriter() *JSONWriter { return &JSONWriter{} }

type jsonReport struct {
	Site         string      `json:"site"`
	Source       string      `json:"source"`
	BaseLanguage string      `json:"base_language"`
	Languages    []string    `json:"languages"`
	Passed       bool        `json:"passed"`
	Checks       []jsonCheck `json:"checks"`
}

type jsonCheck struct {
	Name             entities.CheckName         `json:"name"`
	Passed           bool                       `json:"passed"`
	Code             string                     `json:"code,omitempty"`
	Error            string                     `json:"error,omitempty"`
	MissingFiles     []string                   `json:"missing_files,omitempty"`
	MissingLanguages []string                   `json:"missing_languages,omitempty"`
	Discrepancies    []entities.Discrepancy     `json:"discrepancies,omitempty"`
	Dangling         []entities.MarkupReference `json:"dangling,omitempty"`
	MissingMarkers   []string                   `json:"missing_markers,omitempty"`
}

func (w *JSONWriter) Write(out io.Writer, r *entities.Report) error {
	doc := jsonReport{
		Site:         r.SiteDir,
		Source:       r.Source,
		BaseLanguage: r.BaseLanguage,
		Languages:    r.Languages,
		Passed:       r.Passed(),
		Checks:       make([]jsonCheck, 0, len(r.Checks)),
	}
	for _, c := range r.Checks {
		jc := jsonCheck{
			Name:             c.Name,
			Passed:           c.Passed(),
			MissingFiles:     c.MissingFiles,
			MissingLanguages: c.MissingLanguages,
			Discrepancies:    c.Discrepancies,
			Dangling:         c.Dangling,
			MissingMarkers:   c.MissingMarkers,
		}
		if c.Err != nil {
			jc.Code = domain.Code(c.Err)
			jc.Error = c.Err.Error()
		}
		doc.Checks = append(doc.Checks, jc)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Formats lists the accepted values of New's format argument.
var Formats = []string{"text", "json"}

// New returns the writer for format. t and locale only matter for "text".
func New(format string, t output.T, locale string) (output.ReportWriter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextWriter(t, locale), nil
	case "json":
		return NewJSONWriter(), nil
	}
	return nil, fmt.Errorf("unknown report format %q (want one of %s)", format, strings.Join(Formats, ", "))
}
