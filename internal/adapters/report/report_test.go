package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"i18nlint/internal/domain"
	"i18nlint/internal/domain/entities"
	"i18nlint/internal/infrastructure/i18n"
)

func failingReport() *entities.Report {
	return &entities.Report{
		SiteDir:      "PersonalPage",
		Source:       "script",
		BaseLanguage: "pt",
		Languages:    []string{"pt", "en", "es"},
		Checks: []entities.CheckResult{
			{Name: entities.CheckFilesExist},
			{
				Name: entities.CheckTranslationParity,
				Err:  fmt.Errorf("%w: es differ from pt", domain.ErrParity),
				Discrepancies: []entities.Discrepancy{
					{Language: "es", Missing: []string{"greeting"}, Extra: []string{"bonus"}},
				},
			},
			{
				Name:     entities.CheckMarkupReferences,
				Err:      fmt.Errorf("%w: unknown_key", domain.ErrDanglingReference),
				Dangling: []entities.MarkupReference{{Key: "unknown_key", Attribute: "data-i18n", Tag: "p", Line: 12}},
			},
			{Name: entities.CheckRequiredElements},
		},
	}
}

func TestTextWriter_English(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(i18n.NewTranslator("en", nil), "en")
	require.NoError(t, w.Write(&buf, failingReport()))

	out := buf.String()
	require.Contains(t, out, "Site: PersonalPage (source: script, base language: Portuguese (pt))")
	require.Contains(t, out, "[OK]   Files present")
	require.Contains(t, out, "[FAIL] Translation parity")
	require.Contains(t, out, "The following keys are missing in Spanish (es): greeting")
	require.Contains(t, out, "The following keys are extra in Spanish (es): bonus")
	require.Contains(t, out, "i18n key 'unknown_key' found in the HTML (line 12, <p>)")
	require.Contains(t, out, "2 of 4 checks failed")
}

func TestTextWriter_Portuguese(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(i18n.NewTranslator("pt", nil), "pt")
	require.NoError(t, w.Write(&buf, failingReport()))

	out := buf.String()
	require.Contains(t, out, "[FALHOU] Paridade das traduções")
	require.Contains(t, out, "As seguintes chaves estão faltando em")
	require.Contains(t, out, "Chave i18n 'unknown_key' encontrada no HTML")
	require.Contains(t, out, "2 de 4 verificações falharam")
}

func TestTextWriter_FallbackDetails(t *testing.T) {
	r := &entities.Report{
		SiteDir:      "site",
		BaseLanguage: "pt",
		Checks: []entities.CheckResult{
			{Name: entities.CheckTranslationParity, Err: fmt.Errorf("%w: pt", domain.ErrEmptyBase)},
			{Name: entities.CheckRequiredElements, Err: fmt.Errorf("%w: index.html", domain.ErrMissingFile)},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, NewTextWriter(i18n.NewTranslator("en", nil), "en").Write(&buf, r))

	out := buf.String()
	require.Contains(t, out, "The Portuguese (pt) translation dictionary is empty")
	require.Contains(t, out, "Not checked: asset file not found: index.html")
}

func TestTextWriter_AllPassed(t *testing.T) {
	r := &entities.Report{
		SiteDir: "site",
		Checks:  []entities.CheckResult{{Name: entities.CheckFilesExist}, {Name: entities.CheckRequiredElements}},
	}
	var buf bytes.Buffer
	require.NoError(t, NewTextWriter(i18n.NewTranslator("es", nil), "es").Write(&buf, r))
	require.Contains(t, buf.String(), "Las 2 verificaciones pasaron")
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(&buf, failingReport()))

	var doc jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.False(t, doc.Passed)
	require.Len(t, doc.Checks, 4)
	require.True(t, doc.Checks[0].Passed)
	require.Empty(t, doc.Checks[0].Code)
	require.Equal(t, "parity_mismatch", doc.Checks[1].Code)
	require.Equal(t, []string{"greeting"}, doc.Checks[1].Discrepancies[0].Missing)
	require.Equal(t, "dangling_reference", doc.Checks[2].Code)
	require.Equal(t, 12, doc.Checks[2].Dangling[0].Line)
}

func TestNew(t *testing.T) {
	tr := i18n.NewTranslator("en", nil)

	w, err := New("JSON", tr, "en")
	require.NoError(t, err)
	require.IsType(t, &JSONWriter{}, w)

	w, err = New("", tr, "en")
	require.NoError(t, err)
	require.IsType(t, &TextWriter{}, w)

	_, err = New("yaml", tr, "en")
	require.Error(t, err)
}
