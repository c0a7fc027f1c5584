package application

import (
	"strings"

	"i18nlint/internal/domain/entities"
)

// CheckKeyParity compares every language of keysByLanguage against base and
// returns one Discrepancy per language whose key set differs, in the order
// of languages. An empty result means parity. Languages listed but absent
// from keysByLanguage are compared as empty sets.
func CheckKeyParity(keysByLanguage map[string]entities.KeySet, base string, languages []string) []entities.Discrepancy {
	baseKeys := keysByLanguage[base]
	var out []entities.Discrepancy
	for _, lang := range languages {
		if lang == base {
			continue
		}
		keys := keysByLanguage[lang]
		missing := baseKeys.Minus(keys)
		extra := keys.Minus(baseKeys)
		if missing.Len() == 0 && extra.Len() == 0 {
			continue
		}
		out = append(out, entities.Discrepancy{
			Language: lang,
			Missing:  nilIfEmpty(missing.Sorted()),
			Extra:    nilIfEmpty(extra.Sorted()),
		})
	}
	return out
}

// CheckMarkupReferences returns the markup keys absent from baseKeys.
func CheckMarkupReferences(markupKeys, baseKeys entities.KeySet) entities.KeySet {
	return markupKeys.Minus(baseKeys)
}

// CheckRequiredElements reports whether every marker occurs in markup.
func CheckRequiredElements(markup string, markers []string) bool {
	return len(MissingElements(markup, markers)) == 0
}

// MissingElements returns the markers that do not occur in markup.
func MissingElements(markup string, markers []string) []string {
	var missing []string
	for _, m := range markers {
		if !strings.Contains(markup, m) {
			missing = append(missing, m)
		}
	}
	return missing
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
