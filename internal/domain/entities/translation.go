package entities

import "sort"

// KeySet is a set of i18n keys.
type KeySet map[string]struct{}

// NewKeySet builds a KeySet holding keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s KeySet) Len() int { return len(s) }

// Minus returns the keys of s that are absent from other.
func (s KeySet) Minus(other KeySet) KeySet {
	out := KeySet{}
	for k := range s {
		if !other.Has(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Sorted returns the keys in lexical order.
func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TranslationTable maps a language code to its key → display string entries.
type TranslationTable struct {
	// Languages keeps the order in which language blocks were found.
	Languages []string
	Entries   map[string]map[string]string
}

// NewTranslationTable returns an empty table.
func NewTranslationTable() *TranslationTable {
	return &TranslationTable{Entries: map[string]map[string]string{}}
}

// Add stores one entry, registering lang on first use.
func (t *TranslationTable) Add(lang, key, value string) {
	t.ensure(lang)[key] = value
}

// AddLanguage registers lang without entries. An empty block is still a block.
func (t *TranslationTable) AddLanguage(lang string) {
	t.ensure(lang)
}

func (t *TranslationTable) ensure(lang string) map[string]string {
	entries, ok := t.Entries[lang]
	if !ok {
		entries = map[string]string{}
		t.Entries[lang] = entries
		t.Languages = append(t.Languages, lang)
	}
	return entries
}

// HasLanguage reports whether a block for lang was loaded.
func (t *TranslationTable) HasLanguage(lang string) bool {
	_, ok := t.Entries[lang]
	return ok
}

// Keys returns the key set of lang and false when the language is absent.
func (t *TranslationTable) Keys(lang string) (KeySet, bool) {
	entries, ok := t.Entries[lang]
	if !ok {
		return nil, false
	}
	s := make(KeySet, len(entries))
	for k := range entries {
		s[k] = struct{}{}
	}
	return s, true
}

// Discrepancy lists the keys by which one language differs from the base.
type Discrepancy struct {
	Language string   `json:"language"`
	Missing  []string `json:"missing,omitempty"`
	Extra    []string `json:"extra,omitempty"`
}
