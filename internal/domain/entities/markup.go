package entities

// MarkupReference is one key-reference attribute found in the markup.
type MarkupReference struct {
	Key       string `json:"key"`
	Attribute string `json:"attribute"`
	Tag       string `json:"tag"`
	Line      int    `json:"line"`
}

// ReferenceKeys returns the distinct keys referenced by refs.
func ReferenceKeys(refs []MarkupReference) KeySet {
	s := make(KeySet, len(refs))
	for _, r := range refs {
		s[r.Key] = struct{}{}
	}
	return s
}
