package output

import "i18nlint/internal/domain/entities"

// MarkupScanner extracts key references from a markup document.
type MarkupScanner interface {
	// Scan returns every attribute named in attributes, in document order.
	Scan(markup []byte, attributes []string) ([]entities.MarkupReference, error)
}
