package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"i18nlint/internal/domain/entities"
	"i18nlint/internal/ports/output"
)

// Ensure Scanner implements the output.MarkupScanner port.
var _ output.MarkupScanner = (*Scanner)(nil)

// Scanner tokenizes HTML and reports key-reference attributes.
type Scanner struct{}

func NewScanner() *Scanner { return &Scanner{} }

// Scan walks the start tags of markup. Attribute names are matched
// case-insensitively; empty values are ignored.
func (s *Scanner) Scan(markup []byte, attributes []string) ([]entities.MarkupReference, error) {
	wanted := make([]string, len(attributes))
	for i, a := range attributes {
		wanted[i] = strings.ToLower(a)
	}

	var refs []entities.MarkupReference
	z := html.NewTokenizer(bytes.NewReader(markup))
	line := 1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return refs, nil
			}
			return nil, fmt.Errorf("tokenize markup: %w", z.Err())
		}
		tokenLine := line
		line += bytes.Count(z.Raw(), []byte{'\n'})

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		tok := z.Token()
		for _, attr := range tok.Attr {
			if !slices.Contains(wanted, attr.Key) {
				continue
			}
			// The page looks keys up with the exact attribute value, so
			// surrounding whitespace is kept and only empty values are skipped.
			if attr.Val == "" {
				continue
			}
			refs = append(refs, entities.MarkupReference{
				Key:       attr.Val,
				Attribute: attr.Key,
				Tag:       tok.Data,
				Line:      tokenLine,
			})
		}
	}
}
