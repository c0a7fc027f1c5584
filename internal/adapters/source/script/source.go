// Package script loads a translation table from a JavaScript asset.
//
// The script is parsed into an AST and the table is located structurally: it
// is the object literal whose properties map language codes to nested object
// literals. Formatting, quoting style, module syntax and wrapping code
// (DOMContentLoaded handlers, IIFEs, classes, loops) do not matter. Nested
// objects inside a language block flatten to dotted keys, and spreads of
// objects declared in the same file are inlined.
package script

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"

	"i18nlint/internal/ctxlog"
	"i18nlint/internal/domain"
	"i18nlint/internal/domain/entities"
	"i18nlint/internal/ports/output"
)

// Ensure Source implements the output.TranslationSource port.
var _ output.TranslationSource = (*Source)(nil)

// Source reads the translation table from one script file of the site.
type Source struct {
	file     string
	variable string
}

// New returns a Source reading file. When variable is not empty only an
// object bound to that name (const, let, var, assignment or property) is
// considered.
func New(file, variable string) *Source {
	return &Source{file: file, variable: variable}
}

func (s *Source) Name() string { return "script" }

func (s *Source) Files(fs.FS) ([]string, error) { return []string{s.file}, nil }

func (s *Source) Load(ctx context.Context, site fs.FS, languages []string) (*entities.TranslationTable, error) {
	data, err := fs.ReadFile(site, s.file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingFile, s.file)
		}
		return nil, fmt.Errorf("read %s: %w", s.file, err)
	}
	table, err := Parse(s.file, data, languages, s.variable)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("script translations loaded",
		"file", s.file, "languages", table.Languages)
	return table, nil
}

// LoadLanguageKeys returns the key set of the lang block of scriptText.
func LoadLanguageKeys(scriptText, lang string) (entities.KeySet, error) {
	table, err := Parse("script.js", []byte(scriptText), []string{lang}, "")
	if err != nil {
		return nil, err
	}
	keys, ok := table.Keys(lang)
	if !ok {
		return nil, fmt.Errorf("%w: language %q not found", domain.ErrParse, lang)
	}
	return keys, nil
}

// Parse extracts the translation table from src. The table is the object
// literal holding the most languages as object-valued properties; ties go to
// the first one in source order. ES module files (import, export) are read
// as well as plain scripts.
func Parse(name string, src []byte, languages []string, variable string) (*entities.TranslationTable, error) {
	code, err := toScript(name, src)
	if err != nil {
		return nil, err
	}
	program, err := parser.ParseFile(nil, name, code, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, name, err)
	}

	c := newCollector(program.File)
	c.statements(program.Body)

	candidates := c.candidates
	if variable != "" {
		candidates = slices.DeleteFunc(slices.Clone(candidates), func(cand candidate) bool {
			return cand.name != variable
		})
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: %s: no object literal bound to %q", domain.ErrParse, name, variable)
		}
	}

	var best *ast.ObjectLiteral
	bestScore := 0
	for _, cand := range candidates {
		if n := score(cand.object, languages); n > bestScore {
			best, bestScore = cand.object, n
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %s: no translation table with languages %v", domain.ErrParse, name, languages)
	}

	table := entities.NewTranslationTable()
	for _, p := range best.Value {
		kv, ok := p.(*ast.PropertyKeyed)
		if !ok {
			continue
		}
		lang, ok := propertyKey(kv)
		if !ok {
			continue
		}
		block, ok := kv.Value.(*ast.ObjectLiteral)
		if !ok {
			continue
		}
		table.AddLanguage(lang)
		if err := c.flatten(table, lang, "", block, nil); err != nil {
			return nil, fmt.Errorf("%w: %s: language %s: %v", domain.ErrParse, name, lang, err)
		}
	}
	return table, nil
}

func score(obj *ast.ObjectLiteral, languages []string) int {
	n := 0
	for _, p := range obj.Value {
		kv, ok := p.(*ast.PropertyKeyed)
		if !ok {
			continue
		}
		key, ok := propertyKey(kv)
		if !ok || !slices.Contains(languages, key) {
			continue
		}
		if _, isObject := kv.Value.(*ast.ObjectLiteral); isObject {
			n++
		}
	}
	return n
}

// flatten adds the leaf values of obj to lang under prefix. Spreads and
// values naming an object literal declared in the same file are inlined.
// A property whose key or spread source is only known at runtime is an
// error. resolving holds the names being inlined, to stop on cycles.
func (c *collector) flatten(table *entities.TranslationTable, lang, prefix string, obj *ast.ObjectLiteral, resolving []string) error {
	for _, p := range obj.Value {
		switch prop := p.(type) {
		case *ast.PropertyKeyed:
			key, ok := propertyKey(prop)
			if !ok {
				return fmt.Errorf("computed key [%s] cannot be resolved", c.text(prop.Key))
			}
			full := join(prefix, key)
			nested, ref := c.object(prop.Value)
			if nested == nil {
				table.Add(lang, full, stringValue(prop.Value))
				continue
			}
			if err := c.inline(table, lang, full, nested, ref, resolving); err != nil {
				return err
			}
		case *ast.PropertyShort:
			full := join(prefix, prop.Name.Name.String())
			nested, ref := c.object(&prop.Name)
			if nested == nil {
				table.Add(lang, full, "")
				continue
			}
			if err := c.inline(table, lang, full, nested, ref, resolving); err != nil {
				return err
			}
		case *ast.SpreadElement:
			spread, ref := c.object(prop.Expression)
			if spread == nil {
				return fmt.Errorf("spread ...%s cannot be resolved", c.text(prop.Expression))
			}
			if err := c.inline(table, lang, prefix, spread, ref, resolving); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *collector) inline(table *entities.TranslationTable, lang, prefix string, obj *ast.ObjectLiteral, ref string, resolving []string) error {
	if ref != "" {
		if slices.Contains(resolving, ref) {
			return fmt.Errorf("%s refers to itself", ref)
		}
		resolving = append(slices.Clip(resolving), ref)
	}
	return c.flatten(table, lang, prefix, obj, resolving)
}

// object returns the object literal e evaluates to when it is known
// statically: an inline literal, or an identifier declared with one. ref is
// the identifier name, empty for inline literals.
func (c *collector) object(e ast.Expression) (obj *ast.ObjectLiteral, ref string) {
	switch n := e.(type) {
	case *ast.ObjectLiteral:
		return n, ""
	case *ast.Identifier:
		name := n.Name.String()
		return c.objects[name], name
	}
	return nil, ""
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// propertyKey resolves a statically known property name. Computed keys are
// resolved when they are constant: ["a"], [1] or [`a`].
func propertyKey(p *ast.PropertyKeyed) (string, bool) {
	return literalKey(p.Key)
}

func literalKey(e ast.Expression) (string, bool) {
	switch k := e.(type) {
	case *ast.StringLiteral:
		return k.Value.String(), true
	case *ast.NumberLiteral:
		return k.Literal, true
	case *ast.TemplateLiteral:
		if k.Tag == nil && len(k.Expressions) == 0 && len(k.Elements) == 1 {
			return k.Elements[0].Parsed.String(), true
		}
	}
	return "", false
}

// stringValue returns the display string of a literal value, "" otherwise.
func stringValue(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.StringLiteral:
		return v.Value.String()
	case *ast.TemplateLiteral:
		if v.Tag == nil && len(v.Expressions) == 0 && len(v.Elements) == 1 {
			return v.Elements[0].Parsed.String()
		}
	case *ast.NumberLiteral:
		return v.Literal
	}
	return ""
}
