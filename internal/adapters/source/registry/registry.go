package registry

import (
	"sort"

	"i18nlint/internal/ports/output"
)

// Registry indexes translation sources by name.
type Registry struct {
	byName map[string]output.TranslationSource
}

func New(sources ...output.TranslationSource) *Registry {
	r := &Registry{byName: map[string]output.TranslationSource{}}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

func (r *Registry) Register(s output.TranslationSource) { r.byName[s.Name()] = s }

func (r *Registry) Get(name string) (output.TranslationSource, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
