package output

import (
	"context"
	"io/fs"

	"i18nlint/internal/domain/entities"
)

// TranslationSource loads the translation table of a site.
type TranslationSource interface {
	// Name is the value selecting this source in the configuration.
	Name() string
	// Files lists the assets the source reads, relative to the site root.
	Files(site fs.FS) ([]string, error)
	Load(ctx context.Context, site fs.FS, languages []string) (*entities.TranslationTable, error)
}
