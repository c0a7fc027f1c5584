package script

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"

	"i18nlint/internal/domain"
)

// toScript rewrites ES module syntax (import, export) as CommonJS, since the
// goja parser only reads scripts. Declarations keep their names; a default
// export becomes a variable named after the file. Files without module
// syntax come back with the same statements.
func toScript(name string, src []byte) (string, error) {
	result := api.Transform(string(src), api.TransformOptions{
		Sourcefile: name,
		Loader:     api.LoaderJS,
		Format:     api.FormatCommonJS,
		Target:     api.ESNext,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		if loc := msg.Location; loc != nil {
			return "", fmt.Errorf("%w: %s:%d:%d: %s", domain.ErrParse, name, loc.Line, loc.Column+1, msg.Text)
		}
		return "", fmt.Errorf("%w: %s: %s", domain.ErrParse, name, msg.Text)
	}
	return string(result.Code), nil
}
