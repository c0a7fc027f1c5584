// Package testutil provides the sample site shared by package tests.
package testutil

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/site
var siteFS embed.FS

// SiteFS returns an in-memory copy of the sample site. edits replace or add
// files; remove deletes them.
func SiteFS(t testing.TB, edits map[string]string, remove ...string) fstest.MapFS {
	t.Helper()

	root, err := fs.Sub(siteFS, "testdata/site")
	require.NoError(t, err)

	site := fstest.MapFS{}
	err = fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(root, path)
		if err != nil {
			return err
		}
		site[path] = &fstest.MapFile{Data: data}
		return nil
	})
	require.NoError(t, err)

	for path, data := range edits {
		site[path] = &fstest.MapFile{Data: []byte(data)}
	}
	for _, path := range remove {
		delete(site, path)
	}
	return site
}

// WriteSite materializes SiteFS in a temporary directory and returns it.
func WriteSite(t testing.TB, edits map[string]string, remove ...string) string {
	t.Helper()

	dir := t.TempDir()
	for path, f := range SiteFS(t, edits, remove...) {
		full := filepath.Join(dir, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, f.Data, 0o600))
	}
	return dir
}
