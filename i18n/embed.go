package i18n

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// builtinBundle loads the catalogs shipped with the library. Each file under
// locales/ is named after its language tag (fr.yaml, es.yaml, ...).
func builtinBundle() *Bundle {
	b := NewBundle("en")
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return b
	}
	for _, entry := range entries {
		name := entry.Name()
		lang := strings.TrimSuffix(name, ".yaml")
		data, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			continue
		}
		// a malformed embedded catalog is skipped; the default language
		// needs no catalog at all
		_ = b.AddYAML(lang, data)
	}
	return b
}
