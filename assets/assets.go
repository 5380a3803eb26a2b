// Package assets embeds the files installed by cc-context-awareness: runtime
// scripts, the default config, the skill document and the template bundles.
package assets

import (
	"embed"
	iofs "io/fs"
	"os"
)

//go:embed runtime docs templates
var files embed.FS

// FS returns the embedded bundle.
func FS() iofs.FS {
	return files
}

// Open returns the bundle rooted at dir when dir is set, otherwise the
// embedded one.
func Open(dir string) iofs.FS {
	if dir == "" {
		return files
	}
	return os.DirFS(dir)
}
