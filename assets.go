// Package portal bundles the onboarding portal's HTML templates and static
// files into the binary.
package portal

import (
	"embed"
	"io/fs"
	"os"
)

const (
	templatesDir = "frontend/templates"
	staticDir    = "frontend/static"
)

//go:embed all:frontend/templates all:frontend/static
var bundled embed.FS

// Templates returns the template tree rooted at frontend/templates. With
// fromDisk set it reads the working copy relative to the current directory,
// so template edits show up without a rebuild.
func Templates(fromDisk bool) fs.FS { return subtree(templatesDir, fromDisk) }

// Static returns the asset tree served under /static/.
func Static(fromDisk bool) fs.FS { return subtree(staticDir, fromDisk) }

func subtree(dir string, fromDisk bool) fs.FS {
	if fromDisk {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(bundled, dir)
	if err != nil {
		// dir is a constant that names an embedded directory.
		panic(err)
	}
	return sub
}
