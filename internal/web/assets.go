package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed static templates
var embedded embed.FS

// StaticFS returns the static assets. A non-empty dir replaces the
// embedded copy, which lets edits show up without a rebuild.
func StaticFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return sub
}
