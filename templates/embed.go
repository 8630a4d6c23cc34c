// Package templates embeds the project templates used by the create command.
package templates

import (
	"embed"
	"io/fs"
)

// all: keeps _gitignore and _biome.json, which embed skips by default.
//
//go:embed all:react-ts
var files embed.FS

// Template describes one embedded project template.
type Template struct {
	Name        string
	Description string
}

// Default is the template used when none is chosen.
const Default = "react-ts"

// Available lists the embedded templates in menu order.
var Available = []Template{
	{Name: "react-ts", Description: "React + TypeScript + Vite + Biome"},
}

// Lookup returns the file tree of the named template. ok is false when no
// such template is embedded.
func Lookup(name string) (tree fs.FS, ok bool) {
	if _, err := fs.Stat(files, name); err != nil {
		return nil, false
	}
	sub, err := fs.Sub(files, name)
	if err != nil {
		return nil, false
	}
	return sub, true
}

// Names returns the template names in menu order.
func Names() []string {
	names := make([]string, len(Available))
	for i, t := range Available {
		names[i] = t.Name
	}
	return names
}
