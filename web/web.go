// Package web embeds the demo page and the browser client helper.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var embedded embed.FS

// FS returns the demo files rooted at the static directory
// (index.html, app.js, docx-client.js).
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
