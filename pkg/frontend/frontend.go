// Package frontend embeds the browser UI: a single page with upload forms,
// previews and a generic renderer for whatever result shape the API returns.
package frontend

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

//go:embed static
var assets embed.FS

// Index returns the single-page UI
func Index() ([]byte, error) {
	page, err := assets.ReadFile("static/index.html")
	if err != nil {
		return nil, goerr.Wrap(err, "index.html missing from embedded assets")
	}
	return page, nil
}

// StaticHandler serves the embedded static assets. Mount behind a
// StripPrefix("/static/") route.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// embed guarantees the directory exists; reaching this is a build defect
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// Assets exposes the embedded filesystem for tests
func Assets() fs.FS {
	return assets
}
