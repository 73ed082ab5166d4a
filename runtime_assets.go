package chanterelle

import (
	"io/fs"

	htmlrenderer "github.com/goliatone/go-chanterelle/pkg/renderers/html"
)

// RuntimeAssetsFS exposes the stylesheet and the browser script that draws
// charts and switches dropdown panels, so Go applications embedding HTML
// fragments can serve them.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(chanterelle.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return htmlrenderer.AssetsFS()
}
