package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName = "chanterelle.css"
	ScriptName     = "chanterelle.js"
	// ChartJSURL is the Chart.js build the bootstrap script expects.
	ChartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"
)

// TemplatesFS exposes the embedded document template.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// AssetsFS exposes the stylesheet and bootstrap script so the server can
// serve them.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// Stylesheet returns the embedded stylesheet.
func Stylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}

// BootstrapScript returns the embedded script that draws charts, swaps
// dropdown panels and scrolls table-of-contents links.
func BootstrapScript() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+ScriptName)
	if err != nil {
		return ""
	}
	return string(data)
}
