package components

import "github.com/goliatone/go-chanterelle/pkg/insight"

// NewDefaultRegistry returns a registry holding the built-in item types.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(insight.KindTable, Descriptor{Renderer: renderTable, Icon: iconTable})
	registry.MustRegister(insight.KindBarChart, Descriptor{Renderer: renderBarChart, Icon: iconBarChart})
	registry.MustRegister(insight.KindLineChart, Descriptor{Renderer: renderLineChart, Icon: iconLineChart})
	registry.MustRegister(insight.KindScatterPlot, Descriptor{Renderer: renderScatterPlot, Icon: iconScatterPlot})
	registry.MustRegister(insight.KindText, Descriptor{Renderer: renderText, Icon: iconText})
	registry.MustRegister(insight.KindImage, Descriptor{Renderer: renderImage, Icon: iconImage})
	registry.MustRegister(insight.KindError, Descriptor{Renderer: renderError, Icon: iconError})
	return registry
}
