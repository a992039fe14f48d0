package graph

import (
	"github.com/yourusername/gitlanes/internal/history"
	"github.com/yourusername/gitlanes/internal/lanes"
)

// Build normalizes provider results and runs a fresh render pass onto a new
// canvas.
func Build(listings []history.Listing, tags []history.Tag, opts lanes.Options) (*Canvas, *history.Model, *lanes.Result) {
	model := history.Normalize(listings, tags)
	canvas := NewCanvas()
	result := lanes.Render(model, canvas, opts)
	return canvas, model, result
}
