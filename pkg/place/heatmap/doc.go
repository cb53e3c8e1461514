// Package heatmap renders bin occupancy as a Graphviz heatmap.
//
// # Overview
//
// The 12x12 bin grid is drawn as a single HTML-table node, one cell per bin,
// with row 11 at the top so the picture matches the log output of
// [place.Grid.Occupancy]. Each cell is shaded by how much of its capacity is
// used; overfull bins (negative whitespace) get a distinct colour.
//
// # Usage
//
//	dot := heatmap.ToDOT(rep.Whitespace(), rep.Capacity, heatmap.Options{ShowValues: true})
//	svg, err := heatmap.RenderSVG(dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package heatmap
