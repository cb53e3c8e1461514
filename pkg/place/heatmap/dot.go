package heatmap

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/globalplace/pkg/place"
)

// OverfullColor fills bins holding more nets than their capacity.
const OverfullColor = "#d62728"

// Options configures heatmap generation.
type Options struct {
	// Title is drawn above the grid. Empty omits it.
	Title string

	// ShowValues prints each bin's whitespace inside its cell.
	ShowValues bool
}

// ToDOT converts a whitespace grid, indexed [x][y], to Graphviz DOT source.
// capacity is the whitespace of an empty bin.
func ToDOT(ws [place.BinDim][place.BinDim]int, capacity int, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=plaintext, fontname=\"Helvetica\", fontsize=10];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	buf.WriteString("  occupancy [label=<\n")
	buf.WriteString("    <TABLE BORDER=\"0\" CELLBORDER=\"1\" CELLSPACING=\"0\" CELLPADDING=\"6\">\n")
	for y := place.BinDim - 1; y >= 0; y-- {
		buf.WriteString("      <TR>")
		for x := range place.BinDim {
			text := ""
			if opts.ShowValues {
				text = strconv.Itoa(ws[x][y])
			}
			fmt.Fprintf(&buf, "<TD BGCOLOR=%q WIDTH=\"36\" HEIGHT=\"36\">%s</TD>", fillColor(ws[x][y], capacity), text)
		}
		buf.WriteString("</TR>\n")
	}
	buf.WriteString("    </TABLE>\n")
	buf.WriteString("  >];\n")

	buf.WriteString("}\n")
	return buf.String()
}

// fillColor shades from white (empty) to dark blue (full).
func fillColor(ws, capacity int) string {
	if capacity <= 0 || ws < 0 {
		return OverfullColor
	}
	used := float64(capacity-ws) / float64(capacity)
	if used < 0 {
		used = 0
	}
	lerp := func(from, to int) int {
		return from + int(math.Round(float64(to-from)*used))
	}
	return fmt.Sprintf("#%02x%02x%02x", lerp(0xff, 0x08), lerp(0xff, 0x30), lerp(0xff, 0x6b))
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a zero
// origin with explicit pixel size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
