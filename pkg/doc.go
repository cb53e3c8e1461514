// Package pkg provides the core libraries for globalplace, the global stage
// of an FPGA placer.
//
// # Overview
//
// Global placement assigns every net of a technology-mapped netlist to one
// bin of a coarse 12x12 grid laid over the device. Later stages refine the
// bins into legal site assignments. The pkg directory is organized as:
//
//  1. [netlist] - Cells, nets and ports, with JSON import/export
//  2. [device] - Grid extents, sites, compatibility and bindings, loaded from TOML
//  3. [place] - The bin grid and the placement driver
//  4. [place/heatmap] - Occupancy heatmaps via Graphviz
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The data flow of one run:
//
//	netlist.json + device.toml (+ placer.toml)
//	         ↓
//	    [place] constraint placement (bind BEL-fixed cells)
//	         ↓
//	    [place] free placement (best bin per net)
//	         ↓
//	    [place] whitespace spreading (drain overfull bins)
//	         ↓
//	    result.json, heatmap.svg
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/globalplace/pkg/device"
//	    "github.com/matzehuels/globalplace/pkg/netlist"
//	    "github.com/matzehuels/globalplace/pkg/place"
//	)
//
//	nl, _ := netlist.ReadFile("design.json")
//	dev, _ := device.LoadFile("device.toml")
//	res, err := place.New(nl, dev, place.DefaultOptions()).Place(ctx)
//	if errors.Is(err, errors.ErrCodeUnfinished) {
//	    // res holds the coarse, bin-level placement
//	}
//
// # Errors
//
// Failures that stop a run are [errors.Error] values with a code. Detailed
// placement is not implemented, so a successful run still ends with an
// UNFINISHED error alongside its result.
//
// [netlist]: https://pkg.go.dev/github.com/matzehuels/globalplace/pkg/netlist
// [device]: https://pkg.go.dev/github.com/matzehuels/globalplace/pkg/device
// [place]: https://pkg.go.dev/github.com/matzehuels/globalplace/pkg/place
// [place/heatmap]: https://pkg.go.dev/github.com/matzehuels/globalplace/pkg/place/heatmap
// [errors]: https://pkg.go.dev/github.com/matzehuels/globalplace/pkg/errors
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/globalplace/pkg/errors#Error
// [observability]: https://pkg.go.dev/github.com/matzehuels/globalplace/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/globalplace/pkg/buildinfo
package pkg
