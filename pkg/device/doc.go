// Package device models the target FPGA as seen by the placer: a rectangular
// site grid, the sites placed on it, which cell types each site type accepts,
// and the current cell-to-site bindings.
//
// # TOML Format
//
// Devices are described in TOML and loaded with [LoadFile] or [Decode]:
//
//	name = "toy24"
//	grid_x = 24
//	grid_y = 24
//
//	[compat]
//	LUT4 = ["SLICE"]
//	DFF  = ["SLICE"]
//
//	[[fill]]
//	type = "SLICE"
//	per_tile = 4
//
//	[[sites]]
//	name = "IOB_X0Y3"
//	type = "IOB"
//	x = 0
//	y = 3
//
// A [[fill]] entry stamps per_tile sites of the given type onto every grid
// location, named "X<x>Y<y>/<TYPE><n>". Explicit [[sites]] entries are added
// after fills. A site with disabled = true exists but fails the location
// legality check.
//
// A cell type is always compatible with a site type of the same name; the
// compat table adds further site types per cell type.
package device
