package place

import "fmt"

// BinDim is the number of bins along each axis of the bin grid.
const BinDim = 12

// GridLoc is a coordinate in the device's native site grid.
type GridLoc struct {
	X, Y int
}

// BinLoc is a coordinate in the BinDim x BinDim bin grid.
type BinLoc struct {
	X, Y int
}

// NewBinLoc returns the bin coordinate (x, y). It panics when either axis is
// outside [0, BinDim); an out-of-range bin is a placer bug, not bad input.
func NewBinLoc(x, y int) BinLoc {
	if x < 0 || x >= BinDim || y < 0 || y >= BinDim {
		panic(fmt.Sprintf("place: bin coordinate (%d,%d) outside %dx%d grid", x, y, BinDim, BinDim))
	}
	return BinLoc{X: x, Y: y}
}

func (b BinLoc) String() string { return fmt.Sprintf("(%d,%d)", b.X, b.Y) }

// ToBinLoc downscales a grid coordinate to its bin: each axis becomes
// axis*BinDim/extent, truncated. Extents must be positive and g must lie
// inside the grid, otherwise NewBinLoc panics.
func ToBinLoc(g GridLoc, dimX, dimY int) BinLoc {
	return NewBinLoc(g.X*BinDim/dimX, g.Y*BinDim/dimY)
}
