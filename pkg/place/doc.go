// Package place implements global placement: it assigns every placeable net
// of a netlist to one bin of a coarse BinDim x BinDim grid laid over the
// device, honouring user-fixed cell locations, then relieves crowded bins.
//
// # Overview
//
// A [Placer] runs three phases in order:
//
//  1. Constraint placement: driver cells carrying a BEL attribute are bound
//     to their named site and their nets binned at that site's location.
//  2. Free placement: every other placeable net goes to the bin returned by
//     [Grid.FindBestBin].
//  3. Whitespace spreading: [Grid.SpreadWhitespace] pushes each bin's least
//     connected nets to emptier neighbours.
//
// Detailed placement onto exact sites does not exist yet, so [Placer.Place]
// always finishes with an UNFINISHED error next to its coarse [Result].
//
// # Scores
//
// For a net n and bin b:
//
//	edges(n, b)        = ledger hits on n's driver and user cells
//	Gamma(n, b)        = (1 + edges) / (1 + users(n))
//	Connectivity(n, b) = Gamma(n, b) * Whitespace(b)
//
// Connectivity trades locality against load: an empty bin with low affinity
// and a crowded bin with high affinity can both score well.
//
// During spreading, a neighbour at offset (dx, dy) scores
//
//	occupancy + DiagonalPenalty*(|dx|+|dy|-1)
//
// and the lowest score wins when it is below
// Capacity + SpreadThresholdOffset - whitespace (taken before the pop).
//
// # Coordinates
//
// [ToBinLoc] maps a device grid coordinate to a bin by x*BinDim/dimX and
// y*BinDim/dimY. Bin coordinates outside the grid panic; they signal a bug.
//
// # Concurrency
//
// Placement is single-threaded. Neither [Grid] nor [Bin] is safe for
// concurrent use.
package place
