package place

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/globalplace/pkg/netlist"
)

// Grid is the BinDim x BinDim array of bins, indexed [x][y].
//
// Every net inserted through the grid lives in exactly one bin; spreading
// moves a net by popping it from one bin and inserting it into another.
// Grid never touches the netlist or device.
type Grid struct {
	capacity int
	penalty  int // diagonal penalty
	offset   int // spread threshold offset
	bins     [BinDim][BinDim]*Bin
}

// NewGrid creates a grid of empty bins sized by opts.Capacity. Unset
// options take their defaults.
func NewGrid(nl *netlist.Netlist, opts Options) *Grid {
	opts.SetDefaults()
	g := &Grid{
		capacity: opts.Capacity,
		penalty:  *opts.DiagonalPenalty,
		offset:   *opts.SpreadThresholdOffset,
	}
	for x := range BinDim {
		for y := range BinDim {
			g.bins[x][y] = NewBin(nl, g.capacity)
		}
	}
	return g
}

// Bin returns the bin at loc.
func (g *Grid) Bin(loc BinLoc) *Bin { return g.bins[loc.X][loc.Y] }

// InsertNet adds a net to the bin at loc.
func (g *Grid) InsertNet(loc BinLoc, id netlist.NetID) {
	g.bins[loc.X][loc.Y].InsertNet(id)
}

// FindBestBin returns the bin with the highest Connectivity for a net.
// Bins are scanned x-major from (0,0); ties keep the first bin seen.
func (g *Grid) FindBestBin(id netlist.NetID) BinLoc {
	best := g.bins[0][0].Connectivity(id)
	bestX, bestY := 0, 0
	for x := range BinDim {
		for y := range BinDim {
			if x == 0 && y == 0 {
				continue
			}
			if score := g.bins[x][y].Connectivity(id); score > best {
				best, bestX, bestY = score, x, y
			}
		}
	}
	return NewBinLoc(bestX, bestY)
}

// SpreadWhitespace sweeps every bin once, x-major, pushing each bin's least
// connected nets to emptier neighbours. It returns the number of moves.
func (g *Grid) SpreadWhitespace() int {
	moves, _ := g.sweep(nil)
	return moves
}

// sweep runs spreadBin over every bin, reporting each bin's moves to fn.
// A non-nil error from fn stops the sweep after that bin.
func (g *Grid) sweep(fn func(x, y, moves int) error) (int, error) {
	moves := 0
	for x := range BinDim {
		for y := range BinDim {
			m := g.spreadBin(x, y)
			moves += m
			if fn == nil {
				continue
			}
			if err := fn(x, y, m); err != nil {
				return moves, err
			}
		}
	}
	return moves, nil
}

// spreadBin drains the bin at (x, y) from its low-gamma end until a net is
// better off staying or the bin is empty.
func (g *Grid) spreadBin(x, y int) int {
	bin := g.bins[x][y]
	bin.Sort()

	moves := 0
	for {
		before := bin.Whitespace()
		id, ok := bin.PopLeastConnected()
		if !ok {
			return moves
		}

		bestX, bestY, bestScore := -1, -1, math.MaxInt
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				nx, ny := x+dx, y+dy
				if (dx == 0 && dy == 0) || nx < 0 || nx >= BinDim || ny < 0 || ny >= BinDim {
					continue
				}
				if score := g.neighbourScore(g.bins[nx][ny], dx, dy); score < bestScore {
					bestX, bestY, bestScore = nx, ny, score
				}
			}
		}

		if bestScore < g.capacity+g.offset-before {
			g.bins[bestX][bestY].InsertNet(id)
			moves++
			continue
		}
		bin.InsertNet(id)
		return moves
	}
}

// neighbourScore is the neighbour's occupancy plus a distance term that is
// zero for orthogonal neighbours and DiagonalPenalty for diagonal ones.
func (g *Grid) neighbourScore(n *Bin, dx, dy int) int {
	return (g.capacity - n.Whitespace()) + g.penalty*(abs(dx)+abs(dy)-1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Whitespace returns the whitespace of the bin at loc.
func (g *Grid) Whitespace(loc BinLoc) int { return g.Bin(loc).Whitespace() }

// Snapshot returns every bin's whitespace, indexed [x][y].
func (g *Grid) Snapshot() [BinDim][BinDim]int {
	var s [BinDim][BinDim]int
	for x := range BinDim {
		for y := range BinDim {
			s[x][y] = g.bins[x][y].Whitespace()
		}
	}
	return s
}

// TotalNets returns the number of nets held across all bins.
func (g *Grid) TotalNets() int {
	total := 0
	for x := range BinDim {
		for y := range BinDim {
			total += g.bins[x][y].Len()
		}
	}
	return total
}

// Locate finds the bin holding a net. It scans every bin.
func (g *Grid) Locate(id netlist.NetID) (BinLoc, bool) {
	for x := range BinDim {
		for y := range BinDim {
			for _, n := range g.bins[x][y].nets {
				if n == id {
					return BinLoc{X: x, Y: y}, true
				}
			}
		}
	}
	return BinLoc{}, false
}

// Occupancy renders the whitespace heatmap: BinDim rows from the top y down
// to 0, each holding BinDim entries formatted "%4d,".
func (g *Grid) Occupancy() string {
	return FormatOccupancy(g.Snapshot())
}

// FormatOccupancy renders a whitespace snapshot the way [Grid.Occupancy] does.
func FormatOccupancy(s [BinDim][BinDim]int) string {
	var b strings.Builder
	for y := BinDim - 1; y >= 0; y-- {
		for x := range BinDim {
			fmt.Fprintf(&b, "%4d,", s[x][y])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
