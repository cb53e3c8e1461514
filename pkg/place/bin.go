package place

import (
	"fmt"
	"slices"

	"github.com/matzehuels/globalplace/pkg/netlist"
)

// Bin is a capacity-bounded group of nets with a connectivity ledger.
//
// The ledger counts, per cell, how many terminals of resident nets sit on
// that cell. A net touching cells already present in the bin scores a high
// gamma, which is what pulls connected logic together.
//
// Capacity is a soft target: it feeds the scores but InsertNet never refuses
// a net, so Whitespace may go negative.
//
// A Bin references nets by handle and never owns them. It is not safe for
// concurrent use.
type Bin struct {
	nl       *netlist.Netlist
	capacity int
	nets     []netlist.NetID
	conns    map[netlist.CellID]int
	sorted   bool
}

// NewBin creates an empty bin over nl.
func NewBin(nl *netlist.Netlist, capacity int) *Bin {
	return &Bin{
		nl:       nl,
		capacity: capacity,
		conns:    make(map[netlist.CellID]int),
	}
}

// Whitespace returns the unused capacity: capacity minus resident nets.
func (b *Bin) Whitespace() int { return b.capacity - len(b.nets) }

// Len returns the number of resident nets.
func (b *Bin) Len() int { return len(b.nets) }

// Nets returns a copy of the resident nets in their current order.
func (b *Bin) Nets() []netlist.NetID { return slices.Clone(b.nets) }

// Connections returns the ledger count for a cell.
func (b *Bin) Connections(cell netlist.CellID) int { return b.conns[cell] }

// EdgeCount returns how many resident-net terminals sit on the candidate's
// driver cell and user cells, counting each user terminal separately.
func (b *Bin) EdgeCount(id netlist.NetID) int {
	edges := 0
	b.eachCell(id, func(c netlist.CellID) { edges += b.conns[c] })
	return edges
}

// InsertNet appends a net and records its terminals in the ledger. Callers
// must not insert a net twice.
func (b *Bin) InsertNet(id netlist.NetID) {
	b.nets = append(b.nets, id)
	b.eachCell(id, func(c netlist.CellID) { b.conns[c]++ })
	b.sorted = false
}

// Gamma is the affinity of a net to the bin's contents:
// (1 + EdgeCount) / (1 + users). It is always positive.
func (b *Bin) Gamma(id netlist.NetID) float64 {
	return float64(1+b.EdgeCount(id)) / float64(1+b.nl.Net(id).UserCount())
}

// Connectivity weights Gamma by the available room: Gamma * Whitespace.
func (b *Bin) Connectivity(id netlist.NetID) float64 {
	return b.Gamma(id) * float64(b.Whitespace())
}

// Sort orders the residents by descending gamma. Equal gammas keep their
// insertion order.
func (b *Bin) Sort() {
	type scored struct {
		id    netlist.NetID
		gamma float64
	}
	items := make([]scored, len(b.nets))
	for i, id := range b.nets {
		items[i] = scored{id: id, gamma: b.Gamma(id)}
	}
	slices.SortStableFunc(items, func(x, y scored) int {
		switch {
		case x.gamma > y.gamma:
			return -1
		case x.gamma < y.gamma:
			return 1
		}
		return 0
	})
	for i, it := range items {
		b.nets[i] = it.id
	}
	b.sorted = true
}

// PopLeastConnected removes the tail net, which after Sort is the one with
// the lowest gamma, and releases its ledger entries. It returns false when
// the bin is empty.
//
// The bin must have been sorted since its last insertion; draining an
// unsorted bin panics.
func (b *Bin) PopLeastConnected() (netlist.NetID, bool) {
	if len(b.nets) == 0 {
		return -1, false
	}
	if !b.sorted {
		panic("place: PopLeastConnected on a bin modified since its last Sort")
	}
	last := len(b.nets) - 1
	id := b.nets[last]
	b.nets = b.nets[:last]
	b.eachCell(id, b.release)
	return id, true
}

func (b *Bin) release(c netlist.CellID) {
	n := b.conns[c]
	switch {
	case n <= 0:
		panic(fmt.Sprintf("place: ledger underflow for cell %d", c))
	case n == 1:
		delete(b.conns, c)
	default:
		b.conns[c] = n - 1
	}
}

// eachCell calls fn for the driver cell (if any) and every user terminal.
func (b *Bin) eachCell(id netlist.NetID, fn func(netlist.CellID)) {
	n := b.nl.Net(id)
	if n.HasDriver() {
		fn(n.Driver.Cell)
	}
	for _, u := range n.Users {
		fn(u.Cell)
	}
}
