package netlist

import (
	"errors"
	"iter"
)

var (
	// ErrInvalidName is returned by [Netlist.AddCell] and [Netlist.AddNet]
	// when the name is empty.
	ErrInvalidName = errors.New("name must not be empty")

	// ErrDuplicateCell is returned by [Netlist.AddCell] when a cell with the
	// same name already exists.
	ErrDuplicateCell = errors.New("duplicate cell name")

	// ErrDuplicateNet is returned by [Netlist.AddNet] when a net with the
	// same name already exists.
	ErrDuplicateNet = errors.New("duplicate net name")

	// ErrUnknownCell is returned when a port references a cell handle that
	// does not exist in the netlist.
	ErrUnknownCell = errors.New("unknown cell")
)

// AttrBEL is the reserved attribute holding a user-fixed site name.
const AttrBEL = "BEL"

// CellID is a handle into the netlist's cell table.
type CellID int32

// NetID is a handle into the netlist's net table.
type NetID int32

// NoCell marks an absent cell, e.g. the driver of an undriven net.
const NoCell CellID = -1

// Cell is a placeable logic unit.
type Cell struct {
	Name   string
	Type   string
	Pseudo bool // non-physical helper cell, never placed
	Attrs  map[string]string
}

// FixedSite returns the site name from the [AttrBEL] attribute, if present.
func (c *Cell) FixedSite() (string, bool) {
	site, ok := c.Attrs[AttrBEL]
	return site, ok
}

// PortRef is one terminal of a net: a port on a cell.
type PortRef struct {
	Cell CellID
	Port string
}

// Net is a hyperedge from one driver terminal to its user terminals.
type Net struct {
	Name   string
	Driver PortRef // Driver.Cell is NoCell for undriven nets
	Users  []PortRef
}

// HasDriver reports whether the net has a driver cell.
func (n *Net) HasDriver() bool { return n.Driver.Cell != NoCell }

// UserCount returns the number of user terminals.
func (n *Net) UserCount() int { return len(n.Users) }

// Netlist owns the cell and net tables.
//
// The zero value is not usable; create instances with [New].
type Netlist struct {
	cells    []Cell
	nets     []Net
	cellByID map[string]CellID
	netByID  map[string]NetID
}

// New creates an empty netlist.
func New() *Netlist {
	return &Netlist{
		cellByID: make(map[string]CellID),
		netByID:  make(map[string]NetID),
	}
}

// AddCell appends a cell and returns its handle. The Attrs map is
// initialised when nil.
func (nl *Netlist) AddCell(c Cell) (CellID, error) {
	if c.Name == "" {
		return NoCell, ErrInvalidName
	}
	if _, ok := nl.cellByID[c.Name]; ok {
		return NoCell, ErrDuplicateCell
	}
	if c.Attrs == nil {
		c.Attrs = map[string]string{}
	}
	id := CellID(len(nl.cells))
	nl.cells = append(nl.cells, c)
	nl.cellByID[c.Name] = id
	return id, nil
}

// AddNet appends a net and returns its handle. Pass a driver with
// Cell == NoCell for an undriven net. Every referenced cell must exist.
func (nl *Netlist) AddNet(name string, driver PortRef, users ...PortRef) (NetID, error) {
	if name == "" {
		return -1, ErrInvalidName
	}
	if _, ok := nl.netByID[name]; ok {
		return -1, ErrDuplicateNet
	}
	if driver.Cell != NoCell && !nl.validCell(driver.Cell) {
		return -1, ErrUnknownCell
	}
	for _, u := range users {
		if !nl.validCell(u.Cell) {
			return -1, ErrUnknownCell
		}
	}
	id := NetID(len(nl.nets))
	nl.nets = append(nl.nets, Net{
		Name:   name,
		Driver: driver,
		Users:  append([]PortRef(nil), users...),
	})
	nl.netByID[name] = id
	return id, nil
}

func (nl *Netlist) validCell(id CellID) bool {
	return id >= 0 && int(id) < len(nl.cells)
}

// Cell returns the cell for a handle. It panics on an invalid handle.
func (nl *Netlist) Cell(id CellID) *Cell { return &nl.cells[id] }

// Net returns the net for a handle. It panics on an invalid handle.
func (nl *Netlist) Net(id NetID) *Net { return &nl.nets[id] }

// CellByName looks up a cell handle by name.
func (nl *Netlist) CellByName(name string) (CellID, bool) {
	id, ok := nl.cellByID[name]
	return id, ok
}

// NetByName looks up a net handle by name.
func (nl *Netlist) NetByName(name string) (NetID, bool) {
	id, ok := nl.netByID[name]
	return id, ok
}

// CellCount returns the number of cells.
func (nl *Netlist) CellCount() int { return len(nl.cells) }

// NetCount returns the number of nets.
func (nl *Netlist) NetCount() int { return len(nl.nets) }

// Nets iterates over all nets in handle order.
func (nl *Netlist) Nets() iter.Seq2[NetID, *Net] {
	return func(yield func(NetID, *Net) bool) {
		for i := range nl.nets {
			if !yield(NetID(i), &nl.nets[i]) {
				return
			}
		}
	}
}

// DriverCell returns the handle and cell driving a net, or false when the
// net is undriven.
func (nl *Netlist) DriverCell(id NetID) (CellID, *Cell, bool) {
	n := &nl.nets[id]
	if !n.HasDriver() {
		return NoCell, nil, false
	}
	return n.Driver.Cell, &nl.cells[n.Driver.Cell], true
}
