package place

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/globalplace/pkg/netlist"
)

// netBuilder grows a netlist one net at a time, creating cells on first use.
type netBuilder struct {
	t  *testing.T
	nl *netlist.Netlist
}

func newNetBuilder(t *testing.T) *netBuilder {
	t.Helper()
	return &netBuilder{t: t, nl: netlist.New()}
}

func (b *netBuilder) cell(name string) netlist.CellID {
	if id, ok := b.nl.CellByName(name); ok {
		return id
	}
	id, err := b.nl.AddCell(netlist.Cell{Name: name, Type: "LUT4"})
	if err != nil {
		b.t.Fatalf("add cell %s: %v", name, err)
	}
	return id
}

// net adds a net driven by driver ("" for undriven) with the given users.
func (b *netBuilder) net(name, driver string, users ...string) netlist.NetID {
	b.t.Helper()
	d := netlist.PortRef{Cell: netlist.NoCell}
	if driver != "" {
		d = netlist.PortRef{Cell: b.cell(driver), Port: "O"}
	}
	refs := make([]netlist.PortRef, len(users))
	for i, u := range users {
		refs[i] = netlist.PortRef{Cell: b.cell(u), Port: fmt.Sprintf("I%d", i)}
	}
	id, err := b.nl.AddNet(name, d, refs...)
	if err != nil {
		b.t.Fatalf("add net %s: %v", name, err)
	}
	return id
}

// disjoint adds n nets that share no cells with each other.
func (b *netBuilder) disjoint(prefix string, n int) []netlist.NetID {
	ids := make([]netlist.NetID, n)
	for i := range n {
		ids[i] = b.net(fmt.Sprintf("%s%d", prefix, i), fmt.Sprintf("%s%d_drv", prefix, i), fmt.Sprintf("%s%d_usr", prefix, i))
	}
	return ids
}

func quietOptions(capacity int) Options {
	opts := DefaultOptions()
	opts.Capacity = capacity
	opts.Logger = log.New(io.Discard)
	return opts
}
