package netlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Serialization Types
// =============================================================================

type document struct {
	Cells []cellJSON `json:"cells"`
	Nets  []netJSON  `json:"nets"`
}

type cellJSON struct {
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	Pseudo bool              `json:"pseudo,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
}

type portJSON struct {
	Cell string `json:"cell"`
	Port string `json:"port,omitempty"`
}

type netJSON struct {
	Name   string     `json:"name"`
	Driver *portJSON  `json:"driver,omitempty"`
	Users  []portJSON `json:"users,omitempty"`
}

// =============================================================================
// Netlist Serialization API
// =============================================================================

// Marshal converts a netlist to indented JSON bytes.
func Marshal(nl *Netlist) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(nl, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a netlist to a JSON file.
func WriteFile(nl *Netlist, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(nl, f)
}

// Write writes a netlist as JSON to an io.Writer.
func Write(nl *Netlist, w io.Writer) error {
	return writeTo(nl, w)
}

// ReadFile reads a JSON netlist file.
func ReadFile(path string) (*Netlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Read decodes a JSON netlist from an io.Reader.
func Read(r io.Reader) (*Netlist, error) {
	return readFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(nl *Netlist, w io.Writer) error {
	doc := document{
		Cells: make([]cellJSON, len(nl.cells)),
		Nets:  make([]netJSON, len(nl.nets)),
	}
	for i, c := range nl.cells {
		cj := cellJSON{Name: c.Name, Type: c.Type, Pseudo: c.Pseudo}
		if len(c.Attrs) > 0 {
			cj.Attrs = c.Attrs
		}
		doc.Cells[i] = cj
	}
	for i, n := range nl.nets {
		nj := netJSON{Name: n.Name}
		if n.HasDriver() {
			nj.Driver = &portJSON{Cell: nl.cells[n.Driver.Cell].Name, Port: n.Driver.Port}
		}
		for _, u := range n.Users {
			nj.Users = append(nj.Users, portJSON{Cell: nl.cells[u.Cell].Name, Port: u.Port})
		}
		doc.Nets[i] = nj
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*Netlist, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	nl := New()
	for _, c := range doc.Cells {
		if _, err := nl.AddCell(Cell{Name: c.Name, Type: c.Type, Pseudo: c.Pseudo, Attrs: c.Attrs}); err != nil {
			return nil, fmt.Errorf("cell %q: %w", c.Name, err)
		}
	}

	resolve := func(p portJSON) (PortRef, error) {
		id, ok := nl.CellByName(p.Cell)
		if !ok {
			return PortRef{}, fmt.Errorf("%w: %q", ErrUnknownCell, p.Cell)
		}
		return PortRef{Cell: id, Port: p.Port}, nil
	}

	for _, n := range doc.Nets {
		driver := PortRef{Cell: NoCell}
		if n.Driver != nil {
			d, err := resolve(*n.Driver)
			if err != nil {
				return nil, fmt.Errorf("net %q driver: %w", n.Name, err)
			}
			driver = d
		}
		users := make([]PortRef, 0, len(n.Users))
		for _, u := range n.Users {
			p, err := resolve(u)
			if err != nil {
				return nil, fmt.Errorf("net %q user: %w", n.Name, err)
			}
			users = append(users, p)
		}
		if _, err := nl.AddNet(n.Name, driver, users...); err != nil {
			return nil, fmt.Errorf("net %q: %w", n.Name, err)
		}
	}
	return nl, nil
}
