package place

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/globalplace/pkg/netlist"
)

// Result is the coarse placement produced by [Placer.Place].
type Result struct {
	Capacity    int
	Constrained int // cells bound from BEL attributes
	Binned      int // nets placed by best-bin search
	Moves       int // nets moved while spreading
	Timings     []PhaseTiming
	Bins        [BinDim][BinDim][]netlist.NetID
}

func (r *Result) fill(g *Grid) {
	for x := range BinDim {
		for y := range BinDim {
			r.Bins[x][y] = g.bins[x][y].Nets()
		}
	}
}

// Whitespace returns every bin's whitespace, indexed [x][y].
func (r *Result) Whitespace() [BinDim][BinDim]int {
	var s [BinDim][BinDim]int
	for x := range BinDim {
		for y := range BinDim {
			s[x][y] = r.Capacity - len(r.Bins[x][y])
		}
	}
	return s
}

// =============================================================================
// Report - Result Serialization
// =============================================================================

// Report is the JSON form of a Result, with nets referenced by name so it can
// be read back without the netlist.
type Report struct {
	Capacity    int          `json:"capacity"`
	Constrained int          `json:"constrained"`
	Binned      int          `json:"binned"`
	Moves       int          `json:"moves"`
	Timings     []TimingJSON `json:"timings"`
	Bins        []BinReport  `json:"bins"`
}

// TimingJSON is one phase timing.
type TimingJSON struct {
	Phase   string  `json:"phase"`
	Seconds float64 `json:"seconds"`
}

// BinReport lists one bin's residents.
type BinReport struct {
	X          int      `json:"x"`
	Y          int      `json:"y"`
	Whitespace int      `json:"whitespace"`
	Nets       []string `json:"nets,omitempty"`
}

// Report converts a Result to its serializable form. Bins are listed x-major.
func (r *Result) Report(nl *netlist.Netlist) Report {
	rep := Report{
		Capacity:    r.Capacity,
		Constrained: r.Constrained,
		Binned:      r.Binned,
		Moves:       r.Moves,
		Timings:     make([]TimingJSON, len(r.Timings)),
		Bins:        make([]BinReport, 0, BinDim*BinDim),
	}
	for i, t := range r.Timings {
		rep.Timings[i] = TimingJSON{Phase: t.Phase.String(), Seconds: t.Duration.Seconds()}
	}
	for x := range BinDim {
		for y := range BinDim {
			ids := r.Bins[x][y]
			br := BinReport{X: x, Y: y, Whitespace: r.Capacity - len(ids)}
			for _, id := range ids {
				br.Nets = append(br.Nets, nl.Net(id).Name)
			}
			rep.Bins = append(rep.Bins, br)
		}
	}
	return rep
}

// Whitespace returns the report's whitespace grid, indexed [x][y]. Bins
// missing from the report count as empty.
func (rep *Report) Whitespace() [BinDim][BinDim]int {
	var s [BinDim][BinDim]int
	for x := range BinDim {
		for y := range BinDim {
			s[x][y] = rep.Capacity
		}
	}
	for _, b := range rep.Bins {
		if b.X >= 0 && b.X < BinDim && b.Y >= 0 && b.Y < BinDim {
			s[b.X][b.Y] = b.Whitespace
		}
	}
	return s
}

// Bin returns the report entry for (x, y).
func (rep *Report) Bin(x, y int) (BinReport, bool) {
	for _, b := range rep.Bins {
		if b.X == x && b.Y == y {
			return b, true
		}
	}
	return BinReport{}, false
}

// MarshalReport converts a Report to indented JSON bytes.
func MarshalReport(rep Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteReport(rep, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteReportFile writes a Report to a JSON file.
func WriteReportFile(rep Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteReport(rep, f)
}

// WriteReport writes a Report as JSON to an io.Writer.
func WriteReport(rep Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadReportFile reads a Report from a JSON file.
func ReadReportFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadReport(f)
}

// ReadReport decodes a Report from an io.Reader.
func ReadReport(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &rep, nil
}
