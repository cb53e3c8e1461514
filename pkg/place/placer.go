package place

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/globalplace/pkg/device"
	"github.com/matzehuels/globalplace/pkg/errors"
	"github.com/matzehuels/globalplace/pkg/netlist"
	"github.com/matzehuels/globalplace/pkg/observability"
)

// Device is the part of the device model the placer reads and binds through.
// [*device.Device] implements it.
type Device interface {
	GridDimX() int
	GridDimY() int
	SiteByName(name string) (device.SiteID, bool)
	SiteType(site device.SiteID) string
	SiteLocation(site device.SiteID) (x, y int)
	IsValidSiteForCellType(cellType string, site device.SiteID) bool
	BoundCell(site device.SiteID) (netlist.CellID, bool)
	BindSite(site device.SiteID, cell netlist.CellID, cellType string, strength device.Strength) error
	IsSiteLocationValid(site device.SiteID, explain bool) bool
}

// Phase identifies a stage of the placement run. Phases run in declaration
// order and never go back.
type Phase int

const (
	PhaseConstraintPlacement Phase = iota
	PhaseFreePlacement
	PhaseWhitespaceSpread
	PhaseDetailedPlacement
)

var phaseNames = [...]string{"constraint-placement", "free-placement", "whitespace-spread", "detailed-placement"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// PhaseTiming is the wall-clock time spent in one phase.
type PhaseTiming struct {
	Phase    Phase
	Duration time.Duration
}

// Placer runs global placement over one netlist and device.
type Placer struct {
	nl     *netlist.Netlist
	dev    Device
	opts   Options
	grid   *Grid
	logger *log.Logger
}

// New creates a placer. Unset options take their defaults.
func New(nl *netlist.Netlist, dev Device, opts Options) *Placer {
	opts.SetDefaults()
	return &Placer{
		nl:     nl,
		dev:    dev,
		opts:   opts,
		grid:   NewGrid(nl, opts),
		logger: opts.Logger,
	}
}

// Grid returns the placer's bin grid.
func (p *Placer) Grid() *Grid { return p.grid }

// Place runs constraint placement, free placement and whitespace spreading
// in that order, binding user-fixed cells on the device as it goes.
//
// The first configuration or legality error stops the run and is returned
// with a nil Result, as does cancellation of ctx, which is checked between
// nets and between bins. After spreading, Place returns the coarse Result
// together with an UNFINISHED error: detailed placement is not implemented,
// so the result is bin-level only and must not be taken as a legal placement.
func (p *Placer) Place(ctx context.Context) (*Result, error) {
	p.logger.Info("=== global placement start ===")

	res := &Result{Capacity: p.opts.Capacity}

	constrained, err := runPhase(ctx, p, res, PhaseConstraintPlacement, p.placeConstraints)
	if err != nil {
		return nil, err
	}
	res.Constrained = constrained

	binned, err := runPhase(ctx, p, res, PhaseFreePlacement, p.placeFree)
	if err != nil {
		return nil, err
	}
	res.Binned = binned

	moves, err := runPhase(ctx, p, res, PhaseWhitespaceSpread, p.spreadWhitespace)
	if err != nil {
		return nil, err
	}
	res.Moves = moves

	p.logger.Info("=== global placement finish ===")
	p.logTimings(res.Timings)

	res.fill(p.grid)
	return res, errors.New(errors.ErrCodeUnfinished, "%s is not yet implemented", PhaseDetailedPlacement)
}

func runPhase(ctx context.Context, p *Placer, res *Result, phase Phase, fn func(context.Context) (int, error)) (int, error) {
	hooks := observability.Placer()
	hooks.OnPhaseStart(ctx, phase.String())
	start := time.Now()

	n, err := fn(ctx)

	elapsed := time.Since(start)
	res.Timings = append(res.Timings, PhaseTiming{Phase: phase, Duration: elapsed})
	hooks.OnPhaseComplete(ctx, phase.String(), n, elapsed, err)
	return n, err
}

// placeConstraints binds every non-pseudo driver cell carrying a BEL
// attribute to its named site and bins its net there.
func (p *Placer) placeConstraints(ctx context.Context) (int, error) {
	placed := 0
	dimX, dimY := p.dev.GridDimX(), p.dev.GridDimY()

	for id := range p.nl.Nets() {
		if ctx.Err() != nil {
			return placed, ctx.Err()
		}
		cellID, cell, ok := p.nl.DriverCell(id)
		if !ok || cell.Pseudo {
			continue
		}
		siteName, fixed := cell.FixedSite()
		if !fixed {
			continue
		}

		site, ok := p.dev.SiteByName(siteName)
		if !ok {
			return placed, errors.New(errors.ErrCodeSiteNotFound,
				"no site named %q located for this device (processing %s attribute on %q)",
				siteName, netlist.AttrBEL, cell.Name)
		}
		if !p.dev.IsValidSiteForCellType(cell.Type, site) {
			return placed, errors.New(errors.ErrCodeSiteTypeMismatch,
				"site %q of type %q does not match cell %q of type %q",
				siteName, p.dev.SiteType(site), cell.Name, cell.Type)
		}
		if bound, ok := p.dev.BoundCell(site); ok {
			if bound != cellID {
				return placed, errors.New(errors.ErrCodeSiteConflict,
					"cell %q cannot be bound to site %q since it is already bound to cell %q",
					cell.Name, siteName, p.cellName(bound))
			}
			continue
		}

		if err := p.dev.BindSite(site, cellID, cell.Type, device.StrengthUser); err != nil {
			return placed, errors.Wrap(errors.ErrCodeInternal, err, "bind %q to %q", cell.Name, siteName)
		}
		x, y := p.dev.SiteLocation(site)
		p.grid.InsertNet(ToBinLoc(GridLoc{X: x, Y: y}, dimX, dimY), id)

		if !p.dev.IsSiteLocationValid(site, true) {
			return placed, errors.New(errors.ErrCodeIllegalLocation,
				"site %q of type %q is not valid for cell %q of type %q",
				siteName, p.dev.SiteType(site), cell.Name, cell.Type)
		}
		placed++
	}

	p.logger.Infof("Placed %d cells based on constraints.", placed)
	p.logOccupancy("after fixed initial placement")
	return placed, nil
}

// placeFree bins every remaining placeable net at its best-scoring bin.
func (p *Placer) placeFree(ctx context.Context) (int, error) {
	placed := 0
	for id := range p.nl.Nets() {
		if ctx.Err() != nil {
			return placed, ctx.Err()
		}
		_, cell, ok := p.nl.DriverCell(id)
		if !ok || cell.Pseudo {
			continue
		}
		if _, fixed := cell.FixedSite(); fixed {
			continue
		}
		p.grid.InsertNet(p.grid.FindBestBin(id), id)
		placed++
	}

	p.logger.Infof("Binned %d cells.", placed)
	p.logOccupancy("after connectivity-based initial placement")
	return placed, nil
}

func (p *Placer) spreadWhitespace(ctx context.Context) (int, error) {
	hooks := observability.Placer()
	moves, err := p.grid.sweep(func(x, y, m int) error {
		hooks.OnSpread(ctx, x, y, m)
		return ctx.Err()
	})
	if err != nil {
		return moves, err
	}

	p.logger.Infof("Spreading moved %d nets.", moves)
	p.logOccupancy("after whitespace spreading")
	return moves, nil
}

func (p *Placer) cellName(id netlist.CellID) string {
	if id < 0 || int(id) >= p.nl.CellCount() {
		return fmt.Sprintf("#%d", id)
	}
	return p.nl.Cell(id).Name
}

func (p *Placer) logOccupancy(label string) {
	p.logger.Info(label + ":\n" + p.grid.Occupancy())
}

func (p *Placer) logTimings(timings []PhaseTiming) {
	p.logger.Info("initial placement:")
	for _, t := range timings {
		p.logger.Infof("    %-22s %.02fs", t.Phase.String()+":", t.Duration.Seconds())
	}
}
