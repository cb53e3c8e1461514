package device

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/globalplace/pkg/netlist"
)

var (
	// ErrInvalidGrid is returned by [New] when a grid extent is not positive.
	ErrInvalidGrid = errors.New("grid extents must be positive")

	// ErrDuplicateSite is returned by [Device.AddSite] for a reused site name.
	ErrDuplicateSite = errors.New("duplicate site name")

	// ErrSiteOutOfGrid is returned by [Device.AddSite] when the site lies
	// outside the device grid.
	ErrSiteOutOfGrid = errors.New("site outside device grid")

	// ErrSiteBound is returned by [Device.BindSite] when the site already
	// holds a cell.
	ErrSiteBound = errors.New("site already bound")
)

// SiteID is a handle into the device's site table.
type SiteID int32

// NoSite marks an absent site.
const NoSite SiteID = -1

// Strength records who made a binding and how firmly it holds.
type Strength int

const (
	StrengthNone Strength = iota
	StrengthWeak
	StrengthStrong
	StrengthPlacer
	StrengthFixed
	StrengthLocked
	StrengthUser
)

var strengthNames = [...]string{"none", "weak", "strong", "placer", "fixed", "locked", "user"}

func (s Strength) String() string {
	if s < 0 || int(s) >= len(strengthNames) {
		return fmt.Sprintf("strength(%d)", int(s))
	}
	return strengthNames[s]
}

// Site is a physical location able to host one cell.
type Site struct {
	Name     string
	Type     string
	X, Y     int
	Disabled bool
}

type binding struct {
	cell     netlist.CellID
	cellType string
	strength Strength
}

// Device is the mutable device model. It is not safe for concurrent use.
type Device struct {
	Name string

	dimX, dimY int
	sites      []Site
	siteByName map[string]SiteID
	compat     map[string]map[string]bool
	bound      map[SiteID]binding
	cellSite   map[netlist.CellID]SiteID
	logger     *log.Logger
}

// New creates an empty device with the given grid extents.
func New(name string, dimX, dimY int) (*Device, error) {
	if dimX <= 0 || dimY <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, dimX, dimY)
	}
	return &Device{
		Name:       name,
		dimX:       dimX,
		dimY:       dimY,
		siteByName: make(map[string]SiteID),
		compat:     make(map[string]map[string]bool),
		bound:      make(map[SiteID]binding),
		cellSite:   make(map[netlist.CellID]SiteID),
		logger:     log.Default(),
	}, nil
}

// SetLogger sets the logger used to explain legality failures.
func (d *Device) SetLogger(l *log.Logger) {
	if l != nil {
		d.logger = l
	}
}

// GridDimX returns the grid extent on the X axis.
func (d *Device) GridDimX() int { return d.dimX }

// GridDimY returns the grid extent on the Y axis.
func (d *Device) GridDimY() int { return d.dimY }

// SiteCount returns the number of sites.
func (d *Device) SiteCount() int { return len(d.sites) }

// AddSite adds a site and returns its handle.
func (d *Device) AddSite(s Site) (SiteID, error) {
	if _, ok := d.siteByName[s.Name]; ok {
		return NoSite, fmt.Errorf("%w: %q", ErrDuplicateSite, s.Name)
	}
	if s.X < 0 || s.X >= d.dimX || s.Y < 0 || s.Y >= d.dimY {
		return NoSite, fmt.Errorf("%w: %q at (%d,%d)", ErrSiteOutOfGrid, s.Name, s.X, s.Y)
	}
	id := SiteID(len(d.sites))
	d.sites = append(d.sites, s)
	d.siteByName[s.Name] = id
	return id, nil
}

// AllowCellType declares that cells of cellType may occupy sites of siteType.
func (d *Device) AllowCellType(cellType string, siteTypes ...string) {
	m := d.compat[cellType]
	if m == nil {
		m = make(map[string]bool)
		d.compat[cellType] = m
	}
	for _, st := range siteTypes {
		m[st] = true
	}
}

// Site returns the site for a handle. It panics on an invalid handle.
func (d *Device) Site(id SiteID) *Site { return &d.sites[id] }

// SiteByName looks up a site by name.
func (d *Device) SiteByName(name string) (SiteID, bool) {
	id, ok := d.siteByName[name]
	return id, ok
}

// SiteType returns the type of a site.
func (d *Device) SiteType(id SiteID) string { return d.sites[id].Type }

// SiteLocation returns the grid coordinate of a site.
func (d *Device) SiteLocation(id SiteID) (x, y int) {
	s := &d.sites[id]
	return s.X, s.Y
}

// IsValidSiteForCellType reports whether a cell of cellType may be bound to
// the site.
func (d *Device) IsValidSiteForCellType(cellType string, id SiteID) bool {
	siteType := d.sites[id].Type
	return siteType == cellType || d.compat[cellType][siteType]
}

// BoundCell returns the cell currently bound to a site.
func (d *Device) BoundCell(id SiteID) (netlist.CellID, bool) {
	b, ok := d.bound[id]
	if !ok {
		return netlist.NoCell, false
	}
	return b.cell, true
}

// CellSite returns the site currently holding a cell.
func (d *Device) CellSite(cell netlist.CellID) (SiteID, bool) {
	id, ok := d.cellSite[cell]
	return id, ok
}

// BindStrength returns the strength of a site's binding, or StrengthNone.
func (d *Device) BindStrength(id SiteID) Strength {
	return d.bound[id].strength
}

// BindSite binds a cell of the given type to a site.
func (d *Device) BindSite(id SiteID, cell netlist.CellID, cellType string, strength Strength) error {
	if b, ok := d.bound[id]; ok {
		return fmt.Errorf("%w: %q holds cell %d", ErrSiteBound, d.sites[id].Name, b.cell)
	}
	d.bound[id] = binding{cell: cell, cellType: cellType, strength: strength}
	d.cellSite[cell] = id
	return nil
}

// UnbindSite releases a site. Unbinding a free site is a no-op.
func (d *Device) UnbindSite(id SiteID) {
	b, ok := d.bound[id]
	if !ok {
		return
	}
	delete(d.bound, id)
	delete(d.cellSite, b.cell)
}

// BoundCount returns the number of bound sites.
func (d *Device) BoundCount() int { return len(d.bound) }

// IsSiteLocationValid reports whether the site and its current binding are
// legal. With explain set, the reason for an illegal site is logged.
func (d *Device) IsSiteLocationValid(id SiteID, explain bool) bool {
	s := &d.sites[id]
	if s.Disabled {
		if explain {
			d.logger.Warn("site is disabled", "site", s.Name)
		}
		return false
	}
	if b, ok := d.bound[id]; ok && !d.IsValidSiteForCellType(b.cellType, id) {
		if explain {
			d.logger.Warn("bound cell type not accepted by site", "site", s.Name, "site_type", s.Type, "cell_type", b.cellType)
		}
		return false
	}
	return true
}
