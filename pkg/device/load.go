package device

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

type fillSpec struct {
	Type    string `toml:"type"`
	PerTile int    `toml:"per_tile"`
}

type siteSpec struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	X        int    `toml:"x"`
	Y        int    `toml:"y"`
	Disabled bool   `toml:"disabled"`
}

type deviceFile struct {
	Name   string              `toml:"name"`
	GridX  int                 `toml:"grid_x"`
	GridY  int                 `toml:"grid_y"`
	Compat map[string][]string `toml:"compat"`
	Fill   []fillSpec          `toml:"fill"`
	Sites  []siteSpec          `toml:"sites"`
}

// LoadFile reads a TOML device description.
func LoadFile(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a TOML device description from r.
func Decode(r io.Reader) (*Device, error) {
	var df deviceFile
	if _, err := toml.NewDecoder(r).Decode(&df); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	d, err := New(df.Name, df.GridX, df.GridY)
	if err != nil {
		return nil, err
	}
	for cellType, siteTypes := range df.Compat {
		d.AllowCellType(cellType, siteTypes...)
	}

	for _, f := range df.Fill {
		for x := 0; x < df.GridX; x++ {
			for y := 0; y < df.GridY; y++ {
				for i := 0; i < f.PerTile; i++ {
					name := fmt.Sprintf("X%dY%d/%s%d", x, y, f.Type, i)
					if _, err := d.AddSite(Site{Name: name, Type: f.Type, X: x, Y: y}); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	for _, s := range df.Sites {
		if _, err := d.AddSite(Site{Name: s.Name, Type: s.Type, X: s.X, Y: s.Y, Disabled: s.Disabled}); err != nil {
			return nil, err
		}
	}
	return d, nil
}
