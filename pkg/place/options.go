package place

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Default tuning values.
const (
	// DefaultCapacity is the soft number of nets every bin is sized for.
	DefaultCapacity = 1250

	// DefaultDiagonalPenalty is added to a diagonal neighbour's spread score,
	// so an orthogonal neighbour wins at equal occupancy.
	DefaultDiagonalPenalty = 1

	// DefaultSpreadThresholdOffset is added to the capacity when deciding
	// whether a spread move is worth making.
	DefaultSpreadThresholdOffset = 1
)

// Options configures the placer.
//
// The tuning fields are pointers so an unset value can be told apart from an
// explicit zero: [Options.SetDefaults] fills nil fields with the Default
// constants, and a zero-value Options behaves exactly like [DefaultOptions].
type Options struct {
	// Capacity is the whitespace of an empty bin.
	Capacity int `toml:"capacity"`

	// DiagonalPenalty scales the neighbour-distance term of the spread score:
	// score = occupancy + DiagonalPenalty*(|dx|+|dy|-1).
	DiagonalPenalty *int `toml:"diagonal_penalty"`

	// SpreadThresholdOffset sets the move threshold:
	// move when best score < Capacity + SpreadThresholdOffset - whitespace.
	SpreadThresholdOffset *int `toml:"spread_threshold_offset"`

	// Logger receives progress and occupancy snapshots. Defaults to log.Default().
	Logger *log.Logger `toml:"-"`
}

// Int returns a pointer to v, for setting the optional tuning fields.
func Int(v int) *int { return &v }

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	var opts Options
	opts.SetDefaults()
	return opts
}

// SetDefaults fills every unset field.
func (o *Options) SetDefaults() {
	if o.Capacity <= 0 {
		o.Capacity = DefaultCapacity
	}
	if o.DiagonalPenalty == nil {
		o.DiagonalPenalty = Int(DefaultDiagonalPenalty)
	}
	if o.SpreadThresholdOffset == nil {
		o.SpreadThresholdOffset = Int(DefaultSpreadThresholdOffset)
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Validate reports whether the options can drive a placement.
func (o Options) Validate() error {
	if o.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", o.Capacity)
	}
	return nil
}

// LoadOptionsFile reads tuning values from a TOML file on top of
// [DefaultOptions]. Keys missing from the file keep their defaults.
func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeOptions(f)
}

// DecodeOptions reads TOML tuning values from r on top of [DefaultOptions].
func DecodeOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	if _, err := toml.NewDecoder(r).Decode(&opts); err != nil {
		return Options{}, fmt.Errorf("decode: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
