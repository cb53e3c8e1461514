package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/globalplace/pkg/buildinfo"
	"github.com/matzehuels/globalplace/pkg/device"
	"github.com/matzehuels/globalplace/pkg/errors"
	"github.com/matzehuels/globalplace/pkg/netlist"
	"github.com/matzehuels/globalplace/pkg/place"
	"github.com/matzehuels/globalplace/pkg/place/heatmap"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	device   string // device description (TOML)
	config   string // placer tuning (TOML)
	capacity int    // overrides the configured bin capacity when positive
	output   string // result file path
	heatmap  string // optional heatmap path (.svg or .dot)
}

// placeCommand creates the place command that runs global placement.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place [netlist.json]",
		Short: "Bin a netlist onto the device grid",
		Long: `Bin a netlist onto the device grid.

Cells carrying a BEL attribute are bound to the named site first. Every other
net is then placed in the bin it is most connected to, and overfull bins are
spread into their neighbours.

Detailed placement is not implemented yet: the result records which bin each
net landed in, not a legal site assignment. The run reports this as a warning
and still writes the coarse result.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.device, "device", "d", "", "device description (TOML)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "placer tuning file (TOML)")
	cmd.Flags().IntVar(&opts.capacity, "capacity", 0, "bin capacity (overrides the config file)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <netlist>"+resultSuffix+")")
	cmd.Flags().StringVar(&opts.heatmap, "heatmap", "", "write an occupancy heatmap (.svg or .dot)")
	_ = cmd.MarkFlagRequired("device")
	_ = cmd.MarkFlagFilename("device", "toml")
	_ = cmd.MarkFlagFilename("config", "toml")
	_ = cmd.MarkFlagFilename("heatmap", "svg", "dot")

	return cmd
}

// runPlace loads the inputs, runs the placer and writes the result.
func (c *CLI) runPlace(ctx context.Context, input string, opts placeOpts) error {
	ctx = withLogger(ctx, c.Logger)
	c.Logger.Debug("starting", "build", buildinfo.String())

	nl, err := loadNetlist(ctx, input)
	if err != nil {
		return err
	}
	dev, err := loadDevice(ctx, opts.device)
	if err != nil {
		return err
	}
	popts, err := loadPlacerOptions(opts.config, opts.capacity)
	if err != nil {
		return err
	}
	popts.Logger = c.Logger

	res, err := place.New(nl, dev, popts).Place(ctx)
	unfinished := errors.Is(err, errors.ErrCodeUnfinished)
	if err != nil && !unfinished {
		if errors.IsConfiguration(err) {
			c.Logger.Error("BEL constraint rejected, check the netlist's fixed cells", "code", errors.GetCode(err))
		}
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = defaultResultPath(input)
	}
	rep := res.Report(nl)
	if err := place.WriteReportFile(rep, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if opts.heatmap != "" {
		if err := writeHeatmap(ctx, rep, opts.heatmap); err != nil {
			return err
		}
	}

	printSuccess("Global placement complete")
	printFile(outputPath)
	if opts.heatmap != "" {
		printFile(opts.heatmap)
	}
	printStats(res.Constrained, res.Binned, res.Moves)
	if unfinished {
		printWarning("%s: result is bin-level only", errors.UserMessage(err))
	}
	printNewline()
	printNextStep("Inspect", appName+" inspect "+outputPath)

	return nil
}

// loadNetlist reads a netlist JSON file.
func loadNetlist(ctx context.Context, path string) (*netlist.Netlist, error) {
	prog := newProgress(loggerFromContext(ctx))
	nl, err := netlist.ReadFile(path)
	if err != nil {
		return nil, inputError(errors.ErrCodeInvalidNetlist, err, "load netlist %s", path)
	}
	prog.done(fmt.Sprintf("Loaded netlist: %d cells, %d nets", nl.CellCount(), nl.NetCount()))
	return nl, nil
}

// loadDevice reads a device TOML file. Legality explanations go to the
// context logger.
func loadDevice(ctx context.Context, path string) (*device.Device, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	dev, err := device.LoadFile(path)
	if err != nil {
		return nil, inputError(errors.ErrCodeInvalidDevice, err, "load device %s", path)
	}
	dev.SetLogger(logger)
	prog.done(fmt.Sprintf("Loaded device %s: %dx%d grid, %d sites", dev.Name, dev.GridDimX(), dev.GridDimY(), dev.SiteCount()))
	return dev, nil
}

// loadPlacerOptions reads the tuning file, if any, and applies a positive
// capacity override.
func loadPlacerOptions(path string, capacity int) (place.Options, error) {
	opts := place.DefaultOptions()
	if path != "" {
		var err error
		if opts, err = place.LoadOptionsFile(path); err != nil {
			return place.Options{}, inputError(errors.ErrCodeInvalidConfig, err, "load config %s", path)
		}
	}
	if capacity > 0 {
		opts.Capacity = capacity
	} else if capacity < 0 {
		return place.Options{}, errors.New(errors.ErrCodeInvalidConfig, "capacity must be positive, got %d", capacity)
	}
	return opts, nil
}

// inputError wraps a load failure, reporting missing files separately.
func inputError(code errors.Code, err error, format string, args ...any) error {
	if stderrors.Is(err, fs.ErrNotExist) {
		code = errors.ErrCodeFileNotFound
	}
	return errors.Wrap(code, err, format, args...)
}

// writeHeatmap writes the occupancy heatmap as DOT source or rendered SVG,
// chosen by the file extension.
func writeHeatmap(ctx context.Context, rep place.Report, path string) error {
	dot := heatmap.ToDOT(rep.Whitespace(), rep.Capacity, heatmap.Options{
		Title:      "bin whitespace",
		ShowValues: true,
	})

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot":
		data = []byte(dot)
	case ".svg":
		spinner := newSpinnerWithContext(ctx, "Rendering heatmap...")
		spinner.Start()
		svg, err := heatmap.RenderSVG(dot)
		if err != nil {
			spinner.StopWithError("Heatmap rendering failed")
			return fmt.Errorf("render heatmap: %w", err)
		}
		spinner.Stop()
		data = svg
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unsupported heatmap format %q (use .svg or .dot)", ext)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write heatmap %s: %w", path, err)
	}
	return nil
}
