package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/graphio"
	"github.com/matzehuels/wirechain/pkg/pipeline"
)

// inputFlags are shared by every command that reads a graph file.
type inputFlags struct {
	format  string
	verify  bool
	noCache bool
	refresh bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "input-format", "", "input format: json or text (default: from extension)")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "check the decomposition invariants before returning")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
}

// readInput reads a graph from path, or from stdin when path is "-".
func readInput(path, format string) (graphio.Input, error) {
	if path == "-" {
		if format == "" {
			format = graphio.FormatText
		}
		return graphio.Read(os.Stdin, format)
	}
	if format == "" {
		return graphio.ReadFile(path)
	}
	if err := errs.ValidatePath(path); err != nil {
		return graphio.Input{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return graphio.Input{}, errs.New(errs.ErrCodeFileNotFound, "file not found: %s", path)
		}
		return graphio.Input{}, err
	}
	defer f.Close()
	return graphio.Read(f, format)
}

// run reads path and decomposes it with a runner built from the config.
func (c *CLI) run(ctx context.Context, path string, flags inputFlags) (*pipeline.Runner, *pipeline.Result, error) {
	in, err := readInput(path, flags.format)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("read graph", "path", path, "vertices", in.VertexCount, "edges", len(in.Edges))

	runner, err := c.newRunner(ctx, flags.noCache, false)
	if err != nil {
		return nil, nil, err
	}
	res, err := runner.Execute(ctx, in, c.runOptions(flags.verify, flags.refresh))
	if err != nil {
		_ = runner.Close(ctx)
		return nil, nil, err
	}
	return runner, res, nil
}
