package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/pipeline"
	"github.com/matzehuels/wirechain/pkg/render"
)

type renderOpts struct {
	inputFlags
	output string
	format string
	labels bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the segments of a graph as SVG or DOT",
		Long: `Render a decomposition with Graphviz. Each segment is drawn in its own
color; Leaf and Branch vertices are drawn as large points.`,
		Example: `  wirechain render mesh.json -o mesh.svg
  wirechain render edges.txt -o edges.dot --labels`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "", "svg or dot (default: from output extension, else svg)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label vertices with their index")

	return cmd
}

// renderFormat picks the format from the flag or the output extension.
func renderFormat(flag, output string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".dot", ".gv":
		return render.FormatDOT, nil
	}
	return render.FormatSVG, nil
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	format, err := renderFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner, res, err := c.run(ctx, path, opts.inputFlags)
	if err != nil {
		return err
	}
	defer runner.Close(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d segments...", res.Decomposition.Len()))
	spinner.Start()
	ropts := pipeline.RenderOptions{
		Format: string(format),
		Labels: opts.labels,
		TTL:    c.runOptions(false, false).TTL,
	}
	data, cached, err := runner.RenderWithCacheInfo(ctx, res, ropts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := errs.ValidatePath(opts.output); err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Rendered %s", path)
	printSummary(out, res.Stats, cached)
	printFile(out, opts.output)
	return nil
}
