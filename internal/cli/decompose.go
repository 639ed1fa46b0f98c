package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/graphio"
)

type decomposeOpts struct {
	inputFlags
	output  string
	format  string
	buffers bool
	indent  bool
}

// decomposeCommand creates the decompose command.
func (c *CLI) decomposeCommand() *cobra.Command {
	opts := decomposeOpts{}

	cmd := &cobra.Command{
		Use:   "decompose [file]",
		Short: "Split a graph into maximal polylines",
		Long: `Decompose the edges of a graph into maximal segments.

The input is a JSON document {"vertex_count": N, "edges": [[u,v],...], "faces": [[...],...]}
or a text edge list with one "u v" pair per line ("-" reads stdin).

The result is written in CSR form: vertex_indices holds every segment's
vertices back to back and segment_offsets holds where each segment starts.`,
		Example: `  wirechain decompose mesh.json
  wirechain decompose edges.txt -o segments.json --buffers
  wirechain decompose mesh.json --format text --verify`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDecompose(cmd, args[0], opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.format, "format", graphio.FormatJSON, "output format: json or text")
	cmd.Flags().BoolVar(&opts.buffers, "buffers", false, "pad output to fixed 2E/E buffers filled with -1")
	cmd.Flags().BoolVar(&opts.indent, "indent", false, "pretty-print JSON output")

	return cmd
}

func (c *CLI) runDecompose(cmd *cobra.Command, path string, opts decomposeOpts) error {
	if opts.format != graphio.FormatJSON && opts.format != graphio.FormatText {
		return errs.New(errs.ErrCodeUnsupported, "unsupported output format %q (want json or text)", opts.format)
	}
	if opts.buffers && opts.format != graphio.FormatJSON {
		return errs.New(errs.ErrCodeInvalidInput, "--buffers requires --format json")
	}

	ctx := cmd.Context()
	prog := newProgress(c.Logger)
	runner, res, err := c.run(ctx, path, opts.inputFlags)
	if err != nil {
		return err
	}
	defer runner.Close(ctx)

	wopts := graphio.WriteOptions{
		Buffers:   opts.buffers,
		EdgeCount: res.Graph.EdgeCount(),
		Indent:    opts.indent,
	}

	if opts.output == "" {
		if opts.format == graphio.FormatText {
			return graphio.WriteText(cmd.OutOrStdout(), res.Decomposition)
		}
		return graphio.WriteJSON(cmd.OutOrStdout(), res.Decomposition, wopts)
	}

	if err := errs.ValidatePath(opts.output); err != nil {
		return err
	}
	if err := graphio.WriteFile(opts.output, opts.format, res.Decomposition, wopts); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	prog.done(fmt.Sprintf("Decomposed %s", path))

	out := cmd.OutOrStdout()
	printSuccess(out, "Decomposed %s", path)
	printSummary(out, res.Stats, res.CacheHit)
	printFile(out, opts.output)
	return nil
}
