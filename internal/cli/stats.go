package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		flags  inputFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarize the decomposition of a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, res, err := c.run(ctx, args[0], flags)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					GraphHash string `json:"graph_hash"`
					Stats     any    `json:"stats"`
				}{res.GraphHash, res.Stats})
			}

			fmt.Fprintln(out, StyleTitle.Render(args[0])+" "+StyleDim.Render(res.GraphHash[:12]))
			fmt.Fprintln(out, statsTable(res.Stats))
			printSummary(out, res.Stats, res.CacheHit)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")

	return cmd
}
