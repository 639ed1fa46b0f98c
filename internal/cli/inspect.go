package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand creates the interactive segment browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags inputFlags

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the segments of a graph interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, res, err := c.run(ctx, args[0], flags)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			if res.Decomposition.Len() == 0 {
				printInfo(cmd.OutOrStdout(), "%s has no edges", args[0])
				return nil
			}

			p := tea.NewProgram(NewSegmentListModel(args[0], res), tea.WithContext(ctx), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
