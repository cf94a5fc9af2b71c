package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iac-reconciler/state-refactor/pkg/plan"
)

func summarizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "summarize <prior.json> <desired.json> <directives.json>",
		Short:   "Summarize the plan by mutation kind",
		Long:    `Summarize the plan by mutation kind.`,
		Example: `  state-refactor summarize prior.json desired.json directives.json`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := runPipeline(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			summary := plan.Summarize(p)

			fmt.Printf("Summary:\n")
			fmt.Printf("Moves: %d\n", summary.Moves)
			fmt.Printf("Binds: %d\n", summary.Binds)
			fmt.Printf("Removals: %d\n", summary.Removals)
			fmt.Printf("Destroys: %d\n", summary.Destroys)
			fmt.Printf("Creates: %d\n", summary.Creates)
			fmt.Printf("Total: %d\n", summary.Total)

			// no error
			return nil
		},
	}

	return cmd
}
