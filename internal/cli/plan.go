package cli

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iac-reconciler/state-refactor/pkg/directive"
	"github.com/iac-reconciler/state-refactor/pkg/load"
	"github.com/iac-reconciler/state-refactor/pkg/plan"
)

func planCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "plan <prior.json> <desired.json> <directives.json>",
		Short:   "Compute the state mutations reconciling prior state with the desired graph",
		Long:    `Compute the state mutations reconciling prior state with the desired graph, honoring moved, import and removed directives.`,
		Example: `  state-refactor plan prior.json desired.json directives.json`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := runPipeline(args[0], args[1], args[2])
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(load.Plan(p))
			}

			fmt.Printf("Plan %s: %d ops\n", p.ID, len(p.Ops))
			for _, op := range p.Ops {
				fmt.Printf("  %s\n", op)
			}

			// no error
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the plan as JSON")
	return cmd
}

// runPipeline loads the three input documents and runs
// validate -> match -> build. Warnings go to stderr; fatal diagnostics
// become the returned error and no plan is produced.
func runPipeline(priorFile, desiredFile, directivesFile string) (*plan.Plan, error) {
	var (
		priorDoc, desiredDoc load.GraphDocument
		directivesDoc        load.DirectivesDocument
	)
	if err := decodeFile(priorFile, &priorDoc); err != nil {
		return nil, err
	}
	if err := decodeFile(desiredFile, &desiredDoc); err != nil {
		return nil, err
	}
	if err := decodeFile(directivesFile, &directivesDoc); err != nil {
		return nil, err
	}

	prior, diags := load.Graph(priorDoc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid prior state %s: %w", priorFile, diags.Err())
	}
	desired, diags := load.Graph(desiredDoc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid desired graph %s: %w", desiredFile, diags.Err())
	}
	dirs, diags := load.Directives(directivesDoc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid directives %s: %w", directivesFile, diags.Err())
	}

	vs, diags := directive.Validate(dirs)
	if diags.HasErrors() {
		return nil, diags.Err()
	}

	corr, diags := plan.Match(prior, desired, vs)
	for _, w := range diags.Warnings() {
		log.Warn(w.String())
	}
	if diags.HasErrors() {
		return nil, diags.Err()
	}

	return plan.Build(corr), nil
}

func decodeFile(path string, into any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(into); err != nil {
		return fmt.Errorf("unable to decode %s: %w", path, err)
	}
	return nil
}
