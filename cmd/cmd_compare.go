package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"screen-match/internal/domain/entity"
)

// compareEnv окружение команды compare.
type compareEnv struct {
	root   *rootEnv
	method string
	min    float64
	max    float64
}

func compareCmd(root *rootEnv) *cobra.Command {
	env := &compareEnv{root: root}
	cmd := &cobra.Command{
		Use:   "compare REFERENCE CANDIDATE",
		Short: "Compare two screenshots and check the similarity range",
		Long: `
Compares CANDIDATE against REFERENCE with the chosen method (pixel, histogram
or robust) and fails if the similarity is outside [--min, --max].
`,
		Args: cobra.ExactArgs(2),
		RunE: env.run,
	}

	cmd.Flags().StringVar(&env.method, "method", string(entity.MethodRobust), "pixel, histogram or robust")
	cmd.Flags().Float64Var(&env.min, "min", entity.FullRange.Min, "lowest accepted similarity, percent")
	cmd.Flags().Float64Var(&env.max, "max", entity.FullRange.Max, "highest accepted similarity, percent")
	return cmd
}

func (c *compareEnv) run(cmd *cobra.Command, args []string) error {
	method, err := entity.ParseMethod(c.method)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sessions := c.root.container.SessionService
	const id = "cli"
	if _, err := sessions.Begin(ctx, id); err != nil {
		return err
	}
	if _, err := sessions.AttachReference(ctx, id, args[0]); err != nil {
		return err
	}
	if _, err := sessions.AttachCandidate(ctx, id, args[1]); err != nil {
		return err
	}

	rng := entity.Range{Min: c.min, Max: c.max}
	res, err := sessions.Compare(ctx, id, method, rng)
	if err != nil && res.Method == "" {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s similarity: %.2f%% (expected %s)\n", res.Method, res.Similarity, rng)
	return err
}
