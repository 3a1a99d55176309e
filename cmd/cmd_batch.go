package main

import (
	"fmt"

	"github.com/spf13/cobra"

	app "screen-match/internal/application"
)

type batchEnv struct {
	root *rootEnv
}

func batchCmd(root *rootEnv) *cobra.Command {
	env := &batchEnv{root: root}
	return &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Compare every pair listed in a YAML manifest",
		Long: `
Reads a manifest of the form

  pairs:
    - name: search-thumbnail
      reference: shots/search.png
      candidate: shots/detail.png
      method: robust
      min: 80
      max: 100
      report: out/search-thumbnail.png

and compares the pairs concurrently (SCREEN_MATCH_WORKERS). Relative paths
are resolved against the manifest directory.
`,
		Args: cobra.ExactArgs(1),
		RunE: env.run,
	}
}

func (b *batchEnv) run(cmd *cobra.Command, args []string) error {
	m, err := app.LoadManifest(args[0])
	if err != nil {
		return err
	}

	outcomes, err := b.root.container.BatchService.Run(cmd.Context(), m)
	w := cmd.OutOrStdout()
	for _, o := range outcomes {
		status := "ok"
		if !o.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%-4s %-30s %6.2f%% (%s)", status, o.Pair.Name, o.Result.Similarity, o.Pair.Range())
		if o.Err != nil {
			fmt.Fprintf(w, ": %v", o.Err)
		}
		fmt.Fprintln(w)
	}
	return err
}
