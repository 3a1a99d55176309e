package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type reportEnv struct {
	root  *rootEnv
	label string
}

func reportCmd(root *rootEnv) *cobra.Command {
	env := &reportEnv{root: root}
	cmd := &cobra.Command{
		Use:   "report REFERENCE CANDIDATE OUTPUT",
		Short: "Write the visual difference of two screenshots",
		Long: `
Writes the per-pixel colour difference of the two screenshots to OUTPUT
(.png, .jpg, .jpeg, .bmp, .tif, .tiff). The parent directory must exist.
`,
		Args: cobra.ExactArgs(3),
		RunE: env.run,
	}
	cmd.Flags().StringVar(&env.label, "label", "", "scenario name used in notifications")
	return cmd
}

func (r *reportEnv) run(cmd *cobra.Command, args []string) error {
	report, err := r.root.container.ComparisonService.Report(cmd.Context(), r.label, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "diff: %s (%dx%d), similarity %.2f%%\n",
		report.DiffPath, report.Width, report.Height, report.Result.Similarity)
	if report.ArtifactURL != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "artifact: %s\n", report.ArtifactURL)
	}
	return nil
}

type breakdownEnv struct {
	root  *rootEnv
	label string
	out   string
}

func breakdownCmd(root *rootEnv) *cobra.Command {
	env := &breakdownEnv{root: root}
	cmd := &cobra.Command{
		Use:   "breakdown REFERENCE CANDIDATE",
		Short: "Print pixel, histogram and robust scores",
		Args:  cobra.ExactArgs(2),
		RunE:  env.run,
	}
	cmd.Flags().StringVar(&env.label, "label", "", "scenario name used in notifications")
	cmd.Flags().StringVar(&env.out, "out", "", "also write the diff image to this path")
	return cmd
}

func (b *breakdownEnv) run(cmd *cobra.Command, args []string) error {
	res, err := b.root.container.ComparisonService.Breakdown(cmd.Context(), b.label, args[0], args[1], b.out)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "pixel:     %.2f%%\n", res.Pixel.Similarity)
	fmt.Fprintf(w, "histogram: %.2f%%\n", res.Histogram.Similarity)
	fmt.Fprintf(w, "robust:    %.2f%%\n", res.Robust.Similarity)
	if res.Report != nil {
		fmt.Fprintf(w, "diff:      %s\n", res.Report.DiffPath)
	}
	return nil
}
