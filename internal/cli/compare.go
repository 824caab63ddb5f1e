package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PalletStack/internal/engine"
)

func newCompareCmd(root *rootOpts) *cobra.Command {
	var opts jobOpts

	cmd := &cobra.Command{
		Use:   "compare [job-file]",
		Short: "Pack one pallet with every strategy and compare",
		Long: `Pack the job's boxes onto a single pallet with every registered strategy
and print placed boxes, utilisation and stability side by side. The best
result (most boxes placed, then stability, then volume) is marked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			ws, err := root.loadWorkspace(ctx)
			if err != nil {
				return err
			}
			pj, err := prepareJob(ctx, ws, args, opts)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			results := engine.CompareStrategies(engine.DefaultRegistry(), pj.boxes, pj.pallet)
			prog.done(fmt.Sprintf("Compared %d strategies", len(results)))

			best := engine.BestComparison(results)
			printTitle(w, "%s on %s", pj.job.Name, pj.pallet.Label)
			rows := [][]string{{"", "Strategy", "Placed", "Unplaced", "Volume", "Weight", "Stability"}}
			for i, r := range results {
				mark := ""
				if i == best {
					mark = styleIconSuccess.Render(iconBest)
				}
				rows = append(rows, []string{
					mark,
					r.StrategyID,
					fmt.Sprint(r.PlacedCount),
					fmt.Sprint(r.UnplacedCount),
					percent(r.VolumeUtilization),
					percent(r.WeightUtilization),
					fmt.Sprint(r.StabilityScore),
				})
			}
			printTable(w, rows)
			return nil
		},
	}

	// compare always uses every strategy and a single floor
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "compare a saved job template instead of a job file")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "pallet preset key, overriding the job's pallet")
	return cmd
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the packing strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, s := range engine.DefaultRegistry().List() {
				printKeyValue(w, s.ID(), s.Name())
				printDetail(w, "%s", s.Description())
			}
			return nil
		},
	}
}
