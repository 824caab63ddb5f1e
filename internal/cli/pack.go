package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PalletStack/internal/engine"
	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/piwi3910/PalletStack/internal/project"
	"github.com/piwi3910/PalletStack/internal/validation"
)

// defaultWastePercent is the packing loss assumed by --estimate.
const defaultWastePercent = 20

// jobOpts are the flags that select and override a job. They are shared by
// pack and compare.
type jobOpts struct {
	template string
	strategy string
	preset   string
	floors   int
}

func (o *jobOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.template, "template", "t", "", "pack a saved job template instead of a job file")
	cmd.Flags().StringVarP(&o.strategy, "strategy", "s", "", "packing strategy id (see 'palletstack strategies')")
	cmd.Flags().StringVarP(&o.preset, "preset", "p", "", "pallet preset key, overriding the job's pallet")
	cmd.Flags().IntVarP(&o.floors, "floors", "f", 0, "maximum floors per pallet stack")
}

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	jobOpts
	out      string  // plan JSON output path
	estimate bool    // print a pallet count estimate before packing
	waste    float64 // waste percent for the estimate
	exports  exportOpts
}

// preparedJob is a job resolved into concrete boxes, pallet and strategy.
type preparedJob struct {
	job      model.Job
	path     string
	boxes    []model.Box
	pallet   model.Pallet
	strategy engine.Strategy
}

func newPackCmd(root *rootOpts) *cobra.Command {
	opts := packOpts{waste: defaultWastePercent}

	cmd := &cobra.Command{
		Use:   "pack [job-file]",
		Short: "Pack a job onto pallet stacks",
		Long: `Pack the boxes of a job file (TOML or JSON) or a saved template onto as many
pallet stacks as needed, validate every stack and print a summary.

The plan can be saved as JSON for 'validate' and 'export', or exported
directly with --pdf, --labels and --xlsx.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			return runPack(cmd.Context(), cmd.OutOrStdout(), ws, args, opts)
		},
	}

	opts.jobOpts.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "output", "o", "", "save the plan as JSON")
	cmd.Flags().BoolVar(&opts.estimate, "estimate", false, "print a pallet count estimate")
	cmd.Flags().Float64Var(&opts.waste, "waste", defaultWastePercent, "packing loss in percent for --estimate")
	opts.exports.register(cmd)

	return cmd
}

func runPack(ctx context.Context, w io.Writer, ws *workspace, args []string, opts packOpts) error {
	logger := loggerFromContext(ctx)

	pj, err := prepareJob(ctx, ws, args, opts.jobOpts)
	if err != nil {
		return err
	}

	if opts.estimate {
		est := model.CalculatePalletEstimate(pj.boxes, pj.pallet, opts.waste)
		printEstimate(w, est)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	prog := newProgress(logger)
	plan := engine.PackMultiple(engine.MultiPalletOptions{
		Boxes:              pj.boxes,
		PalletBase:         pj.pallet,
		Strategy:           pj.strategy,
		MaxFloorsPerPallet: pj.job.MaxFloors,
		NamePrefix:         pj.job.NamePrefix,
		IDs:                model.UUIDGenerator{},
	})
	plan.Name = pj.job.Name
	prog.done(fmt.Sprintf("Packed %d boxes onto %d stacks", plan.PlacedCount(), len(plan.Pallets)))

	validations := validatePlan(plan)
	printPlanSummary(w, plan, validations, ws.config.ShowWarnings)

	if opts.out != "" {
		if err := project.SavePlan(opts.out, plan); err != nil {
			return fmt.Errorf("save plan: %w", err)
		}
		printFile(w, opts.out)
	}

	if err := writeExports(ctx, w, plan, validations, ws.config, opts.exports); err != nil {
		return err
	}

	if pj.path != "" {
		if abs, err := filepath.Abs(pj.path); err == nil {
			ws.config.AddRecentJob(abs)
			if err := ws.saveConfig(); err != nil {
				logger.Warn("Could not record recent job", "err", err)
			}
		}
	}
	return nil
}

// prepareJob loads the job from a file or template, applies flag overrides
// and config defaults, and resolves pallet, boxes and strategy.
func prepareJob(ctx context.Context, ws *workspace, args []string, opts jobOpts) (*preparedJob, error) {
	logger := loggerFromContext(ctx)
	pj := &preparedJob{}

	switch {
	case opts.template != "" && len(args) > 0:
		return nil, errors.New("give either a job file or --template, not both")
	case opts.template != "":
		t, err := ws.findTemplate(opts.template)
		if err != nil {
			return nil, err
		}
		pj.job = t.ToJob(t.Name)
		if err := project.ValidateJob(pj.job); err != nil {
			return nil, err
		}
		logger.Debug("Loaded template", "name", t.Name, "lines", len(pj.job.Boxes))
	case len(args) > 0:
		pj.path = args[0]
		job, warnings, err := project.LoadJob(pj.path)
		for _, msg := range warnings {
			logger.Warn(msg)
		}
		if err != nil {
			return nil, err
		}
		pj.job = job
		logger.Debug("Loaded job", "file", pj.path, "lines", len(job.Boxes))
	default:
		return nil, errors.New("a job file or --template is required")
	}

	if opts.strategy != "" {
		pj.job.Strategy = opts.strategy
	}
	if opts.preset != "" {
		pj.job.PalletPreset = opts.preset
		pj.job.Pallet = nil
	}
	if opts.floors > 0 {
		pj.job.MaxFloors = opts.floors
	}
	pj.job.ApplyDefaults(ws.config)

	ids := model.UUIDGenerator{}
	pallet, err := pj.job.ResolvePallet(&ws.inventory, ids)
	if err != nil {
		return nil, err
	}
	pj.pallet = pallet

	strategy, err := engine.DefaultRegistry().Get(pj.job.Strategy)
	if err != nil {
		return nil, err
	}
	pj.strategy = strategy
	pj.boxes = model.ExpandLines(ids, pj.job.Boxes)

	logger.Debug("Job prepared", "strategy", strategy.ID(), "pallet", pallet.Label,
		"boxes", len(pj.boxes), "floors", pj.job.MaxFloors)
	return pj, nil
}

// validatePlan validates every stack; the result slice follows plan.Pallets.
func validatePlan(plan model.LoadPlan) []model.ValidationResult {
	results := make([]model.ValidationResult, len(plan.Pallets))
	for i, s := range plan.Pallets {
		results[i] = validation.ValidateStack(s, 0)
	}
	return results
}

func printEstimate(w io.Writer, est model.PalletEstimate) {
	printTitle(w, "Estimate")
	printKeyValue(w, "Box volume", fmt.Sprintf("%.2f m³", est.TotalBoxVolume/1e9))
	printKeyValue(w, "Box weight", fmt.Sprintf("%.1f kg", est.TotalBoxWeight))
	printKeyValue(w, "By volume", fmt.Sprintf("%.2f pallets", est.PalletsByVolume))
	printKeyValue(w, "By weight", fmt.Sprintf("%.2f pallets", est.PalletsByWeight))
	printKeyValue(w, "Minimum", styleNumber.Render(fmt.Sprint(est.PalletsNeededMin)))
	printKeyValue(w, "Recommended", styleNumber.Render(fmt.Sprintf("%d (%.0f%% waste)", est.PalletsWithWaste, est.WastePercent)))
	fmt.Fprintln(w)
}

func printPlanSummary(w io.Writer, plan model.LoadPlan, validations []model.ValidationResult, showWarnings bool) {
	total := plan.PlacedCount() + len(plan.UnplacedBoxes)
	name := plan.Name
	if name == "" {
		name = "plan"
	}

	printTitle(w, "%s", name)
	printKeyValue(w, "Strategy", plan.Strategy)
	if len(plan.Pallets) > 0 && len(plan.Pallets[0].Floors) > 0 {
		printKeyValue(w, "Pallet", plan.Pallets[0].Base().Pallet.Label)
	}
	printKeyValue(w, "Stacks", styleNumber.Render(fmt.Sprint(len(plan.Pallets))))
	printKeyValue(w, "Boxes placed", fmt.Sprintf("%d / %d", plan.PlacedCount(), total))
	fmt.Fprintln(w)

	rows := [][]string{{"Stack", "Floors", "Boxes", "Height", "Weight", "Valid"}}
	for i, s := range plan.Pallets {
		valid := styleIconSuccess.Render(iconSuccess)
		if i < len(validations) && !validations[i].IsValid {
			valid = styleIconError.Render(iconError)
		}
		rows = append(rows, []string{
			s.ID,
			fmt.Sprint(len(s.Floors)),
			fmt.Sprint(s.BoxCount()),
			fmt.Sprintf("%.0f mm", s.TotalHeight()),
			fmt.Sprintf("%.1f kg", s.TotalWeight()),
			valid,
		})
	}
	printTable(w, rows)
	fmt.Fprintln(w)

	printViolations(w, plan, validations, showWarnings)

	if n := len(plan.UnplacedBoxes); n > 0 {
		printWarning(w, "%d box(es) could not be placed", n)
		for _, b := range plan.UnplacedBoxes {
			d := b.Dimensions
			printDetail(w, "%s %.0fx%.0fx%.0f mm, %.1f kg", boxLabel(b), d.Width, d.Height, d.Depth, b.Weight)
		}
	} else {
		printSuccess(w, "All boxes placed")
	}
}

// printViolations prints every error, and warnings when showWarnings is set,
// prefixed with the stack they belong to.
func printViolations(w io.Writer, plan model.LoadPlan, validations []model.ValidationResult, showWarnings bool) {
	for i, r := range validations {
		stack := fmt.Sprintf("#%d", i+1)
		if i < len(plan.Pallets) {
			stack = plan.Pallets[i].ID
		}
		printResult(w, stack, r, showWarnings)
	}
}

func printResult(w io.Writer, subject string, r model.ValidationResult, showWarnings bool) {
	for _, v := range r.Errors() {
		printError(w, "%s %s: %s", subject, v.Code, v.Message)
	}
	if !showWarnings {
		return
	}
	for _, v := range r.Warnings() {
		printWarning(w, "%s %s: %s", subject, v.Code, v.Message)
	}
}

func boxLabel(b model.Box) string {
	if b.Label != "" {
		return b.Label
	}
	return b.ID
}
