package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PalletStack/internal/export"
	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/piwi3910/PalletStack/internal/project"
)

// exportOpts holds the report output paths. Empty paths are skipped.
type exportOpts struct {
	pdf    string
	labels string
	xlsx   string
}

func (o *exportOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.pdf, "pdf", "", "write a PDF load report")
	cmd.Flags().StringVar(&o.labels, "labels", "", "write a PDF of QR box labels")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "write an Excel placement listing")
}

func (o exportOpts) any() bool {
	return o.pdf != "" || o.labels != "" || o.xlsx != ""
}

func newExportCmd(root *rootOpts) *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <plan.json>",
		Short: "Write reports for a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.any() {
				return errors.New("nothing to export: give --pdf, --labels or --xlsx")
			}
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			plan, err := project.LoadPlan(args[0])
			if err != nil {
				return fmt.Errorf("load plan: %w", err)
			}
			return writeExports(cmd.Context(), cmd.OutOrStdout(), plan, validatePlan(plan), ws.config, opts)
		},
	}

	opts.register(cmd)
	return cmd
}

// writeExports writes every requested report and prints the file names.
func writeExports(ctx context.Context, w io.Writer, plan model.LoadPlan, validations []model.ValidationResult, cfg model.AppConfig, opts exportOpts) error {
	logger := loggerFromContext(ctx)

	if opts.pdf != "" {
		prog := newProgress(logger)
		if err := export.ExportPDF(opts.pdf, plan, validations, cfg); err != nil {
			return fmt.Errorf("export PDF: %w", err)
		}
		prog.done("Wrote load report")
		printFile(w, opts.pdf)
	}
	if opts.labels != "" {
		prog := newProgress(logger)
		if err := export.ExportLabels(opts.labels, plan); err != nil {
			return fmt.Errorf("export labels: %w", err)
		}
		prog.done("Wrote box labels")
		printFile(w, opts.labels)
	}
	if opts.xlsx != "" {
		prog := newProgress(logger)
		if err := export.ExportXLSX(opts.xlsx, plan); err != nil {
			return fmt.Errorf("export XLSX: %w", err)
		}
		prog.done("Wrote placement workbook")
		printFile(w, opts.xlsx)
	}
	return nil
}
