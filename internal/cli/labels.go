package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mycofab/imprint/pkg/config"
	"github.com/mycofab/imprint/pkg/errors"
	"github.com/mycofab/imprint/pkg/imposition/label"
)

// labelsOpts holds the command-line flags for the labels command.
type labelsOpts struct {
	configPath string
	width      float64 // label width in inches
	height     float64 // label height in inches
	margin     float64 // requested top/bottom margin in inches
	quantity   int
	paper      string
	asJSON     bool
}

// newLabelsCmd creates the labels command group.
func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Plan rectangular label sheets",
	}
	cmd.AddCommand(newLabelsValidateCmd())
	return cmd
}

// newLabelsValidateCmd creates the "labels validate" subcommand. It checks a
// label print request, prints the computed grid and every warning, and fails
// with a non-zero exit when the request has blocking errors.
func newLabelsValidateCmd() *cobra.Command {
	opts := labelsOpts{quantity: 1}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a label print request and show the sheet grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabelsValidate(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "profile file (default: XDG config dir)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "label width in inches (required)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "label height in inches (required)")
	cmd.Flags().Float64Var(&opts.margin, "margin", 0, "requested top/bottom margin in inches")
	cmd.Flags().IntVarP(&opts.quantity, "quantity", "q", opts.quantity, "labels to print")
	cmd.Flags().StringVar(&opts.paper, "paper", "", "paper size name")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full report as JSON")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func runLabelsValidate(cmd *cobra.Command, opts *labelsOpts) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	paper, err := cfg.ResolvePaper(opts.paper)
	if err != nil {
		return err
	}

	report := label.ValidateOn(paper, opts.width, opts.height, opts.margin, opts.quantity)

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printLabelReport(report, opts)
	}

	if !report.Valid {
		return errors.New(errors.ErrCodeInvalidInput, "label request is not printable")
	}
	return nil
}

// printLabelReport renders a validation report for humans.
func printLabelReport(report label.Report, opts *labelsOpts) {
	for _, e := range report.Errors {
		printError("%s: %s", e.Field, e.Message)
	}
	for _, w := range report.Warnings {
		printWarning("%s: %s", w.Field, w.Message)
	}

	if !report.Valid {
		return
	}

	printSuccess("Label %.2f × %.2f in is printable", opts.width, opts.height)
	layout := report.Layout
	grid := fmt.Sprintf("%d×%d (%d per sheet)", layout.Columns, layout.Rows, layout.PerSheet)
	if layout.RotationUsed {
		grid += " rotated 90°"
	}
	printKeyValue("grid", grid)
	printKeyValue("margins", fmt.Sprintf("%.3f in sides, %.3f in top/bottom",
		layout.MarginLeftIn, layout.MarginTopIn))
	printKeyValue("usable area", fmt.Sprintf("%.2f × %.2f in",
		layout.UsableWidthIn, layout.UsableHeightIn))
	printKeyValue("quantity", fmt.Sprintf("%d", report.ClampedQuantity))
	printKeyValue("sheets", fmt.Sprintf("%d", report.SheetsRequired))
}
