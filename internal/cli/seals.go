package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mycofab/imprint/pkg/config"
	"github.com/mycofab/imprint/pkg/errors"
	"github.com/mycofab/imprint/pkg/imposition/seal"
	"github.com/mycofab/imprint/pkg/pipeline"
)

// sealsOpts holds the command-line flags shared by the seals subcommands.
type sealsOpts struct {
	configPath string
	diameter   float64 // seal diameter in inches
	spacing    float64 // edge-to-edge spacing in inches
	margin     float64 // requested margin in inches
	paper      string
	count      int // positions to list (0 = full sheet)
	asJSON     bool
}

// newSealsCmd creates the seals command group.
func newSealsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seals",
		Short: "Plan circular seal sheets",
	}
	cmd.AddCommand(newSealsValidateCmd())
	cmd.AddCommand(newSealsLayoutCmd())
	return cmd
}

// addSealFlags registers the geometry flags shared by validate and layout.
func addSealFlags(cmd *cobra.Command, opts *sealsOpts) {
	cmd.Flags().StringVar(&opts.configPath, "config", "", "profile file (default: XDG config dir)")
	cmd.Flags().Float64Var(&opts.diameter, "diameter", pipeline.DefaultDiameter, "seal diameter in inches (1.0, 1.5, or 2.0)")
	cmd.Flags().Float64Var(&opts.spacing, "spacing", pipeline.DefaultSpacing, "edge-to-edge spacing in inches")
	cmd.Flags().Float64Var(&opts.margin, "margin", pipeline.DefaultMargin, "requested sheet margin in inches")
	cmd.Flags().StringVar(&opts.paper, "paper", "", "paper size name")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
}

// newSealsValidateCmd creates the "seals validate" subcommand. The layout
// validator enumerates every violated constraint rather than stopping at the
// first, so a misconfigured request can be fixed in one pass.
func newSealsValidateCmd() *cobra.Command {
	var opts sealsOpts

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a seal sheet configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sealConfig(&opts)
			if err != nil {
				return err
			}

			problems := seal.Validate(cfg)

			if opts.asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(struct {
					Valid    bool     `json:"valid"`
					Problems []string `json:"problems"`
				}{len(problems) == 0, problems}); err != nil {
					return err
				}
			} else {
				for _, p := range problems {
					printError("%s", p)
				}
				if len(problems) == 0 {
					printSuccess("Seal configuration is printable")
				}
			}

			if len(problems) > 0 {
				return errors.New(errors.ErrCodeInvalidInput,
					"seal configuration has %d problem(s)", len(problems))
			}
			return nil
		},
	}

	addSealFlags(cmd, &opts)
	return cmd
}

// newSealsLayoutCmd creates the "seals layout" subcommand, which prints the
// computed grid and the row-major position sequence.
func newSealsLayoutCmd() *cobra.Command {
	var opts sealsOpts

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the sheet grid and seal center positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sealConfig(&opts)
			if err != nil {
				return err
			}
			if problems := seal.Validate(cfg); len(problems) > 0 {
				for _, p := range problems {
					printError("%s", p)
				}
				return errors.New(errors.ErrCodeInvalidInput,
					"seal configuration has %d problem(s)", len(problems))
			}

			layout := seal.Layout(cfg)
			positions := seal.Positions(layout, cfg, opts.count)

			if opts.asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Layout    seal.GridLayout `json:"layout"`
					Positions []seal.Position `json:"positions"`
				}{layout, positions})
			}

			printKeyValue("grid", fmt.Sprintf("%d×%d (%d per sheet)",
				layout.Columns, layout.Rows, layout.SealsPerSheet))
			printKeyValue("cell", fmt.Sprintf("%.3f in", layout.CellSizeIn))
			printKeyValue("offset", fmt.Sprintf("%.3f, %.3f in", layout.GridOffsetXIn, layout.GridOffsetYIn))
			printKeyValue("usable area", fmt.Sprintf("%.2f × %.2f in", layout.UsableWidthIn, layout.UsableHeightIn))
			for _, p := range positions {
				printDetail("#%d row %d col %d center (%.3f, %.3f)", p.Index, p.Row, p.Col, p.CenterXIn, p.CenterYIn)
			}
			return nil
		},
	}

	addSealFlags(cmd, &opts)
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "positions to list (0 = full sheet)")
	return cmd
}

// sealConfig resolves the paper profile and builds the layout configuration.
func sealConfig(opts *sealsOpts) (seal.Config, error) {
	configPath := opts.configPath
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return seal.Config{}, err
	}
	paper, err := cfg.ResolvePaper(opts.paper)
	if err != nil {
		return seal.Config{}, err
	}
	return seal.Config{
		DiameterIn: opts.diameter,
		SpacingIn:  opts.spacing,
		MarginIn:   opts.margin,
		Paper:      paper,
	}, nil
}
