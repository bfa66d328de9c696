package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mycofab/imprint/pkg/config"
	"github.com/mycofab/imprint/pkg/imposition/seal"
	"github.com/mycofab/imprint/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// These options control seal geometry, render parameters, and output handling.
type renderOpts struct {
	input      string  // file with one token per line (alternative to args)
	configPath string  // profile file location
	outputDir  string  // directory receiving one artifact per token
	diameter   float64 // seal diameter in inches
	spacing    float64 // edge-to-edge spacing in inches
	margin     float64 // requested sheet margin in inches
	paper      string  // paper name (built-in or profile)
	radius     float64 // QR half-side in scene units
	boost      float64 // contrast boost (dot area multiplier)
	format     string  // output format: "svg" or "json"
	workers    int     // render fan-out
	refresh    bool    // bypass the artifact cache
	noCache    bool    // disable caching entirely
	layoutOut  string  // optional path for the layout JSON
}

// newRenderCmd creates the render command for generating seal artwork.
// Tokens come from positional arguments or from --input, one per line.
//
// Default settings:
//   - diameter: 1.5in, spacing: 0.25in, margin: 0.25in
//   - radius: 100 scene units, contrast boost: 1.0
//   - format: svg
//   - output: current directory, one file per token
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		outputDir: ".",
		format:    pipeline.FormatSVG,
	}

	cmd := &cobra.Command{
		Use:   "render [token...]",
		Short: "Render seal artwork for batch tokens",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := collectTokens(args, opts.input)
			if err != nil {
				return err
			}
			return runRender(cmd, tokens, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "file with one token per line")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "profile file (default: XDG config dir)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", opts.outputDir, "directory for rendered artifacts")
	cmd.Flags().Float64Var(&opts.diameter, "diameter", 0, "seal diameter in inches (1.0, 1.5, or 2.0)")
	cmd.Flags().Float64Var(&opts.spacing, "spacing", 0, "edge-to-edge spacing in inches")
	cmd.Flags().Float64Var(&opts.margin, "margin", 0, "requested sheet margin in inches")
	cmd.Flags().StringVar(&opts.paper, "paper", "", "paper size name")
	cmd.Flags().Float64Var(&opts.radius, "radius", 0, "QR half-side in scene units")
	cmd.Flags().Float64Var(&opts.boost, "contrast-boost", 0, "dot area multiplier for print contrast")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), json")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel render workers")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached artifact exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.layoutOut, "layout", "", "also write the sheet layout as JSON to this path")

	return cmd
}

// collectTokens merges positional tokens with --input file lines.
// Blank lines and lines starting with '#' are skipped.
func collectTokens(args []string, input string) ([]string, error) {
	tokens := append([]string(nil), args...)

	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("open token file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			tokens = append(tokens, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read token file: %w", err)
		}
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("no tokens given (pass arguments or --input)")
	}
	return tokens, nil
}

// runRender executes the full pipeline and writes one artifact per token.
func runRender(cmd *cobra.Command, tokens []string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	configPath := opts.configPath
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyConfigDefaults(cmd, opts, cfg)

	paper, err := cfg.ResolvePaper(opts.paper)
	if err != nil {
		return err
	}

	artifactCache, err := openCache(opts.noCache, cfg.Defaults.CacheDir)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(artifactCache, nil, logger)
	defer runner.Close()

	jobOpts := pipeline.Options{
		Tokens:        tokens,
		Diameter:      opts.diameter,
		Spacing:       opts.spacing,
		Margin:        opts.margin,
		Paper:         paper,
		Radius:        opts.radius,
		ContrastBoost: opts.boost,
		Format:        opts.format,
		Workers:       opts.workers,
		Refresh:       opts.refresh,
		Logger:        logger,
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d seals...", len(tokens)))
	spin.Start()
	result, err := runner.Execute(ctx, jobOpts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	if result.ClampedCount < len(tokens) {
		printWarning("Token count clamped from %d to %d (per-job maximum)", len(tokens), result.ClampedCount)
	}

	written, err := writeArtifacts(result, opts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d seals", result.ClampedCount)
	printRenderStats(result.ClampedCount, result.CacheInfo.RenderHits)
	printKeyValue("layout", fmt.Sprintf("%d×%d (%d per sheet)",
		result.Layout.Columns, result.Layout.Rows, result.Layout.SealsPerSheet))
	printKeyValue("sheets", fmt.Sprintf("%d", result.SheetsRequired))
	for _, path := range written {
		printFile(path)
	}

	if opts.layoutOut != "" {
		if err := writeLayout(ctx, result, opts.layoutOut); err != nil {
			return err
		}
		printFile(opts.layoutOut)
	} else {
		printNewline()
		printNextStep("Inspect the sheet plan", "imprint seals layout")
	}
	return nil
}

// applyConfigDefaults fills unset flags from the loaded profile.
// Explicit flags always win over the profile.
func applyConfigDefaults(cmd *cobra.Command, opts *renderOpts, cfg config.Config) {
	if !cmd.Flags().Changed("margin") && cfg.Defaults.MarginIn > 0 {
		opts.margin = cfg.Defaults.MarginIn
	}
	if !cmd.Flags().Changed("radius") && cfg.Defaults.Radius > 0 {
		opts.radius = cfg.Defaults.Radius
	}
	if !cmd.Flags().Changed("contrast-boost") && cfg.Defaults.ContrastBoost > 0 {
		opts.boost = cfg.Defaults.ContrastBoost
	}
}

// writeArtifacts stores each rendered artifact under the output directory,
// named after its (sanitized) token. Iteration follows the clamped token
// order so the file listing is stable.
func writeArtifacts(result *pipeline.Result, opts *renderOpts) ([]string, error) {
	written := make([]string, 0, len(result.Artifacts))
	for token, artifact := range result.Artifacts {
		path := filepath.Join(opts.outputDir, artifactFilename(token, opts.format))
		out, err := openOutput(path)
		if err != nil {
			return nil, err
		}
		_, werr := out.Write(artifact)
		cerr := out.Close()
		if werr != nil {
			return nil, werr
		}
		if cerr != nil {
			return nil, cerr
		}
		written = append(written, path)
	}
	return written, nil
}

// writeLayout serializes the layout, positions and sheet count as JSON.
func writeLayout(ctx context.Context, result *pipeline.Result, path string) error {
	tracker := newProgress(loggerFromContext(ctx))

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := encodeLayoutJSON(out, result); err != nil {
		return err
	}
	tracker.done(fmt.Sprintf("Wrote layout to %s", path))
	return nil
}

// encodeLayoutJSON writes the sheet plan portion of a result as indented JSON.
func encodeLayoutJSON(w io.Writer, result *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		JobID          string          `json:"job_id"`
		Layout         seal.GridLayout `json:"layout"`
		Positions      []seal.Position `json:"positions"`
		SheetsRequired int             `json:"sheets_required"`
	}{
		JobID:          result.JobID,
		Layout:         result.Layout,
		Positions:      result.Positions,
		SheetsRequired: result.SheetsRequired,
	})
}
