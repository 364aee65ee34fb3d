package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TilePlan/internal/engine"
	"github.com/piwi3910/TilePlan/internal/export"
	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/piwi3910/TilePlan/internal/project"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	project   string // saved project file
	output    string // output file path
	format    string // png, pdf, dxf, xlsx; empty means from the extension
	labels    string // optional cut label PDF path
	watermark bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{watermark: true}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Lay out a saved project and write the plan to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "project file to render")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, pdf, dxf, xlsx (default from --out extension)")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "also write cut tile labels to this PDF")
	cmd.Flags().BoolVar(&opts.watermark, "watermark", opts.watermark, "draw the watermark on PNG and PDF output")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("out")
	return cmd
}

func (c *CLI) runRender(opts renderOpts) error {
	start := time.Now()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	formatName := opts.format
	if formatName == "" {
		formatName = filepath.Ext(opts.output)
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	proj, err := project.Load(opts.project)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded project", "id", proj.ID, "name", proj.Name, "scheme", proj.Scheme)

	plan, err := engine.New(engine.Config{Canvas: cfg.CanvasSize()}).Plan(proj)
	if err != nil {
		return fmt.Errorf("plan %s: %w", opts.project, err)
	}

	exportOpts := export.Options{}
	if opts.watermark {
		exportOpts.WatermarkText = cfg.WatermarkText
	}
	if err := export.ExportFile(opts.output, format, plan, exportOpts); err != nil {
		return err
	}
	if opts.labels != "" {
		if err := export.ExportCutLabels(opts.labels, plan); err != nil {
			return err
		}
	}

	c.Logger.Info(summary(plan), "out", opts.output, "elapsed", time.Since(start).Round(time.Millisecond))
	c.Logger.Debug("offcuts", "cut_pieces", plan.Offcuts.CutPieces,
		"from_offcuts", plan.Offcuts.FromOffcuts, "tiles_for_cuts", plan.Offcuts.TilesForCuts)
	return nil
}

func summary(plan model.Plan) string {
	est := plan.Estimate
	return fmt.Sprintf("Laid %d tiles (%d whole), buy %d for %.2f",
		plan.TilesUsed(), plan.WholeTiles(), est.TilesWithWaste, est.EstimatedCost)
}
