package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/novamkr/web-vitals/pkg/export/s3"
	"github.com/novamkr/web-vitals/pkg/fetch"
	"github.com/novamkr/web-vitals/pkg/render"
	"github.com/novamkr/web-vitals/pkg/services/audit"
)

type AuditCmd struct {
	env     *Env
	outDir  string
	format  string
	save    bool
	publish bool
	offline bool
}

func NewAuditCmd(env *Env) *cobra.Command {
	ac := &AuditCmd{env: env}
	cmd := &cobra.Command{
		Use:   "audit <file.html>",
		Short: "Audit a local HTML page and write a report",
		Args:  cobra.ExactArgs(1),
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.outDir, "out", "", "Directory for the rendered report (default: report.out_dir)")
	cmd.Flags().StringVar(&ac.format, "format", "", "Report format: html, text, json or yaml (default: report.format)")
	cmd.Flags().BoolVar(&ac.save, "save", false, "Persist the report for later review")
	cmd.Flags().BoolVar(&ac.publish, "publish", false, "Upload the rendered report to the configured S3 bucket")
	cmd.Flags().BoolVar(&ac.offline, "offline", false, "Skip network probes (broken links, image sizes, linked stylesheets)")

	return cmd
}

func (ac *AuditCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)
	cfg := ac.env.Config

	var fetcher fetch.Fetcher
	if !ac.offline && !cfg.Fetch.Offline {
		f, closeFetcher, err := ac.env.NewFetcher(ctx)
		if err != nil {
			return err
		}
		defer closeFetcher()
		fetcher = f
	}

	auditor := audit.NewAuditor(fetcher,
		audit.WithSettings(cfg.CheckSettings()),
		audit.WithAuthor(cfg.Report.Author),
	)
	report, err := auditor.AuditFile(ctx, args[0])
	if err != nil {
		return err
	}

	format := ac.format
	if format == "" {
		format = cfg.Report.Format
	}
	renderer, err := render.New(render.Format(format))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, report); err != nil {
		return err
	}

	outDir := ac.outDir
	if outDir == "" {
		outDir = cfg.Report.OutDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	name := render.FileName(report.Title, renderer)
	outPath := filepath.Join(outDir, name)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info().Str("path", outPath).Int("score", report.Score).Msg("report written")
	fmt.Fprintf(ac.env.Output, "Report written to %s (health score %d/100)\n", outPath, report.Score)

	for _, skipped := range report.SkippedChecks {
		fmt.Fprintf(ac.env.Output, "Check not completed: %s (%s)\n", skipped.Name, skipped.Reason)
	}

	if ac.save {
		reviews, closeDB, err := ac.env.OpenReviews()
		if err != nil {
			return err
		}
		defer closeDB()
		session, err := reviews.Create(ctx, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(ac.env.Output, "Report saved with id %s\n", session.Snapshot().ID)
	}

	if ac.publish {
		publisher, err := s3.NewPublisher(ctx, cfg.ExportSettings())
		if err != nil {
			return err
		}
		location, err := publisher.Publish(ctx, name, buf.Bytes())
		if err != nil {
			return err
		}
		fmt.Fprintf(ac.env.Output, "Report published to %s\n", location)
	}

	return nil
}
