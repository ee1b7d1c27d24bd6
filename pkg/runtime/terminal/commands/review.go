package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/render"
	"github.com/novamkr/web-vitals/pkg/services/review"
)

// ReviewCmd groups the post-audit editing commands. Every edit is applied
// through a review session and persisted before it is reported.
type ReviewCmd struct {
	env       *Env
	id        string
	category  string
	issues    []string
	note      string
	format    string
	outDir    string
	overwrite bool
}

func NewReviewCmd(env *Env) *cobra.Command {
	rc := &ReviewCmd{env: env}
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect and edit saved reports",
	}

	cmd.PersistentFlags().StringVar(&rc.format, "format", "text", "Output format: html, text, json or yaml")
	cmd.PersistentFlags().StringVar(&rc.outDir, "out", "", "Write the resulting report into this directory instead of stdout")
	cmd.PersistentFlags().BoolVar(&rc.overwrite, "overwrite", false, "Overwrite the report file instead of writing a _final copy")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved reports",
		RunE:  rc.runList,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Render a saved report",
		RunE:  rc.runShow,
	}
	show.Flags().StringVar(&rc.id, "id", "", "Report id")
	_ = show.MarkFlagRequired("id")

	remove := &cobra.Command{
		Use:   "remove",
		Short: "Remove issues from a saved report by description",
		RunE:  rc.runRemove,
	}
	remove.Flags().StringVar(&rc.id, "id", "", "Report id")
	remove.Flags().StringVar(&rc.category, "category", "", "Category id (e.g. missing_alt)")
	remove.Flags().StringArrayVar(&rc.issues, "issue", nil, "Issue description to remove (repeatable)")
	_ = remove.MarkFlagRequired("id")
	_ = remove.MarkFlagRequired("category")
	_ = remove.MarkFlagRequired("issue")

	annotate := &cobra.Command{
		Use:   "annotate",
		Short: "Attach a note to issues of a saved report",
		RunE:  rc.runAnnotate,
	}
	annotate.Flags().StringVar(&rc.id, "id", "", "Report id")
	annotate.Flags().StringVar(&rc.category, "category", "", "Category id (e.g. missing_alt)")
	annotate.Flags().StringArrayVar(&rc.issues, "issue", nil, "Issue description to annotate (repeatable)")
	annotate.Flags().StringVar(&rc.note, "note", "", "Note text; empty clears existing notes")
	_ = annotate.MarkFlagRequired("id")
	_ = annotate.MarkFlagRequired("category")
	_ = annotate.MarkFlagRequired("issue")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a saved report",
		RunE:  rc.runDelete,
	}
	del.Flags().StringVar(&rc.id, "id", "", "Report id")
	_ = del.MarkFlagRequired("id")

	cmd.AddCommand(list, show, remove, annotate, del)
	return cmd
}

func (rc *ReviewCmd) runList(cmd *cobra.Command, _ []string) error {
	mgr, closeDB, err := rc.env.OpenReviews()
	if err != nil {
		return err
	}
	defer closeDB()

	reports, err := mgr.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Fprintln(rc.env.Output, "No saved reports")
		return nil
	}
	for _, r := range reports {
		fmt.Fprintf(rc.env.Output, "%s  %3d/100  %3d issues  %s\n", r.ID, r.Score, r.IssueCount(), r.Title)
	}
	return nil
}

func (rc *ReviewCmd) runShow(cmd *cobra.Command, _ []string) error {
	mgr, closeDB, err := rc.env.OpenReviews()
	if err != nil {
		return err
	}
	defer closeDB()

	report, err := mgr.Get(cmd.Context(), rc.id)
	if err != nil {
		return err
	}
	return rc.emit(report, false)
}

func (rc *ReviewCmd) runRemove(cmd *cobra.Command, _ []string) error {
	mgr, closeDB, err := rc.env.OpenReviews()
	if err != nil {
		return err
	}
	defer closeDB()

	report, err := mgr.RemoveIssues(cmd.Context(), rc.id, review.RemoveRequest{
		domain.Category(rc.category): rc.issues,
	})
	if err != nil {
		return err
	}
	return rc.emit(report, true)
}

func (rc *ReviewCmd) runAnnotate(cmd *cobra.Command, _ []string) error {
	mgr, closeDB, err := rc.env.OpenReviews()
	if err != nil {
		return err
	}
	defer closeDB()

	notes := make(map[string]string, len(rc.issues))
	for _, description := range rc.issues {
		notes[description] = rc.note
	}
	report, err := mgr.Annotate(cmd.Context(), rc.id, review.AnnotateRequest{
		domain.Category(rc.category): notes,
	})
	if err != nil {
		return err
	}
	return rc.emit(report, true)
}

func (rc *ReviewCmd) runDelete(cmd *cobra.Command, _ []string) error {
	mgr, closeDB, err := rc.env.OpenReviews()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := mgr.Delete(cmd.Context(), rc.id); err != nil {
		return err
	}
	fmt.Fprintf(rc.env.Output, "Report %s deleted\n", rc.id)
	return nil
}

// emit renders report to stdout, or into --out. Edited reports go to the
// _final copy unless --overwrite is set.
func (rc *ReviewCmd) emit(report domain.Report, edited bool) error {
	renderer, err := render.New(render.Format(rc.format))
	if err != nil {
		return err
	}
	if rc.outDir == "" {
		return renderer.Render(rc.env.Output, report)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, report); err != nil {
		return err
	}
	path := filepath.Join(rc.outDir, render.FileName(report.Title, renderer))
	if edited && !rc.overwrite {
		path = render.FinalPath(path)
	}
	if err := os.MkdirAll(rc.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(rc.env.Output, "Report written to %s (health score %d/100)\n", path, report.Score)
	return nil
}
