package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hrconsole/internal/client/models"
)

const defaultDownloadDir = "downloads"

// Candidates lists the applications to an opening.
func (a *App) Candidates(ctx context.Context, args []string) error {
	if err := a.requireRole(ctx, models.RoleHR); err != nil {
		return err
	}
	id, err := parseID(args, "candidates <openingID>")
	if err != nil {
		return err
	}

	list, err := a.hrService.ListCandidates(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	if len(list) == 0 {
		printlnFn(fmt.Sprintf("No candidates for opening %d.", id))
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			fmt.Sprint(c.JobCandidateID), c.FullName(), c.Email, c.ResumeFile,
		})
	}
	printlnFn(table([]string{"ID", "NAME", "EMAIL", "CV"}, rows))
	return nil
}

// CV downloads a candidate's CV into the configured download directory.
func (a *App) CV(ctx context.Context, args []string) error {
	if err := a.requireRole(ctx, models.RoleHR); err != nil {
		return err
	}
	if len(args) == 0 {
		printlnFn("Usage: cv <file>")
		return errUsage
	}

	path, err := a.hrService.DownloadCV(ctx, args[0], a.downloadDir())
	if err != nil {
		return a.fail(err)
	}
	printlnFn("Saved to", path)
	return nil
}

func (a *App) downloadDir() string {
	if a.config == nil || a.config.DownloadDir == "" {
		return defaultDownloadDir
	}
	return a.config.DownloadDir
}
