package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/hrconsole/internal/client/models"
)

const dateLayout = "2006-01-02"

// table renders rows as aligned columns.
func table(header []string, rows [][]string) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Openings lists job openings. Anyone may browse them.
func (a *App) Openings(ctx context.Context) error {
	list, err := a.hrService.ListOpenings(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(list) == 0 {
		printlnFn("No openings.")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, o := range list {
		rows = append(rows, []string{
			fmt.Sprint(o.OpeningID), o.JobTitle, yesNo(o.OpenFlag), o.DateCreated.Format(dateLayout),
		})
	}
	printlnFn(table([]string{"ID", "TITLE", "OPEN", "CREATED"}, rows))
	return nil
}

func printOpening(o *models.Opening) {
	printlnFn(strings.Join([]string{
		fmt.Sprintf("Opening %d", o.OpeningID),
		"Title:       " + o.JobTitle,
		"Open:        " + yesNo(o.OpenFlag),
		"Created:     " + o.DateCreated.Format(dateLayout),
		"Description: " + deref(o.Description),
	}, "\n"))
}

// Opening shows one opening.
func (a *App) Opening(ctx context.Context, args []string) error {
	id, err := parseID(args, "opening <id>")
	if err != nil {
		return err
	}

	o, err := a.hrService.GetOpening(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	printOpening(o)
	return nil
}

// AddOpening creates an opening from a title and an optional multi-line
// description.
func (a *App) AddOpening(ctx context.Context) error {
	if err := a.requireRole(ctx, models.RoleHR); err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Job title", a.out)
	if err != nil {
		return err
	}
	desc, err := getMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	o, err := a.hrService.CreateOpening(ctx, title, desc)
	if err != nil {
		return a.fail(err)
	}
	printlnFn(fmt.Sprintf("Opening %d created.", o.OpeningID))
	return nil
}

// EditOpening patches an opening. Empty answers keep the current value; a
// single "-" clears the description.
func (a *App) EditOpening(ctx context.Context, args []string) error {
	if err := a.requireRole(ctx, models.RoleHR); err != nil {
		return err
	}
	id, err := parseID(args, "editopening <id>")
	if err != nil {
		return err
	}

	cur, err := a.hrService.GetOpening(ctx, id)
	if err != nil {
		return a.fail(err)
	}

	var patch models.OpeningPatch

	title, err := getSimpleText(a.reader, fmt.Sprintf("Job title [%s]", cur.JobTitle), a.out)
	if err != nil {
		return err
	}
	if title != "" && title != cur.JobTitle {
		patch.JobTitle = &title
	}

	desc, err := getSimpleText(a.reader, "Description (empty keeps, - clears)", a.out)
	if err != nil {
		return err
	}
	switch desc {
	case "":
	case "-":
		empty := ""
		patch.Description = &empty
	default:
		patch.Description = &desc
	}

	open, err := getYesNo(a.reader, fmt.Sprintf("Open? (y/n) [%s]", yesNo(cur.OpenFlag)), a.out)
	if errors.Is(err, errInvalidAnswer) {
		printlnFn(fmt.Sprintf("Invalid answer: %v.", err))
		return errUsage
	}
	if err != nil {
		return err
	}
	if open != nil && *open != cur.OpenFlag {
		patch.OpenFlag = open
	}

	o, err := a.hrService.UpdateOpening(ctx, id, patch)
	if err != nil {
		return a.fail(err)
	}
	printOpening(o)
	return nil
}

// DeleteOpening removes an opening after confirmation.
func (a *App) DeleteOpening(ctx context.Context, args []string) error {
	if err := a.requireRole(ctx, models.RoleHR); err != nil {
		return err
	}
	id, err := parseID(args, "delopening <id>")
	if err != nil {
		return err
	}

	confirmed, err := getYesNo(a.reader, fmt.Sprintf("Delete opening %d? (y/N)", id), a.out)
	if err != nil && !errors.Is(err, errInvalidAnswer) {
		return err
	}
	if confirmed == nil || !*confirmed {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.hrService.DeleteOpening(ctx, id); err != nil {
		return a.fail(err)
	}
	printlnFn(fmt.Sprintf("Opening %d deleted.", id))
	return nil
}
