package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/hrconsole/internal/client/models"
)

// Employees lists employee records.
func (a *App) Employees(ctx context.Context) error {
	if err := a.requireRole(ctx, models.RoleHR); err != nil {
		return err
	}

	list, err := a.hrService.ListEmployees(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(list) == 0 {
		printlnFn("No employees.")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{
			fmt.Sprint(e.BusinessEntityID), employeeName(e), e.JobTitle, e.HireDate,
		})
	}
	printlnFn(table([]string{"ID", "NAME", "JOB TITLE", "HIRED"}, rows))
	return nil
}

func employeeName(e models.Employee) string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func printEmployee(e *models.Employee) {
	printlnFn(strings.Join([]string{
		fmt.Sprintf("Employee %d", e.BusinessEntityID),
		"Name:        " + employeeName(*e),
		"National ID: " + e.NationalIDNumber,
		"Job title:   " + e.JobTitle,
		"Born:        " + e.BirthDate,
		"Marital:     " + e.MaritalStatus,
		"Gender:      " + e.Gender,
		"Hired:       " + e.HireDate,
	}, "\n"))
}

// Employee shows one employee record. Without an id an employee sees their
// own record.
func (a *App) Employee(ctx context.Context, args []string) error {
	if err := a.requireRole(ctx, models.RoleHR, models.RoleEmployee); err != nil {
		return err
	}

	var id int
	if p := a.currentProfile(); len(args) == 0 && p != nil && p.BusinessEntityID != nil {
		id = *p.BusinessEntityID
	} else {
		var err error
		if id, err = parseID(args, "employee <id>"); err != nil {
			return err
		}
	}

	e, err := a.hrService.GetEmployee(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	printEmployee(e)
	return nil
}

// prompt asks each question in turn and stops at the first read error.
func (a *App) prompt(questions ...string) ([]string, error) {
	answers := make([]string, 0, len(questions))
	for _, q := range questions {
		s, err := getSimpleText(a.reader, q, a.out)
		if err != nil {
			return nil, err
		}
		answers = append(answers, s)
	}
	return answers, nil
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// AddEmployee creates an employee record.
func (a *App) AddEmployee(ctx context.Context) error {
	if err := a.requireRole(ctx, models.RoleHR); err != nil {
		return err
	}

	ans, err := a.prompt(
		"National ID number",
		"First name",
		"Last name",
		"Job title",
		"Birth date (YYYY-MM-DD)",
		"Marital status (S/M)",
		"Gender (M/F)",
		"Hire date (YYYY-MM-DD)",
	)
	if err != nil {
		return err
	}

	e := models.Employee{
		NationalIDNumber: ans[0],
		FirstName:        ans[1],
		LastName:         ans[2],
		JobTitle:         ans[3],
		BirthDate:        ans[4],
		MaritalStatus:    strings.ToUpper(ans[5]),
		Gender:           strings.ToUpper(ans[6]),
		HireDate:         ans[7],
	}
	for _, d := range []string{e.BirthDate, e.HireDate} {
		if !validDate(d) {
			printlnFn(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD.", d))
			return errUsage
		}
	}

	created, err := a.hrService.CreateEmployee(ctx, e)
	if err != nil {
		return a.fail(err)
	}
	printlnFn(fmt.Sprintf("Employee %d created.", created.BusinessEntityID))
	return nil
}

// EditEmployee patches job title, marital status and gender. Empty answers
// keep the current value.
func (a *App) EditEmployee(ctx context.Context, args []string) error {
	if err := a.requireRole(ctx, models.RoleHR); err != nil {
		return err
	}
	id, err := parseID(args, "editemployee <id>")
	if err != nil {
		return err
	}

	cur, err := a.hrService.GetEmployee(ctx, id)
	if err != nil {
		return a.fail(err)
	}

	ans, err := a.prompt(
		fmt.Sprintf("Job title [%s]", cur.JobTitle),
		fmt.Sprintf("Marital status [%s]", cur.MaritalStatus),
		fmt.Sprintf("Gender [%s]", cur.Gender),
	)
	if err != nil {
		return err
	}

	var patch models.EmployeePatch
	if ans[0] != "" {
		patch.JobTitle = &ans[0]
	}
	if ans[1] != "" {
		v := strings.ToUpper(ans[1])
		patch.MaritalStatus = &v
	}
	if ans[2] != "" {
		v := strings.ToUpper(ans[2])
		patch.Gender = &v
	}

	e, err := a.hrService.UpdateEmployee(ctx, id, patch)
	if err != nil {
		return a.fail(err)
	}
	printEmployee(e)
	return nil
}
