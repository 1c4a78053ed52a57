package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/hrconsole/internal/client/models"
	"github.com/dmitrijs2005/hrconsole/internal/common"
)

// Prompt indirections, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getYesNo      = GetYesNo
)

// nowFn is a test seam for the clock used by the token command.
var nowFn = time.Now

// Register prompts for the account details and creates an account. On
// success the new session is stored and its profile becomes current.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fullName, err := getSimpleText(a.reader, "Full name (optional)", a.out)
	if err != nil {
		return err
	}

	rawID, err := getSimpleText(a.reader, "Employee id (optional)", a.out)
	if err != nil {
		return err
	}

	req := models.RegisterRequest{
		Email:    email,
		Password: string(password),
		UserName: email,
		FullName: fullName,
	}
	if rawID != "" {
		id, err := strconv.Atoi(rawID)
		if err != nil || id <= 0 {
			printlnFn(fmt.Sprintf("Invalid employee id %q.", rawID))
			return errUsage
		}
		req.BusinessEntityID = &id
	}

	p, err := a.authService.Register(ctx, req)
	if err != nil {
		return a.fail(err)
	}

	a.setProfile(p)
	printlnFn(fmt.Sprintf("Welcome, %s!", p.DisplayName()))
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	p, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return a.fail(err)
	}

	a.setProfile(p)
	printlnFn(fmt.Sprintf("Logged in as %s.", p.DisplayName()))
	return nil
}

// Logout ends the session. The server is told best-effort; the local session
// is gone either way.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.setProfile(nil)
	if err != nil {
		return a.fail(err)
	}
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the profile loaded from the server.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	p, err := a.authService.RefreshUser(ctx)
	if err != nil {
		return a.fail(err)
	}
	if p == nil {
		printlnFn("Please log in first.")
		return errLoginRequired
	}
	a.setProfile(p)

	lines := []string{
		"User:     " + p.UserName,
		"Name:     " + p.FullName,
		"Subject:  " + p.Sub,
		"Roles:    " + strings.Join(p.Roles, ", "),
		"Acting:   " + roleLabel(p.Role()),
	}
	if p.BusinessEntityID != nil {
		lines = append(lines, fmt.Sprintf("Employee: %d", *p.BusinessEntityID))
	}
	printlnFn(strings.Join(lines, "\n"))
	return nil
}

// Token shows what the stored access token claims, without verifying it.
func (a *App) Token(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	info, err := a.authService.TokenInfo(ctx)
	if err != nil {
		return a.fail(err)
	}

	expires := "never"
	if info.ExpiresAt != nil {
		expires = info.ExpiresAt.Local().Format(time.RFC3339)
		if info.Expired(nowFn()) {
			expires += " (expired, will refresh on next call)"
		}
	}

	printlnFn(strings.Join([]string{
		"Subject: " + info.Subject,
		"Roles:   " + strings.Join(info.Roles, ", "),
		"Expires: " + expires,
	}, "\n"))
	return nil
}

func roleLabel(r models.Role) string {
	if r == models.RoleNone {
		return "none"
	}
	return string(r)
}
