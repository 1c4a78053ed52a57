package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/dmitrijs2005/hrconsole/internal/client/client"
	"github.com/dmitrijs2005/hrconsole/internal/client/models"
	"github.com/dmitrijs2005/hrconsole/internal/client/services"
)

var (
	errLoginRequired = errors.New("login required")
	errForbidden     = errors.New("access denied")
	errUsage         = errors.New("usage")
)

// requireSession is the console's auth guard: commands behind it run only
// while a session is stored.
func (a *App) requireSession(ctx context.Context) error {
	if a.hasSession(ctx) {
		return nil
	}
	a.setProfile(nil)
	printlnFn("Please log in first.")
	return errLoginRequired
}

// requireRole lets the command through when the effective role of the
// profile is one of roles. A stored session without a loaded profile is
// resolved first.
func (a *App) requireRole(ctx context.Context, roles ...models.Role) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	p := a.currentProfile()
	if p == nil {
		loaded, err := a.authService.CurrentUser(ctx)
		if err != nil {
			return a.fail(err)
		}
		if loaded == nil {
			printlnFn("Please log in first.")
			return errLoginRequired
		}
		a.setProfile(loaded)
		p = loaded
	}

	if !slices.Contains(roles, p.Role()) {
		printlnFn(fmt.Sprintf("Access denied: requires %s role.", joinRoles(roles)))
		return errForbidden
	}
	return nil
}

func joinRoles(roles []models.Role) string {
	s := ""
	for i, r := range roles {
		if i > 0 {
			s += " or "
		}
		s += string(r)
	}
	return s
}

// fail reports err to the user and returns it. An expired session drops the
// profile, which sends the user back to login.
func (a *App) fail(err error) error {
	var apiErr *client.APIError

	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.setProfile(nil)
		printlnFn("Session expired, please log in.")

	case errors.Is(err, services.ErrInvalidCredentials):
		printlnFn("Invalid email or password.")

	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable:", err)

	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusForbidden:
			printlnFn("Access denied:", apiErr.Message)
		case http.StatusNotFound:
			printlnFn("Not found:", apiErr.Message)
		default:
			printlnFn("Error:", apiErr.Error())
		}

	default:
		printlnFn("Error:", err)
	}
	return err
}

// parseID reads a positive integer id from the first argument.
func parseID(args []string, usage string) (int, error) {
	if len(args) == 0 {
		printlnFn("Usage:", usage)
		return 0, errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		printlnFn(fmt.Sprintf("Invalid id %q. Usage: %s", args[0], usage))
		return 0, errUsage
	}
	return id, nil
}
