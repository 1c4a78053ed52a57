package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/hrconsole/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	hasSession(ctx context.Context) bool
	role() models.Role

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Token(ctx context.Context) error

	Openings(ctx context.Context) error
	Opening(ctx context.Context, args []string) error
	AddOpening(ctx context.Context) error
	EditOpening(ctx context.Context, args []string) error
	DeleteOpening(ctx context.Context, args []string) error

	Employees(ctx context.Context) error
	Employee(ctx context.Context, args []string) error
	AddEmployee(ctx context.Context) error
	EditEmployee(ctx context.Context, args []string) error

	Candidates(ctx context.Context, args []string) error
	CV(ctx context.Context, args []string) error
}

// helpText lists the commands that make sense for the current session.
func helpText(loggedIn bool, role models.Role) string {
	if !loggedIn {
		return "Available commands: register, login, openings, opening <id>, exit"
	}

	cmds := []string{"whoami", "token", "openings", "opening <id>"}
	switch role {
	case models.RoleHR:
		cmds = append(cmds,
			"addopening", "editopening <id>", "delopening <id>",
			"employees", "employee <id>", "addemployee", "editemployee <id>",
			"candidates <openingID>", "cv <file>",
		)
	case models.RoleEmployee:
		cmds = append(cmds, "employee [id]")
	}
	cmds = append(cmds, "logout", "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}

// runREPL starts the read–eval–print loop of the console.
//
// It reads a line from in, parses the first token as the command and the rest
// as its arguments, and dispatches to methods on 'a'. The loop exits on EOF,
// when ctx is done, or when the user types "exit" or "quit".
//
// Commands share in with the interactive prompts they open, so the loop reads
// line by line instead of scanning ahead.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("hr %s > ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText(a.hasSession(ctx), a.role()))

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "token":
			_ = a.Token(ctx)

		case "openings":
			_ = a.Openings(ctx)

		case "opening":
			_ = a.Opening(ctx, args)

		case "addopening":
			_ = a.AddOpening(ctx)

		case "editopening":
			_ = a.EditOpening(ctx, args)

		case "delopening":
			_ = a.DeleteOpening(ctx, args)

		case "employees":
			_ = a.Employees(ctx)

		case "employee":
			_ = a.Employee(ctx, args)

		case "addemployee":
			_ = a.AddEmployee(ctx)

		case "editemployee":
			_ = a.EditEmployee(ctx, args)

		case "candidates":
			_ = a.Candidates(ctx, args)

		case "cv":
			_ = a.CV(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			// last line had no trailing newline
			return
		}
	}
}
