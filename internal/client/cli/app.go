package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/hrconsole/internal/client/client"
	"github.com/dmitrijs2005/hrconsole/internal/client/config"
	"github.com/dmitrijs2005/hrconsole/internal/client/models"
	"github.com/dmitrijs2005/hrconsole/internal/client/services"
	"github.com/dmitrijs2005/hrconsole/internal/client/session"
	"github.com/dmitrijs2005/hrconsole/internal/logging"
)

// sessionFeed is the part of the session store the console listens to.
type sessionFeed interface {
	Subscribe() (<-chan session.Event, func())
	Watch(ctx context.Context) error
}

var _ execIface = (*App)(nil)

// App is the interactive console. It keeps the profile of the stored session
// in step with the session store.
type App struct {
	config      *config.Config
	authService services.AuthService
	hrService   services.HRService
	sessions    sessionFeed
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	closeFn     func() error

	mu      sync.RWMutex
	profile *models.Profile
}

func newApp(c *config.Config, as services.AuthService, hs services.HRService, feed sessionFeed, log logging.Logger, in io.Reader) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		config:      c,
		authService: as,
		hrService:   hs,
		sessions:    feed,
		log:         log,
		reader:      bufio.NewReader(in),
		out:         os.Stdout,
	}
}

// Run bootstraps the profile, follows session changes and blocks in the REPL
// until the user exits or ctx is cancelled. Resources opened by NewApp are
// released on return.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.sessions != nil {
		events, unsubscribe := a.sessions.Subscribe()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := a.sessions.Watch(ctx); err != nil {
				a.log.Warn(ctx, "session watcher stopped", "error", err)
			}
		}()
		go func() {
			defer wg.Done()
			a.followSession(ctx, events)
		}()

		// both goroutines read the store, so they must be gone before Close
		defer func() {
			cancel()
			wg.Wait()
			unsubscribe()
		}()
	}

	printlnFn("HR console (type 'help' for commands)")
	a.bootstrap(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	fn := a.closeFn
	a.closeFn = nil
	return fn()
}

// bootstrap loads the profile of a session left by an earlier run.
func (a *App) bootstrap(ctx context.Context) {
	p, err := a.authService.CurrentUser(ctx)
	if err != nil {
		_ = a.fail(err)
		return
	}
	a.setProfile(p)
	if p == nil {
		printlnFn("Not logged in. Use 'login' or 'register'.")
		return
	}
	printlnFn(fmt.Sprintf("Welcome back, %s.", p.DisplayName()))
}

func (a *App) followSession(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			a.resync(ctx, ev)
		}
	}
}

// resync brings the profile in line with the stored session.
func (a *App) resync(ctx context.Context, ev session.Event) {
	if !ev.Present {
		prev := a.setProfile(nil)
		if prev != nil && ev.Source == session.SourceExternal {
			printlnFn("\nLogged out in another console.")
		}
		return
	}
	// local writes come from commands that set the profile themselves
	if ev.Source == session.SourceLocal {
		return
	}

	p, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.log.Debug(ctx, "profile resync failed", "source", ev.Source.String(), "error", err)
		if errors.Is(err, client.ErrUnauthorized) {
			a.setProfile(nil)
		}
		return
	}

	prev := a.setProfile(p)
	if ev.Source == session.SourceExternal && p != nil && (prev == nil || prev.Sub != p.Sub) {
		printlnFn(fmt.Sprintf("\nSession changed in another console: %s.", p.DisplayName()))
	}
}

func (a *App) currentProfile() *models.Profile {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.profile
}

// setProfile replaces the profile and returns the previous one.
func (a *App) setProfile(p *models.Profile) *models.Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	prev := a.profile
	a.profile = p
	return prev
}

func (a *App) hasSession(ctx context.Context) bool {
	return a.authService.HasSession(ctx)
}

func (a *App) role() models.Role {
	return a.currentProfile().Role()
}

func (a *App) getStatus() string {
	p := a.currentProfile()
	if p == nil {
		return "(not logged in)"
	}
	if r := p.Role(); r != models.RoleNone {
		return fmt.Sprintf("(%s, %s)", p.DisplayName(), r)
	}
	return fmt.Sprintf("(%s)", p.DisplayName())
}
