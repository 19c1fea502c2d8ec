package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/talentledger/internal/client/config"
	"github.com/dmitrijs2005/talentledger/internal/client/screens"
	"github.com/dmitrijs2005/talentledger/internal/client/services"
	"github.com/dmitrijs2005/talentledger/internal/logging"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	ledger      services.CoinLedger
	logger      logging.Logger

	controllers map[screens.Screen]*screens.Controller
	current     screens.Screen
	userName    string

	// set by a logged-out screen once its return delay has passed
	backRequested atomic.Bool

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds one controller per screen over deps.
func NewApp(c *config.Config, as services.AuthService, ledger services.CoinLedger, deps screens.Deps) *App {
	a := &App{
		config:      c,
		authService: as,
		ledger:      ledger,
		logger:      deps.Logger,
		controllers: map[screens.Screen]*screens.Controller{},
		current:     screens.ScreenAll,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	for _, s := range screens.Screens {
		a.controllers[s] = screens.NewController(s, deps, c.PageSize, c.LoggedOutReturnDelay, a.requestBack)
	}
	return a
}

func (a *App) requestBack() {
	a.backRequested.Store(true)
}

func (a *App) controller() *screens.Controller {
	return a.controllers[a.current]
}

func (a *App) isLoggedIn() bool {
	return a.authService.CurrentUser() != ""
}

// Run resumes the stored session or asks for credentials, then runs the
// REPL until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	defer a.unmountAll()

	printlnFn("TalentLedger client (type 'help' for commands)")

	if _, err := a.authService.Resume(ctx); err == nil {
		if name, err := a.authService.Username(ctx); err == nil {
			a.userName = name
		}
	} else {
		_ = a.Login(ctx, nil)
	}
	if a.isLoggedIn() {
		_ = a.show(ctx)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) unmountAll() {
	for _, c := range a.controllers {
		c.Unmount()
	}
}
