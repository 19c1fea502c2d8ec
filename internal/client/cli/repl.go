package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

type command func(ctx context.Context, args []string) error

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	// takeBack reports, once, that a logged-out screen asked to go back.
	takeBack() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error

	Screen(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Next(ctx context.Context, args []string) error
	Prev(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Clear(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Select(ctx context.Context, args []string) error

	Save(ctx context.Context, args []string) error
	Favourite(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Unlock(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Close(ctx context.Context, args []string) error
	Balance(ctx context.Context, args []string) error
}

func (a *App) takeBack() bool {
	return a.backRequested.Swap(false)
}

func commands(a execIface) map[string]command {
	return map[string]command{
		"screen": a.Screen, "s": a.Screen,
		"list": a.List, "l": a.List,
		"next": a.Next, "n": a.Next,
		"prev": a.Prev, "p": a.Prev,
		"page":     a.Page,
		"search":   a.Search,
		"filter":   a.Filter,
		"clear":    a.Clear,
		"sort":     a.Sort,
		"select":   a.Select,
		"save":     a.Save,
		"fav":      a.Favourite,
		"download": a.Download,
		"unlock":   a.Unlock,
		"open":     a.Open,
		"close":    a.Close,
		"balance":  a.Balance,
		"logout":   a.Logout,
	}
}

// runREPL starts a simple read-eval-print loop for the TalentLedger CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, when ctx ends, or when the
// user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help                 - show available commands
//	  - register | login     - create an account / authenticate
//	  - exit | quit          - leave the program
//
//	Logged in:
//	  - screen <name>        - switch to all, favourite, saved or unlocked
//	  - (l)ist, (n)ext, (p)rev, page <n>
//	  - search <text>, filter key=value, clear, sort name|source
//	  - save|fav|download <id>, unlock <id> [bundle]
//	  - open <id>, close     - detail view
//	  - select <id>|page|clear, balance, logout
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	cmds := commands(a)

	for {
		if ctx.Err() != nil {
			return
		}
		if a.takeBack() {
			printlnFn("You are signed out. Please log in.")
			_ = a.Login(ctx, nil)
		}

		printlnFn(fmt.Sprintf("tl %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: screen, (l)ist, (n)ext, (p)rev, page, search, filter, clear, sort, select, save, fav, download, unlock, open, close, balance, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
			continue
		case "register":
			_ = a.Register(ctx, args)
			continue
		case "login":
			_ = a.Login(ctx, args)
			if a.isLoggedIn() {
				_ = a.List(ctx, nil)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		fn, ok := cmds[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}
		_ = fn(ctx, args)
	}
}
