package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/talentledger/internal/client/client"
	"github.com/dmitrijs2005/talentledger/internal/client/listview"
	"github.com/dmitrijs2005/talentledger/internal/client/models"
	"github.com/dmitrijs2005/talentledger/internal/client/screens"
	"github.com/dmitrijs2005/talentledger/internal/common"
)

var errUsage = errors.New("usage")

func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage:", text)
	return errUsage
}

func (a *App) printErr(prefix string, err error) {
	var ife *common.InsufficientFundsError
	switch {
	case errors.As(err, &ife):
		fmt.Fprintf(a.out, "%s: not enough coins (%d required, %d available)\n", prefix, ife.Required, ife.Available)
	case errors.Is(err, common.ErrAuthRequired):
		fmt.Fprintf(a.out, "%s: please log in first\n", prefix)
	case errors.Is(err, common.ErrPartialUnlock):
		fmt.Fprintf(a.out, "%s: you were charged but the unlock was not recorded, contact support\n", prefix)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "%s: server unavailable\n", prefix)
	case errors.Is(err, common.ErrPersistence):
		fmt.Fprintf(a.out, "%s: could not reach storage, showing the stored state\n", prefix)
	default:
		fmt.Fprintf(a.out, "%s: %v\n", prefix, err)
	}
	a.logger.Debug(context.Background(), prefix, "error", err)
}

func oneID(args []string) (string, bool) {
	if len(args) != 1 || args[0] == "" {
		return "", false
	}
	return args[0], true
}

// show mounts the current screen if needed and prints its page.
func (a *App) show(ctx context.Context) error {
	c := a.controller()
	if st := c.Status(); st != screens.StatusReady && st != screens.StatusDetailView {
		if err := c.Mount(ctx); err != nil {
			a.printErr("Could not load "+string(a.current), err)
			return err
		}
	}
	a.render()
	return nil
}

// Screen switches to another list screen.
func (a *App) Screen(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("screen all|favourite|saved|unlocked")
	}
	next, ok := screens.ParseScreen(strings.ToLower(args[0]))
	if !ok {
		return a.usage("screen all|favourite|saved|unlocked")
	}
	if next != a.current {
		a.controller().Unmount()
		a.current = next
	}
	return a.show(ctx)
}

func (a *App) List(ctx context.Context, _ []string) error {
	return a.show(ctx)
}

func (a *App) Next(ctx context.Context, _ []string) error {
	a.controller().NextPage()
	a.render()
	return nil
}

func (a *App) Prev(ctx context.Context, _ []string) error {
	a.controller().PrevPage()
	a.render()
	return nil
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return a.usage("page <n>")
	}
	a.controller().SetPage(n)
	a.render()
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	a.controller().Search(strings.Join(args, " "))
	a.render()
	return nil
}

func (a *App) Filter(ctx context.Context, args []string) error {
	filters, err := ParseFilters(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return a.usage("filter key=value[,value] ... (keys: education, languages, jobType, location, skills)")
	}
	a.controller().SetFilters(filters)
	a.render()
	return nil
}

// Clear drops the search term and the filters.
func (a *App) Clear(ctx context.Context, _ []string) error {
	c := a.controller()
	c.SetFilters(nil)
	c.Search("")
	a.render()
	return nil
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("sort name|source")
	}
	switch args[0] {
	case "name":
		a.controller().SetSort(listview.SortName)
	case "source":
		a.controller().SetSort(listview.SortSource)
	default:
		return a.usage("sort name|source")
	}
	a.render()
	return nil
}

func (a *App) Select(ctx context.Context, args []string) error {
	id, ok := oneID(args)
	if !ok {
		return a.usage("select <id>|page|clear")
	}
	switch id {
	case "page":
		n := a.controller().SelectPage()
		fmt.Fprintf(a.out, "page selected (%d total)\n", n)
		return nil
	case "clear":
		a.controller().ClearSelection()
		fmt.Fprintln(a.out, "selection cleared")
		return nil
	}
	on := a.controller().ToggleSelected(id)
	fmt.Fprintf(a.out, "%s selected: %t (%d total)\n", id, on, len(a.controller().Selected()))
	return nil
}

func (a *App) Save(ctx context.Context, args []string) error {
	id, ok := oneID(args)
	if !ok {
		return a.usage("save <id>")
	}
	on, err := a.controller().ToggleSave(ctx, id)
	if err != nil {
		a.printErr("Save failed", err)
		return err
	}
	fmt.Fprintf(a.out, "%s saved: %t\n", id, on)
	return nil
}

func (a *App) Favourite(ctx context.Context, args []string) error {
	id, ok := oneID(args)
	if !ok {
		return a.usage("fav <id>")
	}
	on, err := a.controller().ToggleFavourite(ctx, id)
	if err != nil {
		a.printErr("Favourite failed", err)
		return err
	}
	fmt.Fprintf(a.out, "%s favourite: %t\n", id, on)
	return nil
}

func (a *App) Download(ctx context.Context, args []string) error {
	id, ok := oneID(args)
	if !ok {
		return a.usage("download <id>")
	}
	if err := a.controller().MarkDownloaded(ctx, id); err != nil {
		a.printErr("Download mark failed", err)
		return err
	}
	fmt.Fprintf(a.out, "%s marked as downloaded\n", id)
	return nil
}

// Unlock spends the profile cost, or the profile and messaging bundle cost
// when the second argument is "bundle".
func (a *App) Unlock(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 || (len(args) == 2 && args[1] != "bundle") {
		return a.usage("unlock <id> [bundle]")
	}
	cost := a.config.UnlockCostProfile
	if len(args) == 2 {
		cost = a.config.UnlockCostProfileMessaging
	}

	res := a.controller().Unlock(ctx, args[0], cost)
	switch res.Status {
	case models.UnlockSuccess:
		fmt.Fprintln(a.out, "Unlocked:", res.Message)
	case models.UnlockAlready:
		fmt.Fprintln(a.out, "Already unlocked, no coins spent")
	default:
		a.printErr("Unlock failed", res.Err)
		return res.Err
	}
	return nil
}

func (a *App) Open(ctx context.Context, args []string) error {
	id, ok := oneID(args)
	if !ok {
		return a.usage("open <id>")
	}
	row, err := a.controller().OpenDetail(id)
	if err != nil {
		a.printErr("Cannot open", err)
		return err
	}
	a.renderDetail(row)
	return nil
}

func (a *App) Close(ctx context.Context, _ []string) error {
	if _, err := a.controller().CloseDetail(ctx); err != nil {
		a.printErr("Cannot close", err)
		return err
	}
	a.render()
	return nil
}

func (a *App) Balance(ctx context.Context, _ []string) error {
	b, err := a.ledger.GetBalance(ctx, a.authService.CurrentUser())
	if err != nil {
		a.printErr("Balance unavailable", err)
		return err
	}
	fmt.Fprintf(a.out, "Balance: %d coins\n", b)
	return nil
}
