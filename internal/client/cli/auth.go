package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/talentledger/internal/client/client"
	"github.com/dmitrijs2005/talentledger/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Register prompts for a username and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		a.printErr("Registration failed", err)
		return err
	}

	fmt.Fprintln(a.out, "Success! You can log in now.")
	return nil
}

// Login prompts for credentials and signs in. The stored session is
// replaced on success.
func (a *App) Login(ctx context.Context, _ []string) error {
	a.backRequested.Store(false)

	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	if _, err := a.authService.Login(ctx, userName, password); err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			fmt.Fprintln(a.out, "Wrong username or password")
		case errors.Is(err, client.ErrUnavailable):
			fmt.Fprintln(a.out, "Server unavailable, try again later")
		default:
			a.printErr("Login failed", err)
		}
		return err
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout forgets the session and unmounts every screen.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.printErr("Logout failed", err)
		return err
	}
	a.unmountAll()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
