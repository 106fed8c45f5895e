package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pagekeeper/internal/client/client"
	"github.com/dmitrijs2005/pagekeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getField = GetField

// Register prompts for a username and password and creates the account.
// The new user still has to log in.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.authService.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login tries an online login first and falls back to the offline verifier
// when the server is unavailable. Mode reflects which path succeeded:
//   - ModeOnline if online login succeeds,
//   - ModeOffline if offline login succeeds,
//   - ModeDisabled if both fail.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	userID, err := a.authService.OnlineLogin(ctx, userName, password)
	switch {
	case err == nil:
		a.log.Info(ctx, "Login successful", "user", userName)
		a.setMode(ModeOnline)

	case errors.Is(err, client.ErrUnavailable):
		a.log.Info(ctx, "Server unavailable, trying offline login...")
		userID, err = a.authService.OfflineLogin(ctx, userName, password)
		if err != nil {
			a.setMode(ModeDisabled)
			return fmt.Errorf("offline login: %w", err)
		}
		a.log.Info(ctx, "Offline login successful", "user", userName)
		a.setMode(ModeOffline)

	default:
		return fmt.Errorf("login: %w", err)
	}

	a.userID = userID
	a.userName = userName
	return nil
}

// Logout drops the session tokens and the cached offline credentials.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	if err := a.authService.ClearOfflineData(ctx); err != nil {
		return err
	}
	a.userID = ""
	a.userName = ""
	return nil
}
