// Package services contains the application services behind the CLI.
// This file defines the authentication service: online/offline login,
// registration, liveness probe and the cached offline credentials.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pagekeeper/internal/client/client"
	"github.com/dmitrijs2005/pagekeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/pagekeeper/internal/cryptox"
)

// Offline credential keys. They share the kv table with the Local Store,
// so they carry their own prefix.
const (
	keyUsername = "auth-username"
	keyUserID   = "auth-user-id"
	keySalt     = "auth-salt"
	keyVerifier = "auth-verifier"
)

// AuthService defines authentication operations for the CLI.
//
// OnlineLogin and OfflineLogin return the authenticated user id.
type AuthService interface {
	OfflineLogin(ctx context.Context, username string, password []byte) (string, error)
	OnlineLogin(ctx context.Context, username string, password []byte) (string, error)
	Register(ctx context.Context, username string, password []byte) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
}

type authService struct {
	client client.Client
	repo   kv.Repository
}

func NewAuthService(c client.Client, repo kv.Repository) AuthService {
	return &authService{client: c, repo: repo}
}

func (a *authService) get(ctx context.Context, key string) ([]byte, error) {
	v, err := a.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, client.ErrLocalDataNotAvailable
	}
	return v, nil
}

// OfflineLogin checks the password against the verifier cached by the last
// online login.
func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) (string, error) {
	savedUsername, err := a.get(ctx, keyUsername)
	if err != nil {
		return "", err
	}
	if subtle.ConstantTimeCompare(savedUsername, []byte(username)) == 0 {
		return "", client.ErrUnauthorized
	}

	salt, err := a.get(ctx, keySalt)
	if err != nil {
		return "", err
	}
	verifier, err := a.get(ctx, keyVerifier)
	if err != nil {
		return "", err
	}
	userID, err := a.get(ctx, keyUserID)
	if err != nil {
		return "", err
	}

	if !cryptox.VerifyPassword(password, salt, verifier) {
		return "", client.ErrUnauthorized
	}
	return string(userID), nil
}

// OnlineLogin authenticates against the server and caches what OfflineLogin
// needs.
func (a *authService) OnlineLogin(ctx context.Context, username string, password []byte) (string, error) {
	salt, err := a.client.GetSalt(ctx, username)
	if err != nil {
		return "", fmt.Errorf("get salt error: %w", err)
	}

	verifier := cryptox.Verifier(password, salt)

	userID, err := a.client.Login(ctx, username, verifier)
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}

	if err := a.saveOfflineData(ctx, username, userID, salt, verifier); err != nil {
		return "", fmt.Errorf("offline data saving error: %w", err)
	}
	return userID, nil
}

func (a *authService) saveOfflineData(ctx context.Context, username, userID string, salt, verifier []byte) error {
	pairs := []struct {
		key   string
		value []byte
	}{
		{keyUsername, []byte(username)},
		{keyUserID, []byte(userID)},
		{keySalt, salt},
		{keyVerifier, verifier},
	}
	for _, p := range pairs {
		if err := a.repo.Set(ctx, p.key, p.value); err != nil {
			return err
		}
	}
	return nil
}

// Register creates the account on the server from a fresh salt and the
// password verifier.
func (a *authService) Register(ctx context.Context, username string, password []byte) (string, error) {
	if username == "" || len(password) == 0 {
		return "", errors.New("username and password are required")
	}
	salt := cryptox.NewSalt()
	return a.client.Register(ctx, username, salt, cryptox.Verifier(password, salt))
}

// Logout forgets the session tokens. Offline credentials are kept.
func (a *authService) Logout(ctx context.Context) error {
	a.client.Logout()
	return nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// ClearOfflineData wipes the cached credentials only.
func (a *authService) ClearOfflineData(ctx context.Context) error {
	for _, k := range []string{keyUsername, keyUserID, keySalt, keyVerifier} {
		if err := a.repo.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
