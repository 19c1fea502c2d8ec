package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/talentledger/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/dmitrijs2005/talentledger/internal/dbx"
)

// Metadata keys of the stored session.
const (
	sessionTokenKey    = "session:token"
	sessionUsernameKey = "session:username"
)

// SessionClient is the part of the remote client that manages the access
// token.
type SessionClient interface {
	Register(ctx context.Context, userName, password string) error
	Login(ctx context.Context, userName, password string) (string, error)
	Resume(token string) (string, error)
	Logout()
	AccessToken() string
	Ping(ctx context.Context) error
	Close() error
}

// AuthService signs the user in and keeps the session across restarts.
//
// Contract:
//   - Login: authenticate against the server and store the access token.
//   - Resume: restore the stored session, if any.
//   - Logout: forget the token locally. Unlock cache entries are kept.
//   - CurrentUser: the signed-in user id, or "" when signed out.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (string, error)
	Resume(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	CurrentUser() string
	Username(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client SessionClient
	db     *sql.DB

	mu     sync.RWMutex
	userID string
}

func NewAuthService(client SessionClient, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) setUser(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userID = userID
}

func (a *authService) CurrentUser() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userID
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	return a.client.Register(ctx, username, string(password))
}

// Login authenticates against the server and persists the token and the
// username in one transaction.
func (a *authService) Login(ctx context.Context, username string, password []byte) (string, error) {
	userID, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, sessionTokenKey, []byte(a.client.AccessToken())); err != nil {
			return err
		}
		return repo.Set(ctx, sessionUsernameKey, []byte(username))
	})
	if err != nil {
		a.client.Logout()
		return "", fmt.Errorf("session saving error: %w", err)
	}

	a.setUser(userID)
	return userID, nil
}

// Resume restores the stored session. Without one it returns
// common.ErrAuthRequired. A stored token that cannot be read is removed.
func (a *authService) Resume(ctx context.Context) (string, error) {
	repo := a.getMetadataRepo()

	token, err := repo.Get(ctx, sessionTokenKey)
	if err != nil {
		return "", err
	}
	if len(token) == 0 {
		return "", common.ErrAuthRequired
	}

	userID, err := a.client.Resume(string(token))
	if err != nil {
		_ = repo.Delete(ctx, sessionTokenKey)
		return "", fmt.Errorf("%w: %w", common.ErrAuthRequired, err)
	}

	a.setUser(userID)
	return userID, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.Logout()
	a.setUser("")
	return a.getMetadataRepo().Delete(ctx, sessionTokenKey)
}

// Username returns the name used at the last successful login.
func (a *authService) Username(ctx context.Context) (string, error) {
	v, err := a.getMetadataRepo().Get(ctx, sessionUsernameKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
