// Package services contains the console's application services.
// This file defines the authentication service: login, register, logout,
// profile bootstrap and local inspection of the stored access token.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/hrconsole/internal/client/client"
	"github.com/dmitrijs2005/hrconsole/internal/client/models"
	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/logging"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("not logged in")
)

// AuthService defines authentication operations for the console.
//
// Contract:
//   - Login/Register: obtain tokens, store them, return the fresh profile.
//   - Logout: revoke the refresh token best-effort, then always clear locally.
//   - CurrentUser: profile for the stored session, nil when there is none.
//   - RefreshUser: like CurrentUser but always asks the server.
//   - TokenInfo: claims of the stored access token, signature not checked.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.Profile, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.Profile, error)
	RefreshUser(ctx context.Context) (*models.Profile, error)
	TokenInfo(ctx context.Context) (*models.TokenInfo, error)
	HasSession(ctx context.Context) bool
}

type authService struct {
	client        client.Client
	store         client.TokenStore
	log           logging.Logger
	logoutTimeout time.Duration

	mu          sync.Mutex
	cached      *models.Profile
	cachedToken string
}

// NewAuthService binds the service to an API client and the session store.
// logoutTimeout bounds the server revoke call; zero means no bound.
func NewAuthService(c client.Client, store client.TokenStore, log logging.Logger, logoutTimeout time.Duration) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: c, store: store, log: log, logoutTimeout: logoutTimeout}
}

func isAuthFailure(err error) bool {
	return errors.Is(err, client.ErrUnauthorized) || client.StatusCode(err) == 401
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Profile, error) {
	defer common.WipeByteArray(password)

	tokens, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		if isAuthFailure(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login error: %w", err)
	}

	return a.startSession(ctx, tokens)
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error) {
	tokens, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}

	return a.startSession(ctx, tokens)
}

func (a *authService) startSession(ctx context.Context, tokens models.Tokens) (*models.Profile, error) {
	if err := a.store.Write(ctx, tokens.AccessToken, tokens.RefreshToken); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return a.RefreshUser(ctx)
}

// Logout never fails because of the server: the revoke call is best-effort
// and the local session is cleared regardless of its outcome.
func (a *authService) Logout(ctx context.Context) error {
	if refreshToken, ok := a.store.RefreshToken(ctx); ok {
		rctx := ctx
		if a.logoutTimeout > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(ctx, a.logoutTimeout)
			defer cancel()
		}
		if err := a.client.Logout(rctx, refreshToken); err != nil {
			a.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
		}
	}

	a.setCached(nil, "")
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.Profile, error) {
	sess, ok := a.store.Read(ctx)
	if !ok {
		a.setCached(nil, "")
		return nil, nil
	}

	a.mu.Lock()
	p, token := a.cached, a.cachedToken
	a.mu.Unlock()
	if p != nil && token == sess.AccessToken {
		return p, nil
	}

	return a.RefreshUser(ctx)
}

func (a *authService) RefreshUser(ctx context.Context) (*models.Profile, error) {
	if _, ok := a.store.Read(ctx); !ok {
		a.setCached(nil, "")
		return nil, nil
	}

	p, err := a.client.Me(ctx)
	if err != nil {
		a.setCached(nil, "")
		return nil, err
	}

	// the gateway may have refreshed the token while loading the profile
	sess, _ := a.store.Read(ctx)
	a.setCached(p, sess.AccessToken)
	return p, nil
}

func (a *authService) setCached(p *models.Profile, token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cached = p
	a.cachedToken = token
}

func (a *authService) HasSession(ctx context.Context) bool {
	_, ok := a.store.Read(ctx)
	return ok
}

func (a *authService) TokenInfo(ctx context.Context) (*models.TokenInfo, error) {
	sess, ok := a.store.Read(ctx)
	if !ok {
		return nil, ErrNoSession
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	info := &models.TokenInfo{}
	info.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	if raw, ok := claims["roles"].([]any); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				info.Roles = append(info.Roles, s)
			}
		}
	}
	return info, nil
}
