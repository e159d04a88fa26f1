package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/planejamais/planeja_mais/internal/bus"
	"github.com/planejamais/planeja_mais/internal/client"
	"github.com/planejamais/planeja_mais/internal/dashboard"
	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/planejamais/planeja_mais/internal/storage"
	"github.com/spf13/viper"
)

var errNotLoggedIn = errors.New("sessão expirada ou inexistente; rode 'planeja login'")

// app wires the stores, the API client and one dashboard session.
type app struct {
	local   storage.Store
	tokens  *storage.TokenStore
	api     *client.Client
	auth    *client.Auth
	titles  *storage.GoalTitles
	target  *storage.MonthlyTarget
	session *dashboard.Session
	logger  *slog.Logger
}

// newApp opens the state directory. local.json survives logouts except for the
// token; session.json only holds a token issued without --remember.
func newApp() (*app, error) {
	stateDir := viper.GetString("state_dir")
	local, err := storage.NewFileStore(filepath.Join(stateDir, "local.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to open local state: %w", err)
	}
	sessionStore, err := storage.NewFileStore(filepath.Join(stateDir, "session.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to open session state: %w", err)
	}

	logger := slog.Default()
	tokens := storage.NewTokenStore(local, sessionStore)
	api := client.New(viper.GetString("api_url"), tokens, client.WithLogger(logger))
	titles := storage.NewGoalTitles(local)

	return &app{
		local:  local,
		tokens: tokens,
		api:    api,
		auth:   client.NewAuth(api, tokens),
		titles: titles,
		target: storage.NewMonthlyTarget(local),
		session: dashboard.New(api,
			dashboard.WithLogger(logger),
			dashboard.WithGoalStorage(titles, storage.NewGoalCache(local)),
		),
		logger: logger,
	}, nil
}

// requireLogin drops an expired token so the next command starts clean.
func (a *app) requireLogin() error {
	if a.tokens.IsAuthenticated(time.Now()) {
		return nil
	}
	if err := a.tokens.Clear(); err != nil {
		a.logger.Warn("Failed to clear stale token", "error", err)
	}
	return errNotLoggedIn
}

// loadSession checks the login and mirrors the user's ledger.
func (a *app) loadSession(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	return a.session.Load(ctx)
}

// applyPatches routes patches through a filter bus into the session, waiting
// for each one to land before emitting the next.
func (a *app) applyPatches(ctx context.Context, patches []ledger.FilterPatch) error {
	if len(patches) == 0 {
		return nil
	}
	b := bus.New(a.logger)
	defer b.Close()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	changed := make(chan struct{}, 1)
	go a.session.Watch(watchCtx, b, func() { changed <- struct{}{} })

	for _, p := range patches {
		b.Emit(p)
		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return errors.New("filter patch not applied")
		}
	}
	return nil
}
