// Package shared wires the pieces every app needs: logging and the backend stores talk to.
package shared

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/campus/apps/mockapi/echo"
	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/auth"
	"github.com/trezcool/campus/core/request"
	"github.com/trezcool/campus/core/store"
	"github.com/trezcool/campus/services/logger"
)

// fixturesBaseURL is the (never resolved) host of the in-process fixture API.
const fixturesBaseURL = "http://fixtures.campus.local"

// NewLogger returns the logger of an app: reports go to rollbar when enabled and are echoed to stderr.
func NewLogger(conf *core.Config, app string) *logsvc.RollbarLogger {
	console := logsvc.NewHumanLogger(os.Stderr, conf.Debug).With("app", app)
	return logsvc.NewRollbarLogger(console, conf)
}

// Backend is where stores send their requests: the REST API or the fixture API served in-process.
type Backend struct {
	Doer    request.Doer
	BaseURL string

	conf   *core.Config
	logger core.Logger
}

func NewBackend(conf *core.Config, logger core.Logger) (*Backend, error) {
	b := &Backend{conf: conf, logger: logger}
	switch conf.Store.Backend {
	case core.BackendAPI:
		b.Doer = request.NewDoer(conf.API.RequestTimeout, nil)
		b.BaseURL = conf.API.BaseURL
	case core.BackendFixtures:
		srv, err := echoapi.NewFixturesServer(echoapi.Options{
			AppName:        conf.AppName,
			Debug:          conf.Debug,
			DisableReqLogs: true,
			SecretKey:      conf.MockAPI.SecretKey,
			JWTExpiration:  conf.MockAPI.JWTExpiration,
			Logger:         logger,
		})
		if err != nil {
			return nil, errors.Wrap(err, "starting fixture API")
		}
		b.Doer = request.NewDoer(conf.API.RequestTimeout, &echoapi.Transport{Handler: srv})
		b.BaseURL = fixturesBaseURL
	default:
		return nil, errors.Errorf("unknown store backend %q", conf.Store.Backend)
	}
	return b, nil
}

// Client returns a request.Client acting as whoever p signed in.
func (b *Backend) Client(p auth.Provider) (*request.Client, error) {
	return request.NewClient(request.Options{
		BaseURL:          b.BaseURL,
		Auth:             p,
		Doer:             b.Doer,
		Logger:           b.logger,
		AuthReadyTimeout: b.conf.AuthReadyTimeout,
	})
}

// Deps returns the store dependencies of a client acting as whoever p signed in.
func (b *Backend) Deps(p auth.Provider) (store.Deps, error) {
	client, err := b.Client(p)
	if err != nil {
		return store.Deps{}, err
	}
	return store.Deps{
		Client:    client,
		Validator: store.NewValidator(),
		Logger:    b.logger,
		Options:   store.Options{LastWriteWins: b.conf.Store.LastWriteWins},
	}, nil
}

// Login exchanges credentials for a token and returns the signed in session.
func (b *Backend) Login(ctx context.Context, email, password string) (*auth.Session, echoapi.LoginResponse, error) {
	var resp echoapi.LoginResponse

	session := auth.NewSession()
	client, err := b.Client(session)
	if err != nil {
		return nil, resp, err
	}
	env := client.Post(ctx, "/api/auth/login", echoapi.LoginRequest{Email: core.CleanString(email, true), Password: password})
	if err = env.Decode(&resp); err != nil {
		return nil, resp, err
	}
	session.SignIn(resp.User, resp.Token)
	return session, resp, nil
}

// Session returns the session of the configured API token.
func (b *Backend) Session() (*auth.Session, error) {
	if b.conf.API.Token == "" {
		return nil, errors.Errorf("no API token: run `login` then set %s_API_TOKEN", b.conf.Env)
	}
	return auth.SessionFromToken(b.conf.API.Token)
}
