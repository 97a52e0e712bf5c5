package echoapi

import (
	"context"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/campus"
	"github.com/trezcool/campus/storage/docdb"
	"github.com/trezcool/campus/storage/fixtures"
)

type (
	Options struct {
		Address        string
		AppName        string
		Debug          bool
		DisableReqLogs bool
		SecretKey      string
		JWTExpiration  time.Duration
		DB             *docdb.DB
		Fixtures       *fixtures.Set
		Logger         core.Logger
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts       *Options
		app        *echo.Echo
		validate   *validator.Validate
		translator ut.Translator
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) (Server, error) {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(opts.SecretKey, "SecretKey"),
		vala.IsNotNil(opts.DB, "DB"),
		vala.IsNotNil(opts.Fixtures, "Fixtures"),
		vala.IsNotNil(opts.Logger, "Logger"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "echoapi.NewServer")
	}
	if opts.JWTExpiration <= 0 {
		opts.JWTExpiration = 24 * time.Hour
	}

	validate, translator := core.NewValidator()
	campus.InitValidators(validate, translator)

	s := &server{
		opts:       opts,
		app:        echo.New(),
		validate:   validate,
		translator: translator,
	}
	s.setup()
	return s, nil
}

// NewFixturesServer returns a Server backed by a fresh copy of the embedded fixtures.
func NewFixturesServer(opts Options) (Server, error) {
	set, err := fixtures.Load()
	if err != nil {
		return nil, err
	}
	db := docdb.New()
	if err = set.Seed(db); err != nil {
		return nil, err
	}
	opts.DB = db
	opts.Fixtures = set
	return NewServer(&opts)
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)

	g := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(newJWTConfig(s.opts.SecretKey))

	registerAuthAPI(g, jwt, s)
	registerResourceAPI(g, jwt, s)
}

func (s *server) Start() error {
	err := s.app.Start(s.opts.Address)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ok(ctx, http.StatusOK, echo.Map{"name": "Campus mock API"}, "")
}
