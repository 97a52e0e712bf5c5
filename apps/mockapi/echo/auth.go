package echoapi

import (
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/auth"
)

const contextTokenKey = "userToken"

func newJWTConfig(secretKey string) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(secretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(auth.Claims),
	}
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string    `json:"token"`
		User  auth.User `json:"user"`
	}
)

type authApi struct {
	srv *server
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := authApi{srv: srv}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.GET("/me", api.me, jwt)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	data.Email = core.CleanString(data.Email, true)
	if err := api.srv.validate.Struct(data); err != nil {
		return core.NewFieldsValidationError(err, api.srv.translator)
	}

	usr, found := api.srv.opts.Fixtures.FindUser(data.Email)
	if !found || usr.CheckPassword(data.Password) != nil {
		return errAuthenticationFailed
	}

	claims := auth.NewClaims(usr.AuthUser(), api.srv.opts.AppName, api.srv.opts.JWTExpiration)
	token, err := auth.GenerateToken(claims, []byte(api.srv.opts.SecretKey))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ok(ctx, http.StatusOK, LoginResponse{Token: token, User: usr.AuthUser()}, "")
}

func (api *authApi) me(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, claims.User(), "")
}

func getContextClaims(ctx echo.Context) (*auth.Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*auth.Claims); ok {
			return claims, nil
		}
	}
	return nil, errUnauthorized
}
