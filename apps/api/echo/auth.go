package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/audit"
	"github.com/trezcool/masomo-dashboard/core/auth"
	"github.com/trezcool/masomo-dashboard/core/event"
	"github.com/trezcool/masomo-dashboard/core/user"
)

const contextTokenKey = "userToken"

type LoginResponse struct {
	Token string `json:"token"`
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(auth.Claims),
	}
}

func (s *Server) registerAuthAPI(g *echo.Group) {
	g.POST("/login", s.login)
	g.POST("/token-refresh", s.refreshToken, s.jwt)
}

func (s *Server) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	usr, err := s.UserSvc.Authenticate(data)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	if err = s.Audit.Record(audit.ActionLogin, "user", usr.ID, usr.Name); err != nil {
		return errors.Wrap(err, "recording login")
	}
	return s.sendToken(ctx, auth.NewClaims(s.Conf.AppName, usr.ID, usr.Username, usr.SchoolID, usr.Roles, s.Conf.Server.JWTExpirationDelta))
}

// refreshToken issues a new token as long as the refresh window of the original login is open.
func (s *Server) refreshToken(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if time.Now().After(time.Unix(claims.OrigIssuedAt, 0).Add(s.Conf.Server.JWTRefreshExpirationDelta)) {
		return echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	}
	newClaims := auth.NewClaims(s.Conf.AppName, claims.Subject, claims.Username, claims.SchoolID, claims.Roles, s.Conf.Server.JWTExpirationDelta)
	newClaims.OrigIssuedAt = claims.OrigIssuedAt
	return s.sendToken(ctx, newClaims)
}

func (s *Server) sendToken(ctx echo.Context, claims *auth.Claims) error {
	token, err := auth.GenerateToken(claims, []byte(s.Conf.SecretKey))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func getContextClaims(ctx echo.Context) (auth.Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*auth.Claims); ok {
			return *claims, nil
		}
	}
	return auth.Claims{}, errUnauthorized
}

// contextAnnouncer is the calling user as shown on the events they change.
func contextAnnouncer(ctx echo.Context) *event.Announcer {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return nil
	}
	return &event.Announcer{ID: claims.Subject, Name: claims.Username}
}
