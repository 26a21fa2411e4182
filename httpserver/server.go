package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"moviegenie/auth"
	"moviegenie/errs"
	"moviegenie/favorite"
	"moviegenie/movie"
	"moviegenie/pkg/config"
	"moviegenie/user"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "access_token"

// userIDContextKey is where the session middleware stores the
// authenticated user id on the echo context.
const userIDContextKey = "user_id"

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	UserService user.Service

	AuthService auth.Service

	MovieService movie.Service

	FavoriteService favorite.Service

	// Cookie attributes for the session cookie.
	CookieDomain string
	CookieSecure bool
	SessionTTL   time.Duration
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		CookieSecure: cfg.IsProduction(),
		CookieDomain: cfg.Auth.CookieDomain,
		SessionTTL:   time.Duration(cfg.Auth.SessionTTLHours) * time.Hour,
	}
	if cfg.AllowOrigins != "" {
		s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}

	s.Router.HTTPErrorHandler = customHTTPErrorHandler
	s.Router.Validator = NewValidator()
	s.RegisterGlobalMiddlewares()

	// PUBLIC
	public := s.Router.Group("")
	s.RegisterAuthRoutes(public)

	// PRIVATE: everything behind the session cookie.
	private := s.Router.Group("", s.sessionAuth)
	s.RegisterSessionRoutes(private)
	s.RegisterMovieRoutes(private)

	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS; credentials must be allowed for the session cookie to travel.
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     s.AllowOrigins,
			AllowCredentials: true,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// sessionAuth authenticates the request from the session cookie and stores
// the user id on the context. A missing, expired or tampered cookie is
// rejected uniformly.
func (s *Server) sessionAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			return auth.ErrInvalidToken
		}

		userID, err := s.AuthService.Authenticate(cookie.Value)
		if err != nil {
			return err
		}

		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}

func (s *Server) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   s.CookieDomain,
		MaxAge:   int(s.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   s.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// customHTTPErrorHandler maps application errors to appropriate HTTP status codes
func customHTTPErrorHandler(err error, c echo.Context) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	// Check if it's an Echo HTTPError
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			status = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			status = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			status = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			status = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			status = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		case errs.EINTERNAL:
			status = http.StatusInternalServerError
			message = "Internal server error"
		}
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if werr := writeError(c, status, message, "", err); werr != nil {
			c.Logger().Error(werr)
		}
	}
}
