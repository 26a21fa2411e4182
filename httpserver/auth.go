package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"moviegenie/auth"
	"moviegenie/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/auth/register", s.handleRegister)
	g.POST("/auth/login", s.handleLogin)
	g.GET("/auth/google/login", s.handleGoogleLogin)
	g.GET("/auth/google/callback", s.handleGoogleCallback)
}

func (s *Server) RegisterSessionRoutes(g *echo.Group) {
	g.POST("/auth/logout", s.handleLogout)
	g.GET("/auth/me", s.handleMe)
	g.PUT("/auth/updateAvatar", s.handleUpdateAvatar)
}

// handleRegister godoc
// @Summary User Register
// @Description Register a new user and set the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body RegisterRequest true "Register payload"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /auth/register [post]
func (s *Server) handleRegister(c echo.Context) error {
	var req RegisterRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := s.AuthService.Register(
		c.Request().Context(),
		req.Name,
		req.Email,
		req.Password,
	)
	if err != nil {
		return err
	}

	s.setSessionCookie(c, session.Token)
	return writeSuccess(c, http.StatusCreated, map[string]interface{}{
		"user": toUserResponse(session.User),
	})
}

// handleLogin godoc
// @Summary User Login
// @Description Authenticate with email and password and set the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login Credentials"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /auth/login [post]
func (s *Server) handleLogin(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := s.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	s.setSessionCookie(c, session.Token)
	return writeSuccess(c, http.StatusOK, map[string]interface{}{
		"user": toUserResponse(session.User),
	})
}

// handleLogout godoc
// @Summary User Logout
// @Description Clear the session cookie. The token itself stays valid until expiry.
// @Tags auth
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /auth/logout [post]
func (s *Server) handleLogout(c echo.Context) error {
	s.clearSessionCookie(c)
	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "logged out",
	})
}

// handleMe godoc
// @Summary Current User
// @Description Return the authenticated user together with their saved movie ids
// @Tags auth
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /auth/me [get]
func (s *Server) handleMe(c echo.Context) error {
	userID := currentUserID(c)

	u, err := s.UserService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	saved, err := s.FavoriteService.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]interface{}{
		"user":        toUserResponse(u),
		"savedMovies": saved,
	})
}

// handleUpdateAvatar godoc
// @Summary Update Avatar
// @Description Replace the authenticated user's avatar URL
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body UpdateAvatarRequest true "Avatar payload"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /auth/updateAvatar [put]
func (s *Server) handleUpdateAvatar(c echo.Context) error {
	var req UpdateAvatarRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := s.UserService.UpdateAvatar(c.Request().Context(), currentUserID(c), req.Avatar)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]interface{}{
		"user": toUserResponse(u),
	})
}

// handleGoogleLogin godoc
// @Summary Google OAuth Login
// @Description Get Google OAuth2 authorization URL
// @Tags auth
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /auth/google/login [get]
func (s *Server) handleGoogleLogin(c echo.Context) error {
	state, err := generateOAuthState(32)
	if err != nil {
		return err
	}

	authURL, err := s.AuthService.GoogleAuthURL(state)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((5 * time.Minute).Seconds()),
	})

	return writeSuccess(c, http.StatusOK, map[string]string{
		"authUrl": authURL,
	})
}

// handleGoogleCallback godoc
// @Summary Google OAuth Callback
// @Description Exchange the Google OAuth2 code for a session cookie
// @Tags auth
// @Produce json
// @Param code query string true "OAuth code"
// @Param state query string true "OAuth state"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /auth/google/callback [get]
func (s *Server) handleGoogleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return errs.Errorf(errs.EINVALID, "missing query parameter code or state")
	}

	stateCookie, err := c.Cookie("oauth_state")
	if err != nil || stateCookie == nil || stateCookie.Value != state {
		return auth.ErrInvalidOAuthUser
	}

	session, err := s.AuthService.LoginWithGoogle(c.Request().Context(), code)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		MaxAge:   -1,
	})

	s.setSessionCookie(c, session.Token)
	return writeSuccess(c, http.StatusOK, map[string]interface{}{
		"user": toUserResponse(session.User),
	})
}

func generateOAuthState(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid state length")
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
