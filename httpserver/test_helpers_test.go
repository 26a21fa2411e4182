package httpserver_test

import (
	"context"
	"net/http"

	"moviegenie/auth"
	"moviegenie/httpserver"
	"moviegenie/movie"
	"moviegenie/pkg/config"
	"moviegenie/user"

	"github.com/stretchr/testify/mock"
)

const (
	testUserID = "a3c9f0aa-5ef5-4cf0-9d5c-3f3a1f1b2c4d"
	testToken  = "session-token"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-jwt-secret"
	cfg.Auth.SessionTTLHours = 24
	return cfg
}

func newTestServer() (*httpserver.Server, *MockAuthService, *MockUserService, *MockMovieService, *MockFavoriteService) {
	authSvc := new(MockAuthService)
	userSvc := new(MockUserService)
	movieSvc := new(MockMovieService)
	favSvc := new(MockFavoriteService)

	server := httpserver.Default(testConfig())
	server.AuthService = authSvc
	server.UserService = userSvc
	server.MovieService = movieSvc
	server.FavoriteService = favSvc
	return server, authSvc, userSvc, movieSvc, favSvc
}

func withSession(req *http.Request, authSvc *MockAuthService) {
	req.AddCookie(&http.Cookie{Name: "access_token", Value: testToken})
	authSvc.On("Authenticate", testToken).Return(testUserID, nil)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (auth.Session, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(auth.Session), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (auth.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.Session), args.Error(1)
}

func (m *MockAuthService) Authenticate(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GoogleAuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) LoginWithGoogle(ctx context.Context, code string) (auth.Session, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(auth.Session), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, id, avatar string) (user.User, error) {
	args := m.Called(ctx, id, avatar)
	return args.Get(0).(user.User), args.Error(1)
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) Search(ctx context.Context, userID, query string) ([]movie.Summary, error) {
	args := m.Called(ctx, userID, query)
	return args.Get(0).([]movie.Summary), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Save(ctx context.Context, userID string, movieID int) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockFavoriteService) Remove(ctx context.Context, userID string, movieID int) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockFavoriteService) List(ctx context.Context, userID string) ([]int, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int), args.Error(1)
}
