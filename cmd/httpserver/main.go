package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"moviegenie/auth"
	"moviegenie/favorite"
	"moviegenie/httpserver"
	"moviegenie/movie"
	"moviegenie/pkg/config"
	"moviegenie/pkg/hash"
	"moviegenie/pkg/jwt"
	"moviegenie/pkg/oauth/google"
	"moviegenie/pkg/sentry"
	"moviegenie/postgres"
	"moviegenie/tmdb"
	"moviegenie/user"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	movieRepo := postgres.NewMovieRepository(db)
	savedRepo := postgres.NewSavedMovieRepository(db)
	historyRepo := postgres.NewSearchHistoryRepository(db)
	attemptRepo := postgres.NewLoginAttemptRepository(db)

	catalog := tmdb.NewClient(cfg.Catalog.Token, tmdb.WithBaseURL(cfg.Catalog.BaseURL))
	tokenProvider := jwt.NewJWTProvider(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)

	var googleProvider auth.GoogleOAuthProvider
	if p := google.NewProvider(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURL); p != nil {
		googleProvider = p
	}

	server := httpserver.Default(cfg)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)
	server.UserService = user.NewUsecase(userRepo)
	server.AuthService = auth.NewUsecase(userRepo, attemptRepo, hash.NewBcryptHasher(), tokenProvider, googleProvider)
	server.MovieService = movie.NewUsecase(catalog, movieRepo, historyRepo, logger)
	server.FavoriteService = favorite.NewUsecase(savedRepo, movieRepo)

	slog.Info("server started!")
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
