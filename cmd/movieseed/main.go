package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"moviegenie/movie"
	"moviegenie/pkg/config"
	"moviegenie/postgres"
	"moviegenie/tmdb"

	_ "github.com/lib/pq"
)

func main() {
	var pages int
	flag.IntVar(&pages, "pages", 5, "Number of popular-feed pages to import")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	catalog := tmdb.NewClient(cfg.Catalog.Token, tmdb.WithBaseURL(cfg.Catalog.BaseURL))
	movies := postgres.NewMovieRepository(db)

	count, err := seedPopular(ctx, catalog, movies, pages)
	if err != nil {
		slog.Error("import failed", "error", err, "imported", count)
		os.Exit(1)
	}

	slog.Info("import completed", "rows", count)
}

func seedPopular(ctx context.Context, catalog *tmdb.Client, movies movie.Repository, pages int) (int, error) {
	genres, err := catalog.Genres(ctx)
	if err != nil {
		return 0, err
	}

	names := make(map[int]string, len(genres))
	for name, id := range genres {
		names[id] = name
	}

	count := 0
	for page := 1; page <= pages; page++ {
		batch, err := catalog.Popular(ctx, page)
		if err != nil {
			return count, err
		}
		if len(batch) == 0 {
			break
		}

		for _, cm := range batch {
			if err := movies.CreateIfAbsent(ctx, toMovie(cm, names)); err != nil {
				return count, err
			}
			count++
		}
	}

	return count, nil
}

func toMovie(cm movie.CatalogMovie, names map[int]string) movie.Movie {
	genres := make([]string, 0, len(cm.GenreIDs))
	for _, id := range cm.GenreIDs {
		name, ok := names[id]
		if !ok {
			name = strconv.Itoa(id)
		}
		genres = append(genres, name)
	}

	year := 0
	if len(cm.ReleaseDate) >= 4 {
		if parsed, err := strconv.Atoi(cm.ReleaseDate[:4]); err == nil {
			year = parsed
		}
	}

	return movie.Movie{
		ID:          cm.ID,
		Title:       cm.Title,
		Genres:      genres,
		ReleaseYear: year,
		Rating:      cm.VoteAverage,
		Popularity:  cm.Popularity,
		Keywords:    []string{},
	}
}
