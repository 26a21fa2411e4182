package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"moviegenie/favorite"
	"moviegenie/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movie/search", s.handleSearchMovies)
	g.POST("/movie/favorite", s.handleSaveFavorite)
	g.GET("/movie/saved", s.handleListSaved)
	g.DELETE("/movie/delete", s.handleRemoveFavorite)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Resolve a free-text query as a genre, a person or a title
// @Tags movies
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /movie/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return movie.ErrInvalidQuery
	}

	results, err := s.MovieService.Search(c.Request().Context(), currentUserID(c), query)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, results)
}

// handleSaveFavorite godoc
// @Summary Save Favorite
// @Description Save a cached movie to the user's favorites
// @Tags movies
// @Produce json
// @Param movieId query int true "Movie id"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /movie/favorite [post]
func (s *Server) handleSaveFavorite(c echo.Context) error {
	movieID, err := movieIDParam(c)
	if err != nil {
		return err
	}

	if err := s.FavoriteService.Save(c.Request().Context(), currentUserID(c), movieID); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, map[string]string{
		"status": "saved",
	})
}

// handleListSaved godoc
// @Summary List Saved Movies
// @Description List the user's favorite movie ids, oldest first
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /movie/saved [get]
func (s *Server) handleListSaved(c echo.Context) error {
	ids, err := s.FavoriteService.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, ids)
}

// handleRemoveFavorite godoc
// @Summary Remove Favorite
// @Description Remove a movie from the user's favorites
// @Tags movies
// @Produce json
// @Param movieId query int true "Movie id"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /movie/delete [delete]
func (s *Server) handleRemoveFavorite(c echo.Context) error {
	movieID, err := movieIDParam(c)
	if err != nil {
		return err
	}

	if err := s.FavoriteService.Remove(c.Request().Context(), currentUserID(c), movieID); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "removed",
	})
}

func movieIDParam(c echo.Context) (int, error) {
	raw := strings.TrimSpace(c.QueryParam("movieId"))
	if raw == "" {
		return 0, favorite.ErrInvalidMovieID
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, favorite.ErrInvalidMovieID
	}
	return id, nil
}
