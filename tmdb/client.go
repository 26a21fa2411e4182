// Package tmdb implements the movie.Catalog interface against the TMDB
// REST API using bearer token authentication.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moviegenie/errs"
	"moviegenie/movie"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// language is sent on every request; the catalog localizes titles and
// overviews server-side.
const language = "en-US"

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at a different API root. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type genreListResponse struct {
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
	GenreIDs    []int   `json:"genre_ids"`
}

type movieListResponse struct {
	Results []movieResult `json:"results"`
}

type personListResponse struct {
	Results []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"results"`
}

type creditsResponse struct {
	Cast []movieResult `json:"cast"`
}

// Genres implements [movie.Catalog]. Keys are lowercased genre names.
func (c *Client) Genres(ctx context.Context) (map[string]int, error) {
	var payload genreListResponse
	if err := c.get(ctx, "/genre/movie/list", nil, &payload); err != nil {
		return nil, err
	}

	genres := make(map[string]int, len(payload.Genres))
	for _, g := range payload.Genres {
		genres[strings.ToLower(g.Name)] = g.ID
	}
	return genres, nil
}

// DiscoverByGenre implements [movie.Catalog].
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int) ([]movie.CatalogMovie, error) {
	query := url.Values{"with_genres": {strconv.Itoa(genreID)}}

	var payload movieListResponse
	if err := c.get(ctx, "/discover/movie", query, &payload); err != nil {
		return nil, err
	}
	return toCatalogMovies(payload.Results), nil
}

// SearchPeople implements [movie.Catalog].
func (c *Client) SearchPeople(ctx context.Context, personQuery string) ([]movie.Person, error) {
	query := url.Values{"query": {personQuery}}

	var payload personListResponse
	if err := c.get(ctx, "/search/person", query, &payload); err != nil {
		return nil, err
	}

	people := make([]movie.Person, len(payload.Results))
	for i, p := range payload.Results {
		people[i] = movie.Person{ID: p.ID, Name: p.Name}
	}
	return people, nil
}

// PersonCredits implements [movie.Catalog].
func (c *Client) PersonCredits(ctx context.Context, personID int) ([]movie.CatalogMovie, error) {
	var payload creditsResponse
	if err := c.get(ctx, fmt.Sprintf("/person/%d/movie_credits", personID), nil, &payload); err != nil {
		return nil, err
	}
	return toCatalogMovies(payload.Cast), nil
}

// SearchByTitle implements [movie.Catalog].
func (c *Client) SearchByTitle(ctx context.Context, titleQuery string) ([]movie.CatalogMovie, error) {
	query := url.Values{"query": {titleQuery}}

	var payload movieListResponse
	if err := c.get(ctx, "/search/movie", query, &payload); err != nil {
		return nil, err
	}
	return toCatalogMovies(payload.Results), nil
}

// Popular returns a page of the catalog's popular feed. Used by the cache
// seeding command, not by the search pipeline.
func (c *Client) Popular(ctx context.Context, page int) ([]movie.CatalogMovie, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{"page": {strconv.Itoa(page)}}

	var payload movieListResponse
	if err := c.get(ctx, "/movie/popular", query, &payload); err != nil {
		return nil, err
	}
	return toCatalogMovies(payload.Results), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("language", language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Errorf(errs.EINTERNAL, "catalog request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.Errorf(errs.EINTERNAL, "catalog returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Errorf(errs.EINTERNAL, "catalog response decode failed: %v", err)
	}
	return nil
}

func toCatalogMovies(results []movieResult) []movie.CatalogMovie {
	movies := make([]movie.CatalogMovie, len(results))
	for i, r := range results {
		movies[i] = movie.CatalogMovie{
			ID:          r.ID,
			Title:       r.Title,
			ReleaseDate: r.ReleaseDate,
			Overview:    r.Overview,
			PosterPath:  r.PosterPath,
			VoteAverage: r.VoteAverage,
			Popularity:  r.Popularity,
			GenreIDs:    r.GenreIDs,
		}
	}
	return movies
}
