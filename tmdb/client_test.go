package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviegenie/errs"
	"moviegenie/tmdb"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *tmdb.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return tmdb.NewClient("test-token", tmdb.WithBaseURL(srv.URL))
}

func TestClient_Genres(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"genres":[{"id":35,"name":"Comedy"},{"id":878,"name":"Science Fiction"}]}`))
	})

	genres, err := client.Genres(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"comedy": 35, "science fiction": 878}, genres)
}

func TestClient_DiscoverByGenre(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "35", r.URL.Query().Get("with_genres"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":550,"title":"Fight Club","release_date":"1999-10-15","overview":"...","poster_path":"/p.jpg","vote_average":8.4,"popularity":61.0,"genre_ids":[18]}
		]}`))
	})

	movies, err := client.DiscoverByGenre(context.Background(), 35)

	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, 550, movies[0].ID)
	assert.Equal(t, "Fight Club", movies[0].Title)
	assert.Equal(t, "1999-10-15", movies[0].ReleaseDate)
	assert.Equal(t, 8.4, movies[0].VoteAverage)
	assert.Equal(t, []int{18}, movies[0].GenreIDs)
}

func TestClient_SearchPeople(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/person", r.URL.Path)
		assert.Equal(t, "Tom Hanks", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":31,"name":"Tom Hanks"},{"id":32,"name":"Tom Hanks Jr."}]}`))
	})

	people, err := client.SearchPeople(context.Background(), "Tom Hanks")

	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, 31, people[0].ID)
}

func TestClient_PersonCredits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/person/31/movie_credits", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cast":[{"id":13,"title":"Forrest Gump","release_date":"1994-06-23"}]}`))
	})

	movies, err := client.PersonCredits(context.Background(), 31)

	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Forrest Gump", movies[0].Title)
}

func TestClient_SearchByTitle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "Inception", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":27205,"title":"Inception"}]}`))
	})

	movies, err := client.SearchByTitle(context.Background(), "Inception")

	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, 27205, movies[0].ID)
}

func TestClient_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Genres(context.Background())

	require.Error(t, err)
	assert.Equal(t, errs.EINTERNAL, errs.ErrorCode(err))
}

func TestClient_UnreachableCatalog(t *testing.T) {
	client := tmdb.NewClient("test-token", tmdb.WithBaseURL("http://127.0.0.1:1"))

	_, err := client.Genres(context.Background())

	require.Error(t, err)
	assert.Equal(t, errs.EINTERNAL, errs.ErrorCode(err))
}
