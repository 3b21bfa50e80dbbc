package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"moviehub/models"
	"moviehub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movie(title string, genres []string, popularity float64) models.Movie {
	return models.Movie{
		Title:       title,
		Genres:      genres,
		Popularity:  popularity,
		ReleaseDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func fixtureCatalog() *CatalogService {
	stub := testutil.NewMovieStoreStub(
		movie("The Matrix", []string{"Action", "Sci-Fi"}, 88.5),
		movie("Matrix Reloaded", []string{"Action", "Sci-Fi"}, 70.1),
		movie("Amelie", []string{"Romance", "Comedy"}, 45.3),
		movie("The Godfather", []string{"Crime", "Drama"}, 92.0),
		movie("Paddington", []string{"comedy", "Family"}, 33.7),
	)
	return NewCatalogService(stub)
}

func TestListTitleFilter(t *testing.T) {
	svc := fixtureCatalog()

	result, err := svc.List(context.Background(), ListQuery{Title: "matrix"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	for _, m := range result.Movies {
		assert.Contains(t, strings.ToLower(m.Title), "matrix")
	}
}

func TestListGenreFilter(t *testing.T) {
	svc := fixtureCatalog()

	tests := []struct {
		name   string
		genre  string
		titles []string
	}{
		{
			name:   "case-insensitive tag match",
			genre:  "COMEDY",
			titles: []string{"Amelie", "Paddington"},
		},
		{
			name:   "unknown genre keeps nothing",
			genre:  "Horror",
			titles: []string{},
		},
		{
			name:   "absent genre keeps everything",
			genre:  "",
			titles: []string{"The Matrix", "Matrix Reloaded", "Amelie", "The Godfather", "Paddington"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.List(context.Background(), ListQuery{Genre: tt.genre})
			require.NoError(t, err)

			got := make([]string, 0, len(result.Movies))
			for _, m := range result.Movies {
				got = append(got, m.Title)
			}
			assert.Equal(t, tt.titles, got)
		})
	}
}

func TestListGenreFilterIdempotent(t *testing.T) {
	movies := testutil.NewMovieStoreStub(
		movie("Amelie", []string{"Romance", "Comedy"}, 45.3),
		movie("Paddington", []string{"comedy", "Family"}, 33.7),
	).Movies

	once := filterByGenre(movies, "Comedy")
	twice := filterByGenre(once, "Comedy")
	assert.Equal(t, once, twice)
}

func TestListSort(t *testing.T) {
	svc := fixtureCatalog()

	result, err := svc.List(context.Background(), ListQuery{Sort: "popularity"})
	require.NoError(t, err)

	popularities := make([]float64, 0, len(result.Movies))
	for _, m := range result.Movies {
		popularities = append(popularities, m.Popularity)
	}
	assert.Equal(t, []float64{33.7, 45.3, 70.1, 88.5, 92.0}, popularities)
}

func TestListSortUnknownFieldKeepsInputOrder(t *testing.T) {
	svc := fixtureCatalog()

	baseline, err := svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)

	for _, field := range []string{"runtime", "vote_count", "overview", "DROP TABLE", "Title"} {
		result, err := svc.List(context.Background(), ListQuery{Sort: field})
		require.NoError(t, err)
		assert.Equal(t, baseline.Movies, result.Movies, "sort=%q must be a silent no-op", field)
	}
}

func TestListDescendingIsExactReverse(t *testing.T) {
	// Two movies tie on vote_average so the reversal quirk is observable:
	// ties come out in reverse of their original relative order.
	stub := testutil.NewMovieStoreStub(
		models.Movie{Title: "A", Genres: []string{"Drama"}, VoteAverage: 7.0},
		models.Movie{Title: "B", Genres: []string{"Drama"}, VoteAverage: 7.0},
		models.Movie{Title: "C", Genres: []string{"Drama"}, VoteAverage: 9.0},
		models.Movie{Title: "D", Genres: []string{"Drama"}, VoteAverage: 5.0},
	)
	svc := NewCatalogService(stub)

	asc, err := svc.List(context.Background(), ListQuery{Sort: "vote_average"})
	require.NoError(t, err)
	des, err := svc.List(context.Background(), ListQuery{Sort: "vote_average", Order: "des"})
	require.NoError(t, err)

	require.Equal(t, len(asc.Movies), len(des.Movies))
	for i := range asc.Movies {
		assert.Equal(t, asc.Movies[i].Title, des.Movies[len(des.Movies)-1-i].Title)
	}

	// The stable ascending sort keeps A before B; reversed, B precedes A.
	assert.Equal(t, []string{"D", "A", "B", "C"}, titlesOf(asc.Movies))
	assert.Equal(t, []string{"C", "B", "A", "D"}, titlesOf(des.Movies))
}

func TestListDescendingWithoutSortReversesInput(t *testing.T) {
	svc := fixtureCatalog()

	baseline, err := svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	reversed, err := svc.List(context.Background(), ListQuery{Order: "des"})
	require.NoError(t, err)

	for i := range baseline.Movies {
		assert.Equal(t, baseline.Movies[i].Title, reversed.Movies[len(reversed.Movies)-1-i].Title)
	}
}

func TestListPagination(t *testing.T) {
	stub := testutil.NewMovieStoreStub()
	for i := 1; i <= 45; i++ {
		stub.Movies = append(stub.Movies, models.Movie{
			Title:      fmt.Sprintf("Movie %02d", i),
			Genres:     []string{"Drama"},
			Popularity: float64(i),
		})
	}
	svc := NewCatalogService(stub)

	tests := []struct {
		name        string
		query       ListQuery
		wantLen     int
		wantPage    int
		wantPages   int
		wantTotal   int
		wantMessage string
	}{
		{
			name:      "first page",
			query:     ListQuery{Page: "1"},
			wantLen:   20,
			wantPage:  1,
			wantPages: 3,
			wantTotal: 45,
		},
		{
			name:      "last partial page of the descending popularity order",
			query:     ListQuery{Page: "3", Sort: "popularity", Order: "des"},
			wantLen:   5,
			wantPage:  3,
			wantPages: 3,
			wantTotal: 45,
		},
		{
			name:        "page beyond range",
			query:       ListQuery{Page: "4"},
			wantLen:     0,
			wantPage:    4,
			wantPages:   3,
			wantTotal:   45,
			wantMessage: "There is nothing here",
		},
		{
			name:      "zero page is normalized to one",
			query:     ListQuery{Page: "0"},
			wantLen:   20,
			wantPage:  1,
			wantPages: 3,
			wantTotal: 45,
		},
		{
			name:      "negative page is normalized to one",
			query:     ListQuery{Page: "-1"},
			wantLen:   20,
			wantPage:  1,
			wantPages: 3,
			wantTotal: 45,
		},
		{
			name:      "numeric string with whitespace",
			query:     ListQuery{Page: " 2 "},
			wantLen:   20,
			wantPage:  2,
			wantPages: 3,
			wantTotal: 45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.List(context.Background(), tt.query)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLen, result.Count)
			assert.Len(t, result.Movies, tt.wantLen)
			require.NotNil(t, result.CurrentPage)
			require.NotNil(t, result.TotalPages)
			require.NotNil(t, result.TotalCount)
			assert.Equal(t, tt.wantPage, *result.CurrentPage)
			assert.Equal(t, tt.wantPages, *result.TotalPages)
			assert.Equal(t, tt.wantTotal, *result.TotalCount)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, result.Message)
				assert.Equal(t, 400, result.Status)
			} else {
				assert.Empty(t, result.Message)
				assert.Zero(t, result.Status)
			}
		})
	}

	t.Run("page three of descending popularity holds positions 41 to 45", func(t *testing.T) {
		result, err := svc.List(context.Background(), ListQuery{Page: "3", Sort: "popularity", Order: "des"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Movie 05", "Movie 04", "Movie 03", "Movie 02", "Movie 01"}, titlesOf(result.Movies))
	})
}

func TestListWithoutPageOmitsPaginationKeys(t *testing.T) {
	svc := fixtureCatalog()

	for _, page := range []string{"", "abc", "2x", "1.5"} {
		result, err := svc.List(context.Background(), ListQuery{Page: page})
		require.NoError(t, err)

		assert.Equal(t, 5, result.Count)
		assert.Nil(t, result.TotalCount)
		assert.Nil(t, result.TotalPages)
		assert.Nil(t, result.CurrentPage)

		// The keys must be absent from the payload, not null.
		raw, err := json.Marshal(result)
		require.NoError(t, err)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(raw, &payload))
		assert.NotContains(t, payload, "totalCount")
		assert.NotContains(t, payload, "totalPages")
		assert.NotContains(t, payload, "currentPage")
		assert.NotContains(t, payload, "status")
		assert.NotContains(t, payload, "message")
	}
}

func TestListStoreErrorPropagates(t *testing.T) {
	stub := testutil.NewMovieStoreStub()
	stub.FindErr = errors.New("connection reset")
	svc := NewCatalogService(stub)

	result, err := svc.List(context.Background(), ListQuery{})
	require.Error(t, err)
	assert.Nil(t, result, "a store failure must never be masked with an empty result")
	assert.ErrorContains(t, err, "connection reset")
}

func TestCreateRequiresGenres(t *testing.T) {
	svc := fixtureCatalog()

	_, err := svc.Create(context.Background(), models.Movie{Title: "No Tags"})
	require.Error(t, err)

	created, err := svc.Create(context.Background(), models.Movie{Title: "Tagged", Genres: []string{"Drama"}})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.NotNil(t, created.Comments)
}

func titlesOf(movies []models.Movie) []string {
	titles := make([]string, 0, len(movies))
	for _, m := range movies {
		titles = append(titles, m.Title)
	}
	return titles
}
