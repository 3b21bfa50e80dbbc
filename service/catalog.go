// Package service holds the catalog query pipeline and comment engine. All
// state lives in the store; every operation is request-scoped.
package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"moviehub/models"
	"moviehub/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// pageSize is the fixed number of movies per page.
const pageSize = 20

// sortOrderDescending reverses the result after the ascending sort. Ties end
// up in reverse of their original relative order, which callers rely on.
const sortOrderDescending = "des"

// ListQuery carries the optional listing parameters. All fields come in as
// raw query strings; Page is normalized during pagination.
type ListQuery struct {
	Title string
	Genre string
	Page  string
	Sort  string
	Order string
}

// MovieList is the listing response envelope. The pagination fields are only
// present when a page was requested; their absence is part of the contract.
type MovieList struct {
	Movies      []models.Movie `json:"movies"`
	Count       int            `json:"count"`
	TotalCount  *int           `json:"totalCount,omitempty"`
	TotalPages  *int           `json:"totalPages,omitempty"`
	CurrentPage *int           `json:"currentPage,omitempty"`
	Status      int            `json:"status,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// CatalogService answers movie listing and lookup queries.
type CatalogService struct {
	movies store.MovieStore
}

// NewCatalogService creates a catalog service over the given store.
func NewCatalogService(movies store.MovieStore) *CatalogService {
	return &CatalogService{movies: movies}
}

// List runs the listing pipeline: title filter at the store, then genre
// filter, sort and pagination in memory, in that order. A store error aborts
// the whole pipeline; it is never replaced with an empty result.
func (s *CatalogService) List(ctx context.Context, q ListQuery) (*MovieList, error) {
	movies, err := s.movies.Find(ctx, buildFilter(q))
	if err != nil {
		return nil, err
	}

	movies = filterByGenre(movies, q.Genre)
	sortMovies(movies, q.Sort, q.Order)

	result := &MovieList{}
	movies = paginate(result, movies, q.Page)

	result.Movies = movies
	result.Count = len(movies)
	return result, nil
}

// GetByID fetches a single movie. Returns store.ErrMovieNotFound when the id
// does not resolve.
func (s *CatalogService) GetByID(ctx context.Context, id bson.ObjectID) (*models.Movie, error) {
	return s.movies.FindByID(ctx, id)
}

// Create inserts a single movie. Records without at least one genre tag are
// rejected.
func (s *CatalogService) Create(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	if len(movie.Genres) == 0 {
		return nil, models.NewValidationError("At least one genre is required")
	}

	inserted, err := s.movies.InsertMany(ctx, []models.Movie{movie})
	if err != nil {
		return nil, err
	}
	return &inserted[0], nil
}

// CreateAll bulk-inserts movies, used by the static catalog loader.
func (s *CatalogService) CreateAll(ctx context.Context, movies []models.Movie) ([]models.Movie, error) {
	for _, m := range movies {
		if len(m.Genres) == 0 {
			return nil, models.NewValidationError("At least one genre is required")
		}
	}
	return s.movies.InsertMany(ctx, movies)
}

// buildFilter translates the query into the store-level filter. Only title
// participates; everything else is applied after the fetch.
func buildFilter(q ListQuery) store.MovieFilter {
	return store.MovieFilter{Title: q.Title}
}

// filterByGenre keeps movies where any genre tag equals the requested genre,
// case-insensitively. An empty genre is the identity transform.
func filterByGenre(movies []models.Movie, genre string) []models.Movie {
	if genre == "" {
		return movies
	}

	want := strings.ToLower(genre)
	kept := make([]models.Movie, 0, len(movies))
	for _, movie := range movies {
		for _, tag := range movie.Genres {
			if strings.ToLower(tag) == want {
				kept = append(kept, movie)
				break
			}
		}
	}
	return kept
}

// sortMovies orders the slice in place. Fields outside the allow-list leave
// the input order untouched. order=des reverses after the ascending sort
// rather than sorting with a descending comparator, so ties come out in
// reverse of their original order; that also means des reverses the input
// even when no valid sort field was given.
func sortMovies(movies []models.Movie, field, order string) {
	if less := lessFunc(field); less != nil {
		sort.SliceStable(movies, func(i, j int) bool {
			return less(movies[i], movies[j])
		})
	}

	if order == sortOrderDescending {
		for i, j := 0, len(movies)-1; i < j; i, j = i+1, j-1 {
			movies[i], movies[j] = movies[j], movies[i]
		}
	}
}

// lessFunc returns the ascending comparison for an allow-listed sort field,
// or nil for anything else.
func lessFunc(field string) func(a, b models.Movie) bool {
	switch field {
	case "title":
		return func(a, b models.Movie) bool { return a.Title < b.Title }
	case "popularity":
		return func(a, b models.Movie) bool { return a.Popularity < b.Popularity }
	case "release_date":
		return func(a, b models.Movie) bool { return a.ReleaseDate.Before(b.ReleaseDate) }
	case "vote_average":
		return func(a, b models.Movie) bool { return a.VoteAverage < b.VoteAverage }
	case "budget":
		return func(a, b models.Movie) bool { return a.Budget < b.Budget }
	case "revenue":
		return func(a, b models.Movie) bool { return a.Revenue < b.Revenue }
	default:
		return nil
	}
}

// paginate slices movies into the requested page and fills the envelope's
// pagination metadata. An absent or non-numeric page means no pagination: the
// full set passes through and no metadata is emitted. An explicit page <= 0
// is normalized to page 1, with metadata. A page beyond the last one yields
// an empty list plus a message and a 400 status marker.
func paginate(result *MovieList, movies []models.Movie, rawPage string) []models.Movie {
	page, ok := parsePage(rawPage)
	if !ok {
		return movies
	}
	if page < 1 {
		page = 1
	}

	totalCount := len(movies)
	totalPages := (totalCount + pageSize - 1) / pageSize
	result.TotalCount = &totalCount
	result.TotalPages = &totalPages
	result.CurrentPage = &page

	start := (page - 1) * pageSize
	if start >= totalCount {
		result.Status = 400
		result.Message = "There is nothing here"
		return []models.Movie{}
	}

	end := start + pageSize
	if end > totalCount {
		end = totalCount
	}
	return movies[start:end]
}

// parsePage accepts base-10 integer strings, with surrounding whitespace
// tolerated. Anything else reads as "no pagination requested".
func parsePage(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return page, true
}
