// Package seed loads the static movie catalog used by the bulk-load endpoint.
package seed

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"moviehub/models"

	"github.com/brianvoe/gofakeit/v6"
)

// movieRecord is the JSON shape of the static catalog file.
type movieRecord struct {
	Image            string   `json:"image"`
	Genres           []string `json:"genres"`
	OriginalLanguage string   `json:"original_language"`
	Overview         string   `json:"overview"`
	Popularity       float64  `json:"popularity"`
	ReleaseDate      string   `json:"release_date"`
	Title            string   `json:"title"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	Homepage         string   `json:"homepage"`
	Revenue          float64  `json:"revenue"`
	Runtime          int      `json:"runtime"`
	Status           string   `json:"status"`
	Tagline          string   `json:"tagline"`
	Budget           float64  `json:"budget"`
}

// LoadFile reads the static catalog from a JSON file.
func LoadFile(path string) ([]models.Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []movieRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	movies := make([]models.Movie, 0, len(records))
	for _, r := range records {
		releaseDate, _ := time.Parse("2006-01-02", r.ReleaseDate)
		movies = append(movies, models.Movie{
			Image:            r.Image,
			Genres:           r.Genres,
			OriginalLanguage: r.OriginalLanguage,
			Overview:         r.Overview,
			Popularity:       r.Popularity,
			ReleaseDate:      releaseDate,
			Title:            r.Title,
			VoteAverage:      r.VoteAverage,
			VoteCount:        r.VoteCount,
			Homepage:         r.Homepage,
			Revenue:          r.Revenue,
			Runtime:          r.Runtime,
			Status:           r.Status,
			Tagline:          r.Tagline,
			Budget:           r.Budget,
		})
	}
	return movies, nil
}

// Generate fabricates a catalog for local runs without a data file.
func Generate(n int) []models.Movie {
	movies := make([]models.Movie, 0, n)
	for i := 0; i < n; i++ {
		info := gofakeit.Movie()
		movies = append(movies, models.Movie{
			Image:            gofakeit.URL(),
			Genres:           []string{info.Genre, gofakeit.MovieGenre()},
			OriginalLanguage: gofakeit.LanguageAbbreviation(),
			Overview:         gofakeit.Paragraph(1, 3, 12, " "),
			Popularity:       gofakeit.Float64Range(1, 100),
			ReleaseDate:      gofakeit.DateRange(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), time.Now()),
			Title:            info.Name,
			VoteAverage:      gofakeit.Float64Range(1, 10),
			VoteCount:        gofakeit.Number(10, 50000),
			Homepage:         gofakeit.URL(),
			Revenue:          gofakeit.Float64Range(0, 2e9),
			Runtime:          gofakeit.Number(70, 210),
			Status:           "Released",
			Tagline:          gofakeit.HipsterSentence(6),
			Budget:           gofakeit.Float64Range(1e5, 3e8),
		})
	}
	return movies
}

// Catalog returns the file-backed catalog when present, a generated one
// otherwise.
func Catalog(path string) []models.Movie {
	movies, err := LoadFile(path)
	if err != nil {
		log.Printf("Catalog file unavailable (%v), generating movies instead", err)
		return Generate(40)
	}
	return movies
}
