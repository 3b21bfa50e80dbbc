// Package validation holds the request payload schemas and their validation.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"moviehub/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// MovieInput is the movie-creation payload. Field names mirror the public
// API; new_image carries the poster URL.
type MovieInput struct {
	Image            string   `json:"new_image" validate:"required,uri"`
	Genres           []string `json:"genres" validate:"required,min=1,dive,required"`
	OriginalLanguage string   `json:"original_language"`
	Overview         string   `json:"overview"`
	Popularity       float64  `json:"popularity" validate:"required"`
	ReleaseDate      string   `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	Title            string   `json:"title" validate:"required"`
	VoteAverage      float64  `json:"vote_average" validate:"required"`
	VoteCount        int      `json:"vote_count"`
	Homepage         string   `json:"homepage" validate:"omitempty,uri"`
	Revenue          float64  `json:"revenue" validate:"required"`
	Runtime          int      `json:"runtime" validate:"required"`
	Status           string   `json:"status" validate:"required"`
	Tagline          string   `json:"tagline" validate:"required"`
	Budget           float64  `json:"budget" validate:"required"`
}

// ValidateMovieInput checks the payload against the schema and returns one
// readable message listing every failed field.
func ValidateMovieInput(input *MovieInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	failed := make([]string, 0, len(errs))
	for _, fe := range errs {
		failed = append(failed, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid movie payload: %s", strings.Join(failed, ", "))
}

// ToMovie maps the validated payload onto the domain model.
func (input *MovieInput) ToMovie() models.Movie {
	releaseDate, _ := time.Parse("2006-01-02", input.ReleaseDate)
	return models.Movie{
		Image:            input.Image,
		Genres:           input.Genres,
		OriginalLanguage: input.OriginalLanguage,
		Overview:         input.Overview,
		Popularity:       input.Popularity,
		ReleaseDate:      releaseDate,
		Title:            input.Title,
		VoteAverage:      input.VoteAverage,
		VoteCount:        input.VoteCount,
		Homepage:         input.Homepage,
		Revenue:          input.Revenue,
		Runtime:          input.Runtime,
		Status:           input.Status,
		Tagline:          input.Tagline,
		Budget:           input.Budget,
	}
}
