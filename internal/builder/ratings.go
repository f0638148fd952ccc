package builder

import (
	"time"

	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/extractor"
)

// DateLayout is the format of the last_updated stamp.
const DateLayout = "2006-01-02"

// RatingsRow applies the title page extractors and stamps the row with the
// calendar date of now.
func RatingsRow(d *extractor.Document, now time.Time) entity.RatingsRow {
	return entity.RatingsRow{
		ID:                extractor.FilmID(d),
		Director:          extractor.Directors(d),
		Writer:            extractor.Writers(d),
		IMDbRating:        extractor.Rating(d),
		IMDbRatingCount:   extractor.RatingCount(d),
		Metascore:         extractor.Metascore(d),
		UserReviewCount:   extractor.UserReviewCount(d),
		CriticReviewCount: extractor.CriticReviewCount(d),
		Color:             extractor.Color(d),
		AspectRatio:       extractor.AspectRatio(d),
		LastUpdated:       entity.Value(now.Format(DateLayout)),
	}
}
