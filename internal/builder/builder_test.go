package builder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/extractor"
)

var fieldEqual = cmp.Comparer(func(a, b entity.Field) bool { return a == b })

func fixture(t *testing.T, name string) *extractor.Document {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "extractor", "testdata", name))
	require.NoError(t, err)
	d, err := extractor.Parse(b)
	require.NoError(t, err)
	return d
}

const matrixJSON = `{
  "imdb_id": "tt0133093",
  "title": "The Matrix",
  "release_date": "1999-03-30",
  "runtime": 136,
  "production_countries": [{"iso_3166_1": "US", "name": "United States of America"}, {"iso_3166_1": "AU", "name": "Australia"}],
  "spoken_languages": [{"english_name": "English", "iso_639_1": "en", "name": "English"}],
  "genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
  "production_companies": [{"id": 79, "name": "Village Roadshow Pictures"}, {"id": 372, "name": "Groucho II Film Partnership"}],
  "budget": 63000000,
  "revenue": 463517383
}`

func TestFilmRow(t *testing.T) {
	var p entity.MoviePayload
	require.NoError(t, json.Unmarshal([]byte(matrixJSON), &p))

	got := FilmRow("603", entity.MovieResponse{StatusCode: 200, Payload: &p})
	want := entity.FilmRow{
		ID:          entity.Value("tt0133093"),
		Title:       entity.Value("The Matrix"),
		ReleaseDate: entity.Value("1999-03-30"),
		Runtime:     entity.Value("136"),
		Country:     entity.Value("United States of America;Australia"),
		Language:    entity.Value("English"),
		Genre:       entity.Value("Action;Science Fiction"),
		Studios:     entity.Value("Village Roadshow Pictures;Groucho II Film Partnership"),
		Budget:      entity.Value("63000000"),
		Revenue:     entity.Value("463517383"),
	}
	if diff := cmp.Diff(want, got, fieldEqual); diff != "" {
		t.Errorf("FilmRow mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, entity.StatusComplete, Status(got))
}

func TestFilmRowDeduplicatesGenres(t *testing.T) {
	p := entity.MoviePayload{
		IMDbID:              "tt0000001",
		ProductionCountries: []entity.NamedItem{{Name: "USA"}},
		Genres:              []entity.NamedItem{{Name: "Drama"}, {Name: "Drama"}},
	}
	got := FilmRow("1", entity.MovieResponse{StatusCode: 200, Payload: &p})

	assert.Equal(t, entity.Value("USA"), got.Country)
	assert.Equal(t, []string{"Drama"}, extractor.Split(got.Genre))
	assert.True(t, got.Runtime.IsMissing())
	assert.True(t, got.Studios.IsMissing())
	assert.Equal(t, entity.StatusPartial, Status(got))
}

func TestFilmRowUpstreamFailure(t *testing.T) {
	got := FilmRow("123", entity.MovieResponse{StatusCode: 404})

	assert.Equal(t, entity.Value("123"), got.ID)
	for _, f := range got.Data() {
		assert.True(t, f.IsMissing())
	}
	assert.Equal(t, entity.StatusMissing, Status(got))
}

func TestRatingsRow(t *testing.T) {
	now := time.Date(2024, 5, 1, 23, 30, 0, 0, time.Local)
	got := RatingsRow(fixture(t, "title.html"), now)

	want := entity.RatingsRow{
		ID:                entity.Value("tt0133093"),
		Director:          entity.Value("Lana Wachowski;Lilly Wachowski"),
		Writer:            entity.Value("Lilly Wachowski;Lana Wachowski"),
		IMDbRating:        entity.Value("8.7"),
		IMDbRatingCount:   entity.Value("1987654"),
		Metascore:         entity.Value("73"),
		UserReviewCount:   entity.Value("4512"),
		CriticReviewCount: entity.Value("312"),
		Color:             entity.Value("Color"),
		AspectRatio:       entity.Value("2.39 : 1"),
		LastUpdated:       entity.Value("2024-05-01"),
	}
	if diff := cmp.Diff(want, got, fieldEqual); diff != "" {
		t.Errorf("RatingsRow mismatch (-want +got):\n%s", diff)
	}
}

func TestRatingsRowOnEmptyPage(t *testing.T) {
	d, err := extractor.Parse([]byte("<html><body></body></html>"))
	require.NoError(t, err)

	got := RatingsRow(d, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.True(t, got.ID.IsMissing())
	assert.Equal(t, entity.Value("2024-01-02"), got.LastUpdated)
	assert.Equal(t, entity.StatusMissing, Status(got))
}

func TestCrewRow(t *testing.T) {
	got := CrewRow(fixture(t, "fullcredits.html"), "https://www.imdb.com/title/tt0133093/fullcredits")

	want := entity.CrewRow{
		ID:                 entity.Value("tt0133093"),
		Actors:             entity.Value("Keanu Reeves;Laurence Fishburne;Carrie-Anne Moss"),
		Cinematographer:    entity.Value("Bill Pope"),
		Editor:             entity.Value("Zach Staenberg"),
		Composer:           entity.Value("Don Davis"),
		Producers:          entity.Value("Bruce Berman;Joel Silver"),
		ProductionDesigner: entity.Value("Owen Paterson"),
		ArtDirector:        entity.Value("Hugh Bateup;Michelle McGahey"),
		CostumeDesigner:    entity.Value("Kym Barrett"),
	}
	if diff := cmp.Diff(want, got, fieldEqual); diff != "" {
		t.Errorf("CrewRow mismatch (-want +got):\n%s", diff)
	}
}

func TestCrewRowIDComesFromURL(t *testing.T) {
	d, err := extractor.Parse([]byte(`<html><head><meta property="imdb:pageConst" content="tt9999999"></head></html>`))
	require.NoError(t, err)

	got := CrewRow(d, "https://www.imdb.com/title/tt1234567/fullcredits?ref_=tt_cl_sm")
	assert.Equal(t, entity.FilmID("tt1234567"), got.Key())

	got = CrewRow(d, "https://www.imdb.com/chart/top")
	assert.True(t, got.ID.IsMissing())
}
