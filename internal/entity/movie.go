package entity

// MoviePayload mirrors the subset of the TMDB movie document that feeds FilmRow.
type MoviePayload struct {
	IMDbID              string      `json:"imdb_id"`
	Title               string      `json:"title"`
	ReleaseDate         string      `json:"release_date"`
	Runtime             *int64      `json:"runtime"`
	ProductionCountries []NamedItem `json:"production_countries"`
	SpokenLanguages     []Language  `json:"spoken_languages"`
	Genres              []NamedItem `json:"genres"`
	ProductionCompanies []NamedItem `json:"production_companies"`
	Budget              *int64      `json:"budget"`
	Revenue             *int64      `json:"revenue"`
}

type NamedItem struct {
	Name string `json:"name"`
}

type Language struct {
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// MovieResponse is one upstream lookup. Payload is nil unless the status was 2xx.
type MovieResponse struct {
	StatusCode int
	Payload    *MoviePayload
}

func (r MovieResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300 && r.Payload != nil
}
