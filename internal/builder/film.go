// Package builder turns fetched documents into dataset rows.
package builder

import (
	"strings"

	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/extractor"
)

// FilmRow maps a movie API response onto a film row. A response without a
// payload keeps only the requested identifier.
func FilmRow(id string, resp entity.MovieResponse) entity.FilmRow {
	if !resp.OK() || resp.Payload == nil {
		return entity.FilmRow{ID: entity.Value(id)}
	}
	p := resp.Payload

	languages := make([]string, 0, len(p.SpokenLanguages))
	for _, l := range p.SpokenLanguages {
		languages = append(languages, l.EnglishName)
	}

	return entity.FilmRow{
		ID:          str(p.IMDbID),
		Title:       str(p.Title),
		ReleaseDate: str(p.ReleaseDate),
		Runtime:     num(p.Runtime),
		Country:     extractor.Collapse(names(p.ProductionCountries)),
		Language:    extractor.Collapse(languages),
		Genre:       extractor.Collapse(names(p.Genres)),
		Studios:     extractor.Collapse(names(p.ProductionCompanies)),
		Budget:      num(p.Budget),
		Revenue:     num(p.Revenue),
	}
}

func names(items []entity.NamedItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func str(s string) entity.Field {
	s = strings.TrimSpace(s)
	if s == "" {
		return entity.Missing
	}
	return entity.Value(s)
}

func num(n *int64) entity.Field {
	if n == nil {
		return entity.Missing
	}
	return entity.IntValue(*n)
}
