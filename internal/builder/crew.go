package builder

import (
	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/extractor"
)

// CrewRow reads the full credits page. The film id comes from pageURL, not
// from the document.
func CrewRow(d *extractor.Document, pageURL string) entity.CrewRow {
	row := entity.CrewRow{
		Actors:             extractor.Actors(d),
		Cinematographer:    extractor.Artist(d, extractor.Cinematographer),
		Editor:             extractor.Artist(d, extractor.Editor),
		Composer:           extractor.Artist(d, extractor.Composer),
		Producers:          extractor.Artist(d, extractor.Producer),
		ProductionDesigner: extractor.Artist(d, extractor.ProductionDesigner),
		ArtDirector:        extractor.Artist(d, extractor.ArtDirector),
		CostumeDesigner:    extractor.Artist(d, extractor.CostumeDesigner),
	}
	if id, ok := entity.FilmIDFromURL(pageURL); ok {
		row.ID = entity.Value(string(id))
	}
	return row
}

// Status classifies a built row by its extracted columns.
func Status(r entity.Row) entity.RowStatus {
	return entity.Classify(r.Data())
}
