package entity

// Kind names one of the three datasets.
type Kind string

const (
	KindFilms   Kind = "films"
	KindRatings Kind = "ratings"
	KindCrew    Kind = "crew"
)

func (k Kind) Valid() bool {
	switch k {
	case KindFilms, KindRatings, KindCrew:
		return true
	}
	return false
}

// Row is a fixed-schema record keyed by a film identifier.
type Row interface {
	Key() FilmID
	// Values returns every column in schema order.
	Values() []Field
	// Data returns the extracted columns only (no key, no freshness stamp).
	Data() []Field
}

var FilmColumns = []string{
	"id", "title", "release_date", "runtime", "country", "language",
	"genre", "studios", "budget", "revenue",
}

// FilmRow is built from the structured movie API.
type FilmRow struct {
	ID          Field `json:"id"`
	Title       Field `json:"title"`
	ReleaseDate Field `json:"release_date"`
	Runtime     Field `json:"runtime"`
	Country     Field `json:"country"`
	Language    Field `json:"language"`
	Genre       Field `json:"genre"`
	Studios     Field `json:"studios"`
	Budget      Field `json:"budget"`
	Revenue     Field `json:"revenue"`
}

func (r FilmRow) Key() FilmID { return FilmID(r.ID.String()) }

func (r FilmRow) Values() []Field {
	return append([]Field{r.ID}, r.Data()...)
}

func (r FilmRow) Data() []Field {
	return []Field{
		r.Title, r.ReleaseDate, r.Runtime, r.Country, r.Language,
		r.Genre, r.Studios, r.Budget, r.Revenue,
	}
}

var RatingsColumns = []string{
	"id", "director", "writer", "imdb_rating", "imdb_rating_count", "metascore",
	"user_review_count", "critic_review_count", "color", "aspect_ratio", "last_updated",
}

// RatingsRow is scraped from a film's main title page.
type RatingsRow struct {
	ID                Field `json:"id"`
	Director          Field `json:"director"`
	Writer            Field `json:"writer"`
	IMDbRating        Field `json:"imdb_rating"`
	IMDbRatingCount   Field `json:"imdb_rating_count"`
	Metascore         Field `json:"metascore"`
	UserReviewCount   Field `json:"user_review_count"`
	CriticReviewCount Field `json:"critic_review_count"`
	Color             Field `json:"color"`
	AspectRatio       Field `json:"aspect_ratio"`
	LastUpdated       Field `json:"last_updated"`
}

func (r RatingsRow) Key() FilmID { return FilmID(r.ID.String()) }

func (r RatingsRow) Values() []Field {
	v := append([]Field{r.ID}, r.Data()...)
	return append(v, r.LastUpdated)
}

func (r RatingsRow) Data() []Field {
	return []Field{
		r.Director, r.Writer, r.IMDbRating, r.IMDbRatingCount, r.Metascore,
		r.UserReviewCount, r.CriticReviewCount, r.Color, r.AspectRatio,
	}
}

var CrewColumns = []string{
	"id", "actors", "cinematographer", "editor", "composer", "producers",
	"production_designer", "art_director", "costume_designer",
}

// CrewRow is scraped from a film's full cast & crew page.
type CrewRow struct {
	ID                 Field `json:"id"`
	Actors             Field `json:"actors"`
	Cinematographer    Field `json:"cinematographer"`
	Editor             Field `json:"editor"`
	Composer           Field `json:"composer"`
	Producers          Field `json:"producers"`
	ProductionDesigner Field `json:"production_designer"`
	ArtDirector        Field `json:"art_director"`
	CostumeDesigner    Field `json:"costume_designer"`
}

func (r CrewRow) Key() FilmID { return FilmID(r.ID.String()) }

func (r CrewRow) Values() []Field {
	return append([]Field{r.ID}, r.Data()...)
}

func (r CrewRow) Data() []Field {
	return []Field{
		r.Actors, r.Cinematographer, r.Editor, r.Composer, r.Producers,
		r.ProductionDesigner, r.ArtDirector, r.CostumeDesigner,
	}
}
