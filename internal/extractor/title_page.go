package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/filmdata-service/internal/entity"
)

const (
	// Credit and technical-spec links on the title page carry both classes.
	metadataLink = "a.ipc-metadata-list-item__list-content-item.ipc-metadata-list-item__list-content-item--link"

	ratingScore = "span.AggregateRatingButton__RatingScore-sc-1ll29m0-1.iTLWoV"
)

var (
	ratingCountPattern     = regexp.MustCompile(`"ratingCount":([\d.]+)`)
	userReviewCountPattern = regexp.MustCompile(`"total":(\d+),"__typename":"ReviewsConnection"},"criticReviewsTotal":`)
	aspectRatioPattern     = regexp.MustCompile(`"aspectRatio":"([\d.\s:]+)`)
	firstNumber            = regexp.MustCompile(`\d+`)
)

// FilmID reads the page identifier from <meta property="imdb:pageConst">.
func FilmID(d *Document) entity.Field {
	content, ok := d.find(`meta[property="imdb:pageConst"]`).First().Attr("content")
	if !ok {
		return entity.Missing
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return entity.Missing
	}
	return entity.Value(content)
}

func Directors(d *Document) entity.Field {
	return linkTexts(d, "tt_ov_dr")
}

func Writers(d *Document) entity.Field {
	return linkTexts(d, "tt_ov_wr")
}

func linkTexts(d *Document, hrefPart string) entity.Field {
	var names []string
	d.find(metadataLink + `[href*="` + hrefPart + `"]`).Each(func(_ int, s *goquery.Selection) {
		names = append(names, s.Text())
	})
	return Collapse(names)
}

// Rating is the aggregate user rating shown in the page header.
func Rating(d *Document) entity.Field {
	return text(d.find(ratingScore))
}

// RatingCount is read from the embedded JSON-LD block.
func RatingCount(d *Document) entity.Field {
	return submatch(ratingCountPattern, outerHTML(d.find(`script[type="application/ld+json"]`)))
}

func Metascore(d *Document) entity.Field {
	return text(d.find("span.score-meta"))
}

// UserReviewCount is read from the __NEXT_DATA__ state block.
func UserReviewCount(d *Document) entity.Field {
	return submatch(userReviewCountPattern, outerHTML(d.find("script#__NEXT_DATA__")))
}

// CriticReviewCount takes the first number from the review-link span that
// mentions critics.
func CriticReviewCount(d *Document) entity.Field {
	var found entity.Field
	d.find(`span[class*="three-Elements"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(outerHTML(s), "Critic") {
			return true
		}
		if m := firstNumber.FindString(s.Text()); m != "" {
			found = entity.Value(m)
		}
		return false
	})
	return found
}

func Color(d *Document) entity.Field {
	return text(d.find(metadataLink + `[href*="colors"]`))
}

// AspectRatio is read from the first application/json script block.
func AspectRatio(d *Document) entity.Field {
	f := submatch(aspectRatioPattern, outerHTML(d.find(`script[type="application/json"]`)))
	if v, ok := f.Get(); ok {
		v = strings.TrimSpace(v)
		if v == "" {
			return entity.Missing
		}
		return entity.Value(v)
	}
	return f
}
