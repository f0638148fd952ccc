package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/filmdata-service/internal/entity"
)

// Role is the heading id of one crew section on the full credits page.
type Role string

const (
	Cinematographer    Role = "cinematographer"
	Editor             Role = "editor"
	Composer           Role = "composer"
	Producer           Role = "producer"
	ProductionDesigner Role = "production_designer"
	ArtDirector        Role = "art_director"
	CostumeDesigner    Role = "costume_designer"
)

// CrewRoles lists the roles in crew row order.
var CrewRoles = []Role{
	Cinematographer, Editor, Composer, Producer,
	ProductionDesigner, ArtDirector, CostumeDesigner,
}

// Actors are the image alt texts of the first cast table.
func Actors(d *Document) entity.Field {
	table := d.find("table.cast_list").First()
	if table.Length() == 0 {
		return entity.Missing
	}
	var names []string
	table.Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); ok {
			names = append(names, alt)
		}
	})
	return Collapse(names)
}

// Artist reads the link texts of the table that follows the role's heading.
func Artist(d *Document, role Role) entity.Field {
	heading := d.find("h4").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == string(role)
	}).First()
	if heading.Length() == 0 {
		return entity.Missing
	}
	node := nextElement(heading.Get(0), "table")
	if node == nil {
		return entity.Missing
	}
	var names []string
	goquery.NewDocumentFromNode(node).Find("a").Each(func(_ int, s *goquery.Selection) {
		names = append(names, strings.ReplaceAll(s.Text(), "\n", ""))
	})
	return Collapse(names)
}
