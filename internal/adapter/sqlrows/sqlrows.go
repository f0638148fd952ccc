// Package sqlrows builds the SQL shared by the relational row stores.
package sqlrows

import (
	"fmt"
	"strings"

	"github.com/user/filmdata-service/internal/entity"
)

type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) placeholder(i int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

// Table maps a dataset onto a relational table. Every column is TEXT and the
// first column is the primary key.
type Table struct {
	Name    string
	Columns []string
}

var (
	Films   = Table{Name: "films", Columns: entity.FilmColumns}
	Ratings = Table{Name: "ratings", Columns: entity.RatingsColumns}
	Crew    = Table{Name: "crew", Columns: entity.CrewColumns}
)

var All = []Table{Films, Ratings, Crew}

func (t Table) CreateSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", t.Name)
	for i, c := range t.Columns {
		if i == 0 {
			fmt.Fprintf(&b, "\t%s TEXT PRIMARY KEY", c)
		} else {
			fmt.Fprintf(&b, ",\n\t%s TEXT", c)
		}
	}
	b.WriteString("\n);")
	return b.String()
}

// UpsertSQL inserts one row, replacing every non-key column on conflict.
func (t Table) UpsertSQL(d Dialect) string {
	ph := make([]string, len(t.Columns))
	for i := range t.Columns {
		ph[i] = d.placeholder(i + 1)
	}
	set := make([]string, 0, len(t.Columns)-1)
	for _, c := range t.Columns[1:] {
		set = append(set, fmt.Sprintf("%s = excluded.%s", c, c))
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s;",
		t.Name,
		strings.Join(t.Columns, ", "),
		strings.Join(ph, ", "),
		t.Columns[0],
		strings.Join(set, ", "),
	)
}

// Args returns the row's values as driver arguments; missing fields are NULL.
func Args(r entity.Row) []any {
	vals := r.Values()
	args := make([]any, len(vals))
	for i, f := range vals {
		args[i] = f.Ptr()
	}
	return args
}

// Keyed drops rows that have no film id.
func Keyed[R entity.Row](rows []R) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if r.Key() != "" {
			out = append(out, r)
		}
	}
	return out
}
