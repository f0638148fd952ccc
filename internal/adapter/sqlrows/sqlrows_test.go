package sqlrows

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/filmdata-service/internal/entity"
)

func TestUpsertSQL(t *testing.T) {
	tbl := Table{Name: "t", Columns: []string{"id", "a", "b"}}

	assert.Equal(t,
		"INSERT INTO t (id, a, b) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE SET a = excluded.a, b = excluded.b;",
		tbl.UpsertSQL(Postgres))
	assert.Equal(t,
		"INSERT INTO t (id, a, b) VALUES (?, ?, ?) ON CONFLICT (id) DO UPDATE SET a = excluded.a, b = excluded.b;",
		tbl.UpsertSQL(SQLite))
}

func TestCreateSQL(t *testing.T) {
	tbl := Table{Name: "t", Columns: []string{"id", "a"}}
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS t (\n\tid TEXT PRIMARY KEY,\n\ta TEXT\n);", tbl.CreateSQL())
}

func TestArgsAndKeyed(t *testing.T) {
	rows := []entity.CrewRow{
		{ID: entity.Value("tt1"), Editor: entity.Value("E")},
		{Editor: entity.Value("orphan")},
	}
	keyed := Keyed(rows)
	assert.Len(t, keyed, 1)

	args := Args(keyed[0])
	assert.Len(t, args, len(entity.CrewColumns))
	assert.Equal(t, "tt1", *args[0].(*string))
	assert.Nil(t, args[1].(*string))
	assert.Equal(t, "E", *args[3].(*string))
}
