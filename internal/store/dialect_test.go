package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect_EncodeList(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		values  []string
		want    any
	}{
		{name: "postgres array", dialect: Postgres, values: []string{"a", "b"}, want: "{a,b}"},
		{name: "postgres quotes values with commas", dialect: Postgres, values: []string{"with,comma", "c"}, want: `{"with,comma",c}`},
		{name: "postgres nil is empty", dialect: Postgres, values: nil, want: "{}"},
		{name: "mysql json", dialect: MySQL, values: []string{"a", "b"}, want: `["a","b"]`},
		{name: "sqlite nil is empty", dialect: SQLite, values: nil, want: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dialect.EncodeList(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialect_EncodeList_RoundTrip(t *testing.T) {
	values := []string{"https://example.com/a.jpg?w=800&fit=crop", "with,comma", `quote"d`, ""}
	for _, d := range []Dialect{Postgres, MySQL, SQLite} {
		t.Run(d.Name, func(t *testing.T) {
			encoded, err := d.EncodeList(values)
			require.NoError(t, err)

			var got List
			require.NoError(t, got.Scan(encoded))
			assert.Equal(t, List(values), got)
		})
	}
}

func TestDialect_Clauses(t *testing.T) {
	assert.Equal(t, `name COLLATE "C"`, Postgres.OrderByBytes("name"))
	assert.Equal(t, "BINARY name", MySQL.OrderByBytes("name"))
	assert.Equal(t, "name", SQLite.OrderByBytes("name"))

	assert.Equal(t, "? = ANY(penguin_ids)", Postgres.Contains("penguin_ids"))
	assert.Equal(t, "JSON_CONTAINS(penguin_ids, JSON_QUOTE(?))", MySQL.Contains("penguin_ids"))
	assert.Equal(t, "EXISTS (SELECT 1 FROM json_each(penguin_ids) WHERE json_each.value = ?)", SQLite.Contains("penguin_ids"))
}

func TestDialect_TimeValue(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 500000000, time.UTC)
	assert.Equal(t, ts, Postgres.TimeValue(ts))
	assert.Equal(t, ts, MySQL.TimeValue(ts))
	assert.Equal(t, "2024-06-01 12:00:00.500000", SQLite.TimeValue(ts))
}

func TestDialectFor(t *testing.T) {
	for driverName, want := range map[string]string{
		"pgx":      "postgres",
		"postgres": "postgres",
		"mysql":    "mysql",
		"sqlite":   "sqlite",
		"sqlite3":  "sqlite",
	} {
		d, err := DialectFor(driverName)
		require.NoError(t, err, driverName)
		assert.Equal(t, want, d.Name)
	}

	_, err := DialectFor("mssql")
	assert.Error(t, err)
}
