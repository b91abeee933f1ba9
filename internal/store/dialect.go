package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type listEncoding int

const (
	listEncodingPostgresArray listEncoding = iota
	listEncodingJSON
)

// Dialect captures what differs between the supported engines.
// Queries are written with '?' placeholders and rebound by the Store.
type Dialect struct {
	Name string
	// Returning reports whether INSERT/UPDATE ... RETURNING is available.
	Returning bool

	lists       listEncoding
	byteOrder   string
	containsFmt string
	timeLayout  string
}

var (
	// Postgres stores lists as TEXT[] and orders text with the C collation.
	Postgres = Dialect{
		Name:        "postgres",
		Returning:   true,
		lists:       listEncodingPostgresArray,
		byteOrder:   `%s COLLATE "C"`,
		containsFmt: "? = ANY(%s)",
	}
	// MySQL stores lists as JSON documents.
	MySQL = Dialect{
		Name:        "mysql",
		Returning:   false,
		lists:       listEncodingJSON,
		byteOrder:   "BINARY %s",
		containsFmt: "JSON_CONTAINS(%s, JSON_QUOTE(?))",
	}
	// SQLite stores lists as JSON text; its default collation is already byte-wise.
	SQLite = Dialect{
		Name:        "sqlite",
		Returning:   true,
		lists:       listEncodingJSON,
		byteOrder:   "%s",
		containsFmt: "EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = ?)",
		timeLayout:  "2006-01-02 15:04:05.000000",
	}
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driverName string) (Dialect, error) {
	switch driverName {
	case "pgx", "postgres", "cloudsqlpostgres":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", driverName)
}

// OrderByBytes returns an ORDER BY term comparing column byte-wise, independent of
// the database's default collation.
func (d Dialect) OrderByBytes(column string) string {
	return fmt.Sprintf(d.byteOrder, column)
}

// Contains returns a predicate that is true when the list column holds the bound value.
func (d Dialect) Contains(column string) string {
	return fmt.Sprintf(d.containsFmt, column)
}

// EncodeList converts values into the parameter for a list column.
// A nil slice is written as an empty list, never NULL.
func (d Dialect) EncodeList(values []string) (any, error) {
	if values == nil {
		values = []string{}
	}
	switch d.lists {
	case listEncodingPostgresArray:
		buf, err := pgtype.NewMap().Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, values, nil)
		if err != nil {
			return nil, fmt.Errorf("encode text[] > %w", err)
		}
		return string(buf), nil
	default:
		buf, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("encode json list > %w", err)
		}
		return string(buf), nil
	}
}

// TimeValue converts t into the parameter for a timestamp column.
func (d Dialect) TimeValue(t time.Time) any {
	if d.timeLayout == "" {
		return t
	}
	return t.UTC().Format(d.timeLayout)
}
