package penguin

import (
	"database/sql"
	"fmt"

	"github.com/at-ishikawa/penguins/internal/store"
)

const (
	table   = "penguins"
	columns = "id, name, nickname, birth_date, birth_place, weight, height, tag, group_name, country, personality, note, images, created_at"
)

type row struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Nickname    sql.NullString  `db:"nickname"`
	BirthDate   store.Date      `db:"birth_date"`
	BirthPlace  sql.NullString  `db:"birth_place"`
	Weight      *int64          `db:"weight"`
	Height      *int64          `db:"height"`
	Tag         sql.NullString  `db:"tag"`
	GroupName   sql.NullString  `db:"group_name"`
	Country     sql.NullString  `db:"country"`
	Personality sql.NullString  `db:"personality"`
	Note        sql.NullString  `db:"note"`
	Images      store.List      `db:"images"`
	CreatedAt   store.Timestamp `db:"created_at"`
}

func (r row) toPenguin() Penguin {
	images := []string(r.Images)
	if images == nil {
		images = []string{}
	}
	return Penguin{
		ID:          r.ID,
		Name:        r.Name,
		Nickname:    r.Nickname.String,
		BirthDate:   string(r.BirthDate),
		BirthPlace:  r.BirthPlace.String,
		Weight:      store.IntPtr(r.Weight),
		Height:      store.IntPtr(r.Height),
		Tag:         r.Tag.String,
		Group:       r.GroupName.String,
		Country:     r.Country.String,
		Personality: r.Personality.String,
		Note:        r.Note.String,
		Images:      images,
		CreatedAt:   r.CreatedAt.Time(),
	}
}

// insertValues returns the parameters for every column, in column order.
func insertValues(d store.Dialect, p Penguin) ([]any, error) {
	birthDate, err := store.NullDate(p.BirthDate)
	if err != nil {
		return nil, err
	}
	images, err := d.EncodeList(p.Images)
	if err != nil {
		return nil, err
	}
	return []any{
		p.ID,
		p.Name,
		store.NullString(p.Nickname),
		birthDate,
		store.NullString(p.BirthPlace),
		store.NullInt(p.Weight),
		store.NullInt(p.Height),
		store.NullString(p.Tag),
		store.NullString(p.Group),
		store.NullString(p.Country),
		store.NullString(p.Personality),
		store.NullString(p.Note),
		images,
		d.TimeValue(p.CreatedAt),
	}, nil
}

// assignments returns one column assignment per field set in p, in column order.
func assignments(d store.Dialect, p Patch) ([]store.Assignment, error) {
	var as []store.Assignment
	if v, ok := p.Name.Get(); ok {
		as = append(as, store.Assignment{Column: "name", Value: v})
	}
	optionalText := func(column string, o interface{ Get() (string, bool) }) {
		if v, ok := o.Get(); ok {
			as = append(as, store.Assignment{Column: column, Value: store.NullString(v)})
		}
	}
	optionalText("nickname", p.Nickname)
	if v, ok := p.BirthDate.Get(); ok {
		date, err := store.NullDate(v)
		if err != nil {
			return nil, err
		}
		as = append(as, store.Assignment{Column: "birth_date", Value: date})
	}
	optionalText("birth_place", p.BirthPlace)
	if v, ok := p.Weight.Get(); ok {
		as = append(as, store.Assignment{Column: "weight", Value: store.NullInt(v)})
	}
	if v, ok := p.Height.Get(); ok {
		as = append(as, store.Assignment{Column: "height", Value: store.NullInt(v)})
	}
	optionalText("tag", p.Tag)
	optionalText("group_name", p.Group)
	optionalText("country", p.Country)
	optionalText("personality", p.Personality)
	optionalText("note", p.Note)
	if v, ok := p.Images.Get(); ok {
		images, err := d.EncodeList(v)
		if err != nil {
			return nil, fmt.Errorf("images > %w", err)
		}
		as = append(as, store.Assignment{Column: "images", Value: images})
	}
	return as, nil
}
