package memory

import (
	"time"

	"github.com/at-ishikawa/penguins/internal/store"
)

const (
	table   = "memories"
	columns = "id, title, description, location, date, image_url, penguin_ids"
)

type row struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Location    string     `db:"location"`
	Date        store.Date `db:"date"`
	ImageURL    string     `db:"image_url"`
	PenguinIDs  store.List `db:"penguin_ids"`
}

func (r row) toMemory() Memory {
	ids := []string(r.PenguinIDs)
	if ids == nil {
		ids = []string{}
	}
	return Memory{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Date:        string(r.Date),
		ImageURL:    r.ImageURL,
		PenguinIDs:  ids,
	}
}

// insertValues returns the parameters for every column plus created_at.
func insertValues(d store.Dialect, m Memory, createdAt time.Time) ([]any, error) {
	date, err := store.NullDate(m.Date)
	if err != nil {
		return nil, err
	}
	ids, err := d.EncodeList(m.PenguinIDs)
	if err != nil {
		return nil, err
	}
	return []any{
		m.ID,
		m.Title,
		m.Description,
		m.Location,
		date,
		m.ImageURL,
		ids,
		d.TimeValue(createdAt),
	}, nil
}

func assignments(d store.Dialect, p Patch) ([]store.Assignment, error) {
	var as []store.Assignment
	if v, ok := p.Title.Get(); ok {
		as = append(as, store.Assignment{Column: "title", Value: v})
	}
	if v, ok := p.Description.Get(); ok {
		as = append(as, store.Assignment{Column: "description", Value: v})
	}
	if v, ok := p.Location.Get(); ok {
		as = append(as, store.Assignment{Column: "location", Value: v})
	}
	if v, ok := p.Date.Get(); ok {
		date, err := store.NullDate(v)
		if err != nil {
			return nil, err
		}
		as = append(as, store.Assignment{Column: "date", Value: date})
	}
	if v, ok := p.ImageURL.Get(); ok {
		as = append(as, store.Assignment{Column: "image_url", Value: v})
	}
	if v, ok := p.PenguinIDs.Get(); ok {
		ids, err := d.EncodeList(v)
		if err != nil {
			return nil, err
		}
		as = append(as, store.Assignment{Column: "penguin_ids", Value: ids})
	}
	return as, nil
}
