// Package penguin persists the penguin dolls of the catalog.
package penguin

import (
	"time"

	"github.com/at-ishikawa/penguins/internal/patch"
)

// Penguin is a catalogued doll as stored.
type Penguin struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Nickname    string    `json:"nickname,omitempty" yaml:"nickname,omitempty"`
	BirthDate   string    `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	BirthPlace  string    `json:"birthPlace,omitempty" yaml:"birthPlace,omitempty"`
	Weight      *int      `json:"weight,omitempty" yaml:"weight,omitempty"`
	Height      *int      `json:"height,omitempty" yaml:"height,omitempty"`
	Tag         string    `json:"tag,omitempty" yaml:"tag,omitempty"`
	Group       string    `json:"group,omitempty" yaml:"group,omitempty"`
	Country     string    `json:"country,omitempty" yaml:"country,omitempty"`
	Personality string    `json:"personality,omitempty" yaml:"personality,omitempty"`
	Note        string    `json:"note,omitempty" yaml:"note,omitempty"`
	Images      []string  `json:"images" yaml:"images"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt,omitempty"`
}

// Input holds the caller-supplied fields of a new penguin.
// The id and creation time are assigned by the store.
type Input struct {
	Name        string   `json:"name" validate:"required"`
	Nickname    string   `json:"nickname"`
	BirthDate   string   `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	BirthPlace  string   `json:"birthPlace"`
	Weight      *int     `json:"weight" validate:"omitnil,min=0"`
	Height      *int     `json:"height" validate:"omitnil,min=0"`
	Tag         string   `json:"tag"`
	Group       string   `json:"group"`
	Country     string   `json:"country"`
	Personality string   `json:"personality"`
	Note        string   `json:"note"`
	Images      []string `json:"images" validate:"dive,url"`
}

// Patch lists the fields to change. Unset fields are left untouched;
// a set empty string or nil pointer clears the column.
type Patch struct {
	Name        patch.Optional[string]   `json:"name" validate:"omitnil,min=1"`
	Nickname    patch.Optional[string]   `json:"nickname"`
	BirthDate   patch.Optional[string]   `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	BirthPlace  patch.Optional[string]   `json:"birthPlace"`
	Weight      patch.Optional[*int]     `json:"weight" validate:"omitnil,min=0"`
	Height      patch.Optional[*int]     `json:"height" validate:"omitnil,min=0"`
	Tag         patch.Optional[string]   `json:"tag"`
	Group       patch.Optional[string]   `json:"group"`
	Country     patch.Optional[string]   `json:"country"`
	Personality patch.Optional[string]   `json:"personality"`
	Note        patch.Optional[string]   `json:"note"`
	Images      patch.Optional[[]string] `json:"images" validate:"omitnil,dive,url"`
}

// Age returns the time elapsed between the birth date and now.
// It reports false when the birth date is missing or unparsable.
func (p Penguin) Age(now time.Time) (time.Duration, bool) {
	if p.BirthDate == "" {
		return 0, false
	}
	born, err := time.Parse(time.DateOnly, p.BirthDate)
	if err != nil {
		return 0, false
	}
	return now.Sub(born), true
}
