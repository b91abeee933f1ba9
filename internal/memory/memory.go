// Package memory persists dated photo-diary entries and their links to penguins.
//
// A memory refers to penguins through an ordered list of ids kept on the memory
// row itself. Nothing checks that the ids exist, and deleting a penguin leaves
// its id in place.
package memory

import (
	"github.com/at-ishikawa/penguins/internal/patch"
)

// Memory is a stored diary entry.
type Memory struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Location    string   `json:"location" yaml:"location"`
	Date        string   `json:"date" yaml:"date"`
	ImageURL    string   `json:"imageUrl" yaml:"imageUrl"`
	PenguinIDs  []string `json:"penguinIds" yaml:"penguinIds"`
}

// Input holds the fields required to create a memory.
type Input struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	ImageURL    string   `json:"imageUrl" validate:"required,url"`
	PenguinIDs  []string `json:"penguinIds" validate:"dive,uuid"`
}

// Patch lists the fields to change. Unset fields are left untouched.
type Patch struct {
	Title       patch.Optional[string]   `json:"title" validate:"omitnil,min=1"`
	Description patch.Optional[string]   `json:"description"`
	Location    patch.Optional[string]   `json:"location"`
	Date        patch.Optional[string]   `json:"date" validate:"omitnil,datetime=2006-01-02"`
	ImageURL    patch.Optional[string]   `json:"imageUrl" validate:"omitnil,url"`
	PenguinIDs  patch.Optional[[]string] `json:"penguinIds" validate:"omitnil,dive,uuid"`
}

// Year returns the calendar year of the memory's date, or "" when it has none.
func (m Memory) Year() string {
	if len(m.Date) < 4 {
		return ""
	}
	return m.Date[:4]
}
