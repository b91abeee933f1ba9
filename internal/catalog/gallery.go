package catalog

import (
	"context"
	"fmt"
)

type GalleryItemType string

const (
	GalleryPenguin GalleryItemType = "penguin"
	GalleryMemory  GalleryItemType = "memory"
)

// GalleryItem is one image of the site-wide gallery.
type GalleryItem struct {
	ID          string          `json:"id"`
	Type        GalleryItemType `json:"type"`
	ImageURL    string          `json:"imageUrl"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date,omitempty"`
	Tags        []string        `json:"tags"`
}

// Gallery lists every penguin image followed by every memory photo.
// Callers shuffle the items if they want a random wall.
func (s *Service) Gallery(ctx context.Context) ([]GalleryItem, error) {
	penguins, err := s.penguins.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("penguins.List() > %w", err)
	}
	memories, err := s.memories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("memories.List() > %w", err)
	}

	items := make([]GalleryItem, 0, len(memories))
	for _, p := range penguins {
		tag := p.Tag
		if tag == "" {
			tag = "Penguin"
		}
		country := p.Country
		if country == "" {
			country = "Unknown"
		}
		for i, image := range p.Images {
			items = append(items, GalleryItem{
				ID:          fmt.Sprintf("p-%s-%d", p.ID, i),
				Type:        GalleryPenguin,
				ImageURL:    image,
				Title:       p.Name,
				Subtitle:    p.Nickname,
				Description: p.Note,
				Tags:        []string{tag, country},
			})
		}
	}
	for _, m := range memories {
		items = append(items, GalleryItem{
			ID:          "m-" + m.ID,
			Type:        GalleryMemory,
			ImageURL:    m.ImageURL,
			Title:       m.Title,
			Subtitle:    m.Location,
			Description: m.Description,
			Date:        m.Date,
			Tags:        []string{"Memory"},
		})
	}
	return items, nil
}
