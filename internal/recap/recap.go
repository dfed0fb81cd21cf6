// Package recap aggregates a user's public picks for a year into the data a
// year-in-review card renders from.
package recap

import (
	"context"
	"sort"

	"github.com/youreview/youreview/internal/db"
	"github.com/youreview/youreview/internal/models"
)

const (
	topSize       = 3
	maxThumbnails = 10
)

// Entry is one ranked pick inside a recap
type Entry struct {
	Rank     int      `json:"rank"`
	Title    string   `json:"title"`
	Creators []string `json:"creators,omitempty"`
	ImageURL *string  `json:"imageUrl,omitempty"`
	LinkURL  *string  `json:"linkUrl,omitempty"`
}

// CategoryRecap holds one category's ordered picks and its podium
type CategoryRecap struct {
	Category models.Category `json:"category"`
	Entries  []Entry         `json:"entries"`
	Top      []Entry         `json:"top"`
}

// Recap is the aggregate over a user's public lists for one year
type Recap struct {
	Year       int             `json:"year"`
	TotalItems int             `json:"totalItems"`
	Categories []CategoryRecap `json:"categories"`
	// MonthlyAdds counts items saved per calendar month, January first
	MonthlyAdds [12]int  `json:"monthlyAdds"`
	Thumbnails  []string `json:"thumbnails"`
}

// categoryOrder fixes the display order of categories in a recap
var categoryOrder = map[models.Category]int{
	models.CategoryMovie: 0,
	models.CategoryMusic: 1,
	models.CategoryBook:  2,
}

// Build computes a recap from a year's items. Items must carry their Media
// association; entries within a category keep rank order.
func Build(year int, items []*models.Item) Recap {
	r := Recap{Year: year, TotalItems: len(items), Categories: []CategoryRecap{}, Thumbnails: []string{}}

	byCategory := make(map[models.Category][]Entry)
	for _, item := range items {
		if item.Media == nil {
			continue
		}

		entry := Entry{
			Rank:     item.Rank,
			Title:    item.Media.Title,
			Creators: item.Media.Creators,
			ImageURL: item.Media.ImageURL,
			LinkURL:  item.Media.LinkURL,
		}
		byCategory[item.Media.Category] = append(byCategory[item.Media.Category], entry)

		month := int(item.CreatedAt.Month()) - 1
		r.MonthlyAdds[month]++

		if item.Media.ImageURL != nil && len(r.Thumbnails) < maxThumbnails {
			r.Thumbnails = append(r.Thumbnails, *item.Media.ImageURL)
		}
	}

	categories := make([]models.Category, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categoryOrder[categories[i]] < categoryOrder[categories[j]]
	})

	for _, category := range categories {
		entries := byCategory[category]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Rank < entries[j].Rank })

		top := entries
		if len(top) > topSize {
			top = top[:topSize]
		}
		r.Categories = append(r.Categories, CategoryRecap{
			Category: category,
			Entries:  entries,
			Top:      top,
		})
	}
	return r
}

// Service builds recaps from a user's stored public items
type Service struct {
	repos *db.Repositories
}

// NewService creates a new recap service
func NewService(repos *db.Repositories) *Service {
	return &Service{repos: repos}
}

// ForUser computes the recap over ownerID's public lists for a year. A user
// with nothing public gets an empty recap, not an error.
func (s *Service) ForUser(ctx context.Context, ownerID string, year int) (Recap, error) {
	items, err := s.repos.Items.ListByUserYear(ctx, ownerID, year, true)
	if err != nil {
		return Recap{}, err
	}
	return Build(year, items), nil
}
