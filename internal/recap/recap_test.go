package recap

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youreview/youreview/internal/models"
)

func item(category models.Category, rank int, title string, month time.Month, imageURL string) *models.Item {
	media := models.NewMedia(category, models.ProviderTMDB, uuid.NewString(), title)
	if imageURL != "" {
		media.ImageURL = &imageURL
	}
	it := models.NewItem(uuid.New(), media.ID, rank)
	it.CreatedAt = time.Date(2025, month, 15, 12, 0, 0, 0, time.UTC)
	it.Media = media
	return it
}

func TestBuild(t *testing.T) {
	t.Run("Empty input gives empty recap", func(t *testing.T) {
		r := Build(2025, nil)
		assert.Equal(t, 2025, r.Year)
		assert.Zero(t, r.TotalItems)
		assert.Empty(t, r.Categories)
		assert.Empty(t, r.Thumbnails)
	})

	t.Run("Groups by category in display order", func(t *testing.T) {
		items := []*models.Item{
			item(models.CategoryBook, 1, "Dune", time.March, ""),
			item(models.CategoryMovie, 1, "Heat", time.January, ""),
			item(models.CategoryMusic, 1, "Pink Moon", time.February, ""),
		}

		r := Build(2025, items)
		require.Len(t, r.Categories, 3)
		assert.Equal(t, models.CategoryMovie, r.Categories[0].Category)
		assert.Equal(t, models.CategoryMusic, r.Categories[1].Category)
		assert.Equal(t, models.CategoryBook, r.Categories[2].Category)
	})

	t.Run("Entries sort by rank and top holds the podium", func(t *testing.T) {
		items := []*models.Item{
			item(models.CategoryMovie, 4, "Fourth", time.January, ""),
			item(models.CategoryMovie, 1, "First", time.January, ""),
			item(models.CategoryMovie, 3, "Third", time.January, ""),
			item(models.CategoryMovie, 2, "Second", time.January, ""),
		}

		r := Build(2025, items)
		require.Len(t, r.Categories, 1)

		cat := r.Categories[0]
		require.Len(t, cat.Entries, 4)
		assert.Equal(t, "First", cat.Entries[0].Title)
		assert.Equal(t, "Fourth", cat.Entries[3].Title)

		require.Len(t, cat.Top, 3)
		assert.Equal(t, []string{"First", "Second", "Third"}, []string{cat.Top[0].Title, cat.Top[1].Title, cat.Top[2].Title})
	})

	t.Run("Short categories keep all entries in top", func(t *testing.T) {
		items := []*models.Item{
			item(models.CategoryBook, 1, "Dune", time.May, ""),
			item(models.CategoryBook, 2, "Hyperion", time.May, ""),
		}

		r := Build(2025, items)
		require.Len(t, r.Categories, 1)
		assert.Len(t, r.Categories[0].Top, 2)
	})

	t.Run("Counts adds per month", func(t *testing.T) {
		items := []*models.Item{
			item(models.CategoryMovie, 1, "A", time.January, ""),
			item(models.CategoryMovie, 2, "B", time.January, ""),
			item(models.CategoryMovie, 3, "C", time.December, ""),
		}

		r := Build(2025, items)
		assert.Equal(t, 2, r.MonthlyAdds[0])
		assert.Equal(t, 1, r.MonthlyAdds[11])
		assert.Equal(t, 3, r.TotalItems)
	})

	t.Run("Caps thumbnails at ten", func(t *testing.T) {
		var items []*models.Item
		for i := 1; i <= 10; i++ {
			items = append(items, item(models.CategoryMovie, i, "M", time.June, "https://img.example.com/m.jpg"))
		}
		for i := 1; i <= 5; i++ {
			items = append(items, item(models.CategoryBook, i, "B", time.June, "https://img.example.com/b.jpg"))
		}

		r := Build(2025, items)
		assert.Len(t, r.Thumbnails, 10)
		assert.Equal(t, 15, r.TotalItems)
	})

	t.Run("Items without media are skipped", func(t *testing.T) {
		orphan := models.NewItem(uuid.New(), uuid.New(), 1)
		r := Build(2025, []*models.Item{orphan})
		assert.Empty(t, r.Categories)
	})
}
