package models

// Category identifies which kind of catalog a media item came from
type Category string

// Supported list categories
const (
	CategoryMovie Category = "movie"
	CategoryMusic Category = "music"
	CategoryBook  Category = "book"
)

// ValidCategory reports whether s names a supported category
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryMovie, CategoryMusic, CategoryBook:
		return true
	}
	return false
}

// Provider identifies the third-party catalog a media item was sourced from
type Provider string

// Supported search providers
const (
	ProviderTMDB        Provider = "tmdb"
	ProviderYouTube     Provider = "youtube"
	ProviderSpotify     Provider = "spotify"
	ProviderGoogleBooks Provider = "googleBooks"
	ProviderNaverBooks  Provider = "naverBooks"
)

// Visibility controls whether a list is exposed on public profile pages
type Visibility string

// List visibility states
const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Rank bounds for list items
const (
	MinRank = 1
	MaxRank = 10
)
