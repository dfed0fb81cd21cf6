package db

// Repositories provides access to all database repositories
type Repositories struct {
	Media    *MediaRepository
	Lists    *ListRepository
	Items    *ItemRepository
	Profiles *ProfileRepository
}

// NewRepositories creates a new repository collection
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Media:    NewMediaRepository(db),
		Lists:    NewListRepository(db),
		Items:    NewItemRepository(db),
		Profiles: NewProfileRepository(db),
	}
}
