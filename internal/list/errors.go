package list

import "errors"

// Service-level errors for list and item operations
var (
	// ErrListFull indicates every rank from 1 to 10 is already taken
	ErrListFull = errors.New("list already has 10 items")

	// ErrInvalidRank indicates a rank outside the 1..10 band
	ErrInvalidRank = errors.New("rank must be between 1 and 10")

	// ErrDuplicateRank indicates a reorder assigns the same rank twice
	ErrDuplicateRank = errors.New("duplicate rank in reorder")

	// ErrDuplicateItem indicates a reorder references the same item twice
	ErrDuplicateItem = errors.New("duplicate item in reorder")

	// ErrItemNotInList indicates a reorder references an item outside the list
	ErrItemNotInList = errors.New("item does not belong to list")

	// ErrEmptyReorder indicates a reorder carried no entries
	ErrEmptyReorder = errors.New("reorder requires at least one entry")

	// ErrItemNotFound indicates the requested item does not exist
	ErrItemNotFound = errors.New("item not found")

	// ErrListNotFound indicates the requested list does not exist
	ErrListNotFound = errors.New("list not found")

	// ErrForbidden indicates the caller does not own the targeted list
	ErrForbidden = errors.New("not the list owner")

	// ErrInvalidCategory indicates an unsupported list category
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidVisibility indicates an unsupported visibility value
	ErrInvalidVisibility = errors.New("invalid visibility")
)

// IsListFull checks if an error indicates a fully occupied list
func IsListFull(err error) bool {
	return errors.Is(err, ErrListFull)
}

// IsForbidden checks if an error indicates an ownership violation
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNotFound checks if an error indicates a missing list or item
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrListNotFound)
}

// IsValidation checks if an error indicates rejected caller input
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidRank) ||
		errors.Is(err, ErrDuplicateRank) ||
		errors.Is(err, ErrDuplicateItem) ||
		errors.Is(err, ErrItemNotInList) ||
		errors.Is(err, ErrEmptyReorder) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidVisibility)
}
