package types

// Item represents a single todo entry. Items carry no owner: every
// authenticated user reads and mutates the same shared list.
type Item struct {
	// ID is the unique identifier of the item.
	ID int `json:"id" db:"id"`

	// Name is the todo text shown to the user.
	Name string `json:"name" db:"name"`

	// IsComplete marks the item as done.
	IsComplete bool `json:"isComplete" db:"is_complete"`
}
