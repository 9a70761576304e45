package model

import "fmt"

// Category is a named grouping for transactions. Identity is the name
// alone; the description is informational and two categories with the
// same name are the same category regardless of it.
type Category struct {
	Name        string
	Description string
	TotalAmount float64
}

// NewCategory creates a category with a zero running total.
func NewCategory(name, description string) Category {
	return Category{Name: name, Description: description}
}

// Equal reports whether two categories are the same grouping.
func (c Category) Equal(other Category) bool {
	return c.Name == other.Name
}

// Key returns the value categories are registered and compared under.
func (c Category) Key() string {
	return c.Name
}

func (c Category) String() string {
	return fmt.Sprintf("Category{name=%q, description=%q}", c.Name, c.Description)
}
