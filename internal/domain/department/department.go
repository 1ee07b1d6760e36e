// Package department serves the fixed list of departments requirements belong to.
package department

import "time"

// Department is a static reference entry.
type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

var seededAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var departments = []Department{
	{ID: "1", Name: "Engineering", Description: "Software development and technical roles", CreatedAt: seededAt},
	{ID: "2", Name: "Product", Description: "Product management and strategy", CreatedAt: seededAt},
	{ID: "3", Name: "Design", Description: "UI/UX and graphic design", CreatedAt: seededAt},
	{ID: "4", Name: "Marketing", Description: "Marketing and brand management", CreatedAt: seededAt},
	{ID: "5", Name: "Sales", Description: "Sales and business development", CreatedAt: seededAt},
	{ID: "6", Name: "Analytics", Description: "Data analysis and business intelligence", CreatedAt: seededAt},
}

// Catalog is the read-only department lookup.
type Catalog struct{}

// NewCatalog returns the department catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// List returns a copy of every department.
func (c *Catalog) List() []Department {
	return append([]Department(nil), departments...)
}

// Name returns the name of the department with the given ID.
func (c *Catalog) Name(id string) (string, bool) {
	for _, d := range departments {
		if d.ID == id {
			return d.Name, true
		}
	}
	return "", false
}
