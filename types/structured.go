package types

// Category is a human-facing entity bucket in StructuredInfo.
type Category string

const (
	CategoryPerson       Category = "Person"
	CategoryOrganization Category = "Organization"
	CategoryLocation     Category = "Location"
)

// Categories in the order documents list them.
var Categories = []Category{CategoryPerson, CategoryOrganization, CategoryLocation}

// StructuredInfo is entity surface strings grouped by category, in first-seen order.
type StructuredInfo struct {
	Person       []string `json:"Person"`
	Organization []string `json:"Organization"`
	Location     []string `json:"Location"`
}

// Get returns the list for a category, nil for unknown categories.
func (s StructuredInfo) Get(c Category) []string {
	switch c {
	case CategoryPerson:
		return s.Person
	case CategoryOrganization:
		return s.Organization
	case CategoryLocation:
		return s.Location
	}
	return nil
}

// First is the guarded replacement for indexing a category's first element.
func (s StructuredInfo) First(c Category) (string, bool) {
	list := s.Get(c)
	if len(list) == 0 {
		return "", false
	}
	return list[0], true
}
