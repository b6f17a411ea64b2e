package navigation

import "fmt"

// Item represents a navigation link rendered in the page header. Path is an
// opaque destination: it is emitted as-is and never resolved or validated.
type Item struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var defaultMenu = [...]Item{
	{Label: "Home", Path: "/"},
	{Label: "About", Path: "/about"},
	{Label: "Contact", Path: "/contact"},
}

// DefaultMenu returns the header menu in left-to-right order. Each call
// returns a fresh slice so callers cannot mutate the fixture.
func DefaultMenu() []Item {
	items := make([]Item, len(defaultMenu))
	copy(items, defaultMenu[:])
	return items
}

// Valid reports whether both label and path are non-empty.
func (i Item) Valid() bool {
	return i.Label != "" && i.Path != ""
}

// ValidateMenu returns an error naming the first entry that is not Valid.
func ValidateMenu(items []Item) error {
	for idx, item := range items {
		if !item.Valid() {
			return fmt.Errorf("menu item %d (%q -> %q) needs a label and a path", idx, item.Label, item.Path)
		}
	}
	return nil
}
