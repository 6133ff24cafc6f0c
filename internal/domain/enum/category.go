package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category groups menu items for the category filter
type Category int

const (
	CategoryMainDishes Category = 0
	CategorySideDishes Category = 1
	CategoryBeverages  Category = 2
)

var categoryNames = [...]string{"Main Dishes", "Side Dishes", "Beverages"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return ""
	}
	return categoryNames[c]
}

// Categories lists every category in menu order.
func Categories() []Category {
	return []Category{CategoryMainDishes, CategorySideDishes, CategoryBeverages}
}

// ParseCategory accepts the display name or a slug such as "main-dishes".
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	for _, c := range Categories() {
		if strings.ToLower(c.String()) == norm {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = Category(i)
		return nil
	}
	parsed, err := ParseCategory(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
