package model

// MenuCategory distinguishes the two orderable item kinds.
type MenuCategory string

const (
	CategoryFood  MenuCategory = "food"
	CategoryDrink MenuCategory = "drink"
)

// MenuItem is one orderable product on the menu.
// Sizes maps size name (lowercase) to the price added on top of BasePrice;
// it is only populated when HasSize is true. Components lists ingredient
// names that customizations ("no pickles", "extra cheese") may reference.
type MenuItem struct {
	ID         string             `mapstructure:"id"`
	Name       string             `mapstructure:"name"`
	Category   MenuCategory       `mapstructure:"category"`
	BasePrice  float64            `mapstructure:"base_price"`
	HasSize    bool               `mapstructure:"has_size"`
	Sizes      map[string]float64 `mapstructure:"sizes"`
	Components []string           `mapstructure:"components"`
}
