package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"voice-order-assistant/internal/fulfillment/repository"
	"voice-order-assistant/internal/model"
)

// Menu is an in-memory MenuRepository with case-insensitive name lookup.
type Menu struct {
	byName map[string]model.MenuItem
}

// NewMenu builds a menu repository from a fixed item list.
func NewMenu(items []model.MenuItem) *Menu {
	byName := make(map[string]model.MenuItem, len(items))
	for _, item := range items {
		byName[strings.ToLower(item.Name)] = item
	}
	return &Menu{byName: byName}
}

// LoadMenuFile reads the menu YAML file and builds the repository from it.
func LoadMenuFile(path string) (*Menu, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}

	var items []model.MenuItem
	if err := v.UnmarshalKey("items", &items); err != nil {
		return nil, fmt.Errorf("failed to parse menu file: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("menu file %s has no items", path)
	}

	return NewMenu(items), nil
}

// GetByName resolves a spoken item name against the menu.
func (m *Menu) GetByName(_ context.Context, name string) (model.MenuItem, error) {
	item, ok := m.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.MenuItem{}, repository.ErrMenuItemNotFound
	}
	return item, nil
}
