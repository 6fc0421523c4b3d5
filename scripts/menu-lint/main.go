// scripts/menu-lint/main.go
//
// Validates a menu YAML file before deploying it: checks that it parses,
// that no two items share a name, and that sized items actually list sizes.
//
// Usage:
//   go run scripts/menu-lint/main.go [path/to/menu.yaml]
//
// Defaults to ./config/menu.yaml.

package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"voice-order-assistant/internal/model"
)

func main() {
	path := "./config/menu.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read menu file %q: %v", path, err)
	}

	var items []model.MenuItem
	if err := v.UnmarshalKey("items", &items); err != nil {
		log.Fatalf("Failed to parse menu file: %v", err)
	}
	if len(items) == 0 {
		log.Fatalf("Menu file %q has no items", path)
	}

	problems := 0
	seen := map[string]string{}
	for _, item := range items {
		key := strings.ToLower(item.Name)
		if prev, ok := seen[key]; ok {
			fmt.Printf("DUPLICATE  %q collides with %q\n", item.ID, prev)
			problems++
		}
		seen[key] = item.ID

		if item.Name == "" || item.ID == "" {
			fmt.Printf("INCOMPLETE %+v is missing id or name\n", item)
			problems++
		}
		if item.BasePrice <= 0 {
			fmt.Printf("PRICE      %q has base price %.2f\n", item.ID, item.BasePrice)
			problems++
		}
		if item.HasSize && len(item.Sizes) == 0 {
			fmt.Printf("SIZES      %q is sized but lists no sizes\n", item.ID)
			problems++
		}
		if !item.HasSize && len(item.Sizes) > 0 {
			fmt.Printf("SIZES      %q lists sizes but has_size is false\n", item.ID)
			problems++
		}
		if item.Category != model.CategoryFood && item.Category != model.CategoryDrink {
			fmt.Printf("CATEGORY   %q has unknown category %q\n", item.ID, item.Category)
			problems++
		}
	}

	if problems > 0 {
		log.Fatalf("%d problem(s) in %s", problems, path)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	fmt.Printf("%s: %d items OK\n", path, len(items))
	for _, item := range items {
		line := fmt.Sprintf("  %-20s $%.2f  %s", item.Name, item.BasePrice, item.Category)
		if item.HasSize {
			sizes := make([]string, 0, len(item.Sizes))
			for name := range item.Sizes {
				sizes = append(sizes, name)
			}
			sort.Strings(sizes)
			line += "  sizes: " + strings.Join(sizes, ", ")
		}
		fmt.Println(line)
	}
}
