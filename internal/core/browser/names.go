package browser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Names maps order file identifiers to display labels.
type Names map[string]string

// DefaultNames returns a copy of the bundled lookup table.
func DefaultNames() Names {
	n := make(Names, len(bundledNames))
	for k, v := range bundledNames {
		n[k] = v
	}
	return n
}

var bundledNames = map[string]string{
	"email1.json":      "Blue Willow Catering",
	"email2.json":      "Fresh Farm Produce",
	"email3.json":      "Urban Market Orders",
	"email4.json":      "Daily Deli",
	"email5.json":      "Nature’s Basket",
	"email6.json":      "Crisp Veggies Co.",
	"email7.json":      "Golden Grocery",
	"email8.json":      "Whole Cart Wholesale",
	"email9.json":      "QuickPick Retail",
	"email10.json":     "Harvest Foods",
	"email11.json":     "Bistro Central",
	"email12.json":     "Green Basket",
	"email13.json":     "Village Organics",
	"email14.json":     "Sunset Suppliers",
	"email15.json":     "Daily Chef Orders",
	"email16.json":     "The Market Place",
	"email17.json":     "Prime Pantry",
	"email18.json":     "GreenLeaf Essentials",
	"order1.json.json": "Custom Order Batch 1",
	"pdf1.json":        "Gourmet PDF Orders",
}

// Lookup returns the label for file and whether it is known.
func (n Names) Lookup(file string) (string, bool) {
	label, ok := n[file]
	if !ok || label == "" {
		return "", false
	}
	return label, true
}

// Display returns the label for file, falling back to the raw identifier.
func (n Names) Display(file string) string {
	if label, ok := n.Lookup(file); ok {
		return label
	}
	return file
}

// LoadNames reads a YAML mapping of file identifiers to labels and merges it
// over the bundled table. An empty path yields the bundled table.
func LoadNames(path string) (Names, error) {
	names := DefaultNames()
	if path == "" {
		return names, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return names, fmt.Errorf("read names file: %w", err)
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return names, fmt.Errorf("parse names file %s: %w", path, err)
	}
	for k, v := range overrides {
		names[k] = v
	}
	return names, nil
}
