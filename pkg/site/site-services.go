package site

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Service describes a commissionable offering shown on the home and services pages.
type Service struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Features    []string `yaml:"features"`
}

// defaultServices back the site when no catalogue file is configured.
var defaultServices = []Service{
	{
		Title:       "Custom Portraits",
		Description: "Personalized portrait commissions capturing your unique essence",
		Price:       "Starting at $800",
		Features:    []string{"Multiple revisions", "High-quality materials", "Framing included"},
	},
	{
		Title:       "Original Paintings",
		Description: "One-of-a-kind artworks created specifically for your space",
		Price:       "Starting at $1,200",
		Features:    []string{"Custom sizing", "Color consultation", "Certificate of authenticity"},
	},
	{
		Title:       "Digital Art",
		Description: "Modern digital illustrations and graphic design services",
		Price:       "Starting at $400",
		Features:    []string{"High-resolution files", "Multiple formats", "Commercial license"},
	},
	{
		Title:       "Art Workshops",
		Description: "Private and group instruction for all skill levels",
		Price:       "$200/hour",
		Features:    []string{"All materials included", "Flexible scheduling", "Take home your creation"},
	},
}

// LoadServices returns the services catalogue, read from the given YAML file when
// a path is supplied, otherwise the built-in one.
func LoadServices(path string) ([]Service, error) {
	if path == "" {
		return defaultServices, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading services catalogue: %w", err)
	}

	var services []Service
	if err = yaml.Unmarshal(contents, &services); err != nil {
		return nil, fmt.Errorf("parsing services catalogue: %w", err)
	}
	return services, nil
}
