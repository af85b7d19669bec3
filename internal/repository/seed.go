package repository

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed/catalog.yaml
var defaultCatalog []byte

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
}

// DefaultSeed returns the built-in reference catalog.
func DefaultSeed() ([]models.ProductInput, error) {
	return ParseSeed(defaultCatalog)
}

// LoadSeed reads a catalog seed from a YAML file, falling back to the
// built-in catalog when path is empty.
func LoadSeed(path string) ([]models.ProductInput, error) {
	if path == "" {
		return DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates a YAML catalog document.
func ParseSeed(data []byte) ([]models.ProductInput, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	inputs := make([]models.ProductInput, 0, len(f.Products))
	for i, p := range f.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("seed product %d: invalid price %q: %w", i+1, p.Price, err)
		}
		in := models.ProductInput{Name: p.Name, Description: p.Description, Price: price}
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("seed product %d: %w", i+1, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
