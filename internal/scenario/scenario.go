// Package scenario reads warehouse scenario files: the items to stock and the
// orders to process, in YAML.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Scenario errors.
var (
	ErrNoCustomer = errors.New("order customer must not be empty")
	ErrNoItemID   = errors.New("order item id must not be empty")
)

// Order is one incoming order.
type Order struct {
	ID       types.Identifier `json:"id"`
	Customer types.Customer   `json:"customer"`
}

// Scenario is a parsed scenario file.
type Scenario struct {
	Items  []types.Item
	Orders []Order
}

// file mirrors the YAML layout.
type file struct {
	Items []struct {
		ID          string `yaml:"id"`
		Type        string `yaml:"type"`
		Variant     string `yaml:"variant"`
		Description string `yaml:"description"`
	} `yaml:"items"`
	Orders []struct {
		ID       string `yaml:"id"`
		Customer string `yaml:"customer"`
	} `yaml:"orders"`
}

// Load reads and parses the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario. Items are validated with the types
// constructors; an item without an id gets a fresh identifier.
func Parse(data []byte) (*Scenario, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	s := &Scenario{
		Items:  make([]types.Item, 0, len(f.Items)),
		Orders: make([]Order, 0, len(f.Orders)),
	}
	for i, raw := range f.Items {
		id := types.Identifier(raw.ID)
		if id == "" {
			id = types.NewIdentifier()
		}
		var (
			item types.Item
			err  error
		)
		if types.ItemType(raw.Type) == types.ItemTypePresent {
			item, err = types.NewPresent(id, types.ItemType(raw.Variant), raw.Description)
		} else {
			item, err = types.NewItem(id, types.ItemType(raw.Type), raw.Description)
		}
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		s.Items = append(s.Items, item)
	}

	for i, raw := range f.Orders {
		if raw.ID == "" {
			return nil, fmt.Errorf("orders[%d]: %w", i, ErrNoItemID)
		}
		if raw.Customer == "" {
			return nil, fmt.Errorf("orders[%d]: %w", i, ErrNoCustomer)
		}
		s.Orders = append(s.Orders, Order{
			ID:       types.Identifier(raw.ID),
			Customer: types.Customer(raw.Customer),
		})
	}
	return s, nil
}
