package schema

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all parse calls. validator.Validate caches struct
// metadata internally and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ProductData is the structured product record every pipeline stage consumes.
type ProductData struct {
	ProductName       string   `json:"product_name" validate:"required"`
	Concentration     string   `json:"concentration,omitempty"`
	SkinType          []string `json:"skin_type" validate:"required,min=1,dive,required"`
	KeyIngredients    []string `json:"key_ingredients" validate:"required,min=1,dive,required"`
	Benefits          []string `json:"benefits" validate:"required,min=1,dive,required"`
	UsageInstructions string   `json:"usage_instructions" validate:"required"`
	SideEffects       string   `json:"side_effects,omitempty"`
	Price             string   `json:"price" validate:"required"`
}

// Validate checks the record against its field constraints.
func (p *ProductData) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid product data: %w", err)
	}
	return nil
}

// ParseProduct normalizes a raw product record into a validated ProductData.
//
// Upstream records are loosely typed: list-valued fields may arrive as
// comma-separated strings, and older records use "how_to_use" instead of
// "usage_instructions". Both forms are accepted here so callers never see
// the legacy shape.
func ParseProduct(raw map[string]any) (*ProductData, error) {
	if raw == nil {
		return nil, fmt.Errorf("invalid product data: record is empty")
	}

	if v, ok := raw["how_to_use"]; ok {
		if _, exists := raw["usage_instructions"]; !exists {
			raw["usage_instructions"] = v
		}
	}

	p := &ProductData{
		ProductName:       stringField(raw, "product_name"),
		Concentration:     stringField(raw, "concentration"),
		SkinType:          listField(raw, "skin_type"),
		KeyIngredients:    listField(raw, "key_ingredients"),
		Benefits:          listField(raw, "benefits"),
		UsageInstructions: stringField(raw, "usage_instructions"),
		SideEffects:       stringField(raw, "side_effects"),
		Price:             stringField(raw, "price"),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// stringField reads a string value from a raw record, tolerating absence.
func stringField(raw map[string]any, key string) string {
	if v, ok := raw[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// listField reads a list value that may be encoded as a []any, []string, or
// a single comma-separated string.
func listField(raw map[string]any, key string) []string {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case []string:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case string:
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
