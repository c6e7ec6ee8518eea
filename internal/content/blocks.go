package content

import (
	"fmt"
	"strings"

	"github.com/kasparro/pagegen/internal/schema"
)

// BlockKind identifies one content logic block.
type BlockKind int

const (
	Benefits BlockKind = iota
	Usage
	Ingredients
	Safety
	SkinType
	CompareIngredients
	CompareBenefits
	ComparePrice
)

// String returns the block's wire name.
func (k BlockKind) String() string {
	switch k {
	case Benefits:
		return "benefits"
	case Usage:
		return "usage"
	case Ingredients:
		return "ingredients"
	case Safety:
		return "safety"
	case SkinType:
		return "skin_type"
	case CompareIngredients:
		return "ingredient_comparison"
	case CompareBenefits:
		return "benefits_comparison"
	case ComparePrice:
		return "price_comparison"
	}
	return fmt.Sprintf("block(%d)", int(k))
}

// Block is one rendered content block.
type Block struct {
	Type    string         `json:"block_type"`
	Content map[string]any `json:"content"`
}

// Execute renders the given block. Comparison blocks require b; the
// single-product blocks ignore it.
func Execute(kind BlockKind, a, b *schema.ProductData) Block {
	switch kind {
	case Benefits:
		return benefitsBlock(a)
	case Usage:
		return usageBlock(a)
	case Ingredients:
		return ingredientsBlock(a)
	case Safety:
		return safetyBlock(a)
	case SkinType:
		return skinTypeBlock(a)
	case CompareIngredients:
		return compareIngredientsBlock(a, b)
	case CompareBenefits:
		return compareBenefitsBlock(a, b)
	case ComparePrice:
		return comparePriceBlock(a, b)
	}
	// Unreachable for the closed kind set above.
	return Block{Type: kind.String(), Content: map[string]any{}}
}

func benefitsBlock(p *schema.ProductData) Block {
	return Block{
		Type: Benefits.String(),
		Content: map[string]any{
			"title":       "Key Benefits",
			"items":       p.Benefits,
			"description": fmt.Sprintf("%s offers multiple benefits for your skin.", p.ProductName),
		},
	}
}

func usageBlock(p *schema.ProductData) Block {
	return Block{
		Type: Usage.String(),
		Content: map[string]any{
			"title":        "How to Use",
			"instructions": p.UsageInstructions,
			"tips":         "For best results, use consistently as part of your skincare routine.",
		},
	}
}

func ingredientsBlock(p *schema.ProductData) Block {
	concentration := p.Concentration
	if concentration == "" {
		concentration = "Not specified"
	}
	return Block{
		Type: Ingredients.String(),
		Content: map[string]any{
			"title":         "Key Ingredients",
			"ingredients":   p.KeyIngredients,
			"concentration": concentration,
		},
	}
}

func safetyBlock(p *schema.ProductData) Block {
	sideEffects := p.SideEffects
	if sideEffects == "" {
		sideEffects = "No known side effects"
	}
	return Block{
		Type: Safety.String(),
		Content: map[string]any{
			"title":        "Safety Information",
			"side_effects": sideEffects,
			"precautions":  "Perform a patch test before first use. Discontinue if irritation occurs.",
		},
	}
}

func skinTypeBlock(p *schema.ProductData) Block {
	return Block{
		Type: SkinType.String(),
		Content: map[string]any{
			"title":       "Suitable For",
			"skin_types":  p.SkinType,
			"description": fmt.Sprintf("Formulated for %s skin types.", strings.Join(p.SkinType, ", ")),
		},
	}
}

func compareIngredientsBlock(a, b *schema.ProductData) Block {
	common, uniqueA, uniqueB := setSplit(a.KeyIngredients, b.KeyIngredients)
	return Block{
		Type: CompareIngredients.String(),
		Content: map[string]any{
			"title": "Ingredient Comparison",
			"product_a": map[string]any{
				"name":        a.ProductName,
				"ingredients": a.KeyIngredients,
				"unique":      uniqueA,
			},
			"product_b": map[string]any{
				"name":        b.ProductName,
				"ingredients": b.KeyIngredients,
				"unique":      uniqueB,
			},
			"common_ingredients": common,
		},
	}
}

func compareBenefitsBlock(a, b *schema.ProductData) Block {
	common, uniqueA, uniqueB := setSplit(a.Benefits, b.Benefits)
	return Block{
		Type: CompareBenefits.String(),
		Content: map[string]any{
			"title": "Benefits Comparison",
			"product_a": map[string]any{
				"name":     a.ProductName,
				"benefits": a.Benefits,
				"unique":   uniqueA,
			},
			"product_b": map[string]any{
				"name":     b.ProductName,
				"benefits": b.Benefits,
				"unique":   uniqueB,
			},
			"common_benefits": common,
		},
	}
}

func comparePriceBlock(a, b *schema.ProductData) Block {
	return Block{
		Type: ComparePrice.String(),
		Content: map[string]any{
			"title": "Price Comparison",
			"product_a": map[string]any{
				"name":  a.ProductName,
				"price": a.Price,
			},
			"product_b": map[string]any{
				"name":  b.ProductName,
				"price": b.Price,
			},
			"analysis": fmt.Sprintf("%s is priced at %s while %s is priced at %s.",
				a.ProductName, a.Price, b.ProductName, b.Price),
		},
	}
}

// setSplit partitions two lists into their intersection and per-side unique
// elements, preserving first-seen order for deterministic output.
func setSplit(listA, listB []string) (common, uniqueA, uniqueB []string) {
	inA := make(map[string]bool, len(listA))
	for _, v := range listA {
		inA[v] = true
	}
	inB := make(map[string]bool, len(listB))
	for _, v := range listB {
		inB[v] = true
	}

	common = []string{}
	uniqueA = []string{}
	uniqueB = []string{}
	for _, v := range listA {
		if inB[v] {
			common = append(common, v)
		} else {
			uniqueA = append(uniqueA, v)
		}
	}
	for _, v := range listB {
		if !inA[v] {
			uniqueB = append(uniqueB, v)
		}
	}
	return common, uniqueA, uniqueB
}
