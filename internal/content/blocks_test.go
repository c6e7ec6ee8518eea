package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasparro/pagegen/internal/schema"
)

func productA() *schema.ProductData {
	return &schema.ProductData{
		ProductName:       "GlowBoost Vitamin C Serum",
		Concentration:     "10%",
		SkinType:          []string{"oily", "combination"},
		KeyIngredients:    []string{"Vitamin C", "Hyaluronic Acid"},
		Benefits:          []string{"brightening", "hydration"},
		UsageInstructions: "Apply 2-3 drops in the morning.",
		SideEffects:       "Mild tingling for first-time users.",
		Price:             "₹699",
	}
}

func productB() *schema.ProductData {
	return &schema.ProductData{
		ProductName:       "RadiantGlow Brightening Serum",
		Concentration:     "15%",
		SkinType:          []string{"dry", "combination"},
		KeyIngredients:    []string{"Vitamin C", "Niacinamide"},
		Benefits:          []string{"brightening", "even tone"},
		UsageInstructions: "Apply at night.",
		Price:             "₹899",
	}
}

func TestBenefitsBlock(t *testing.T) {
	b := Execute(Benefits, productA(), nil)
	assert.Equal(t, "benefits", b.Type)
	assert.Equal(t, []string{"brightening", "hydration"}, b.Content["items"])
	assert.Contains(t, b.Content["description"], "GlowBoost")
}

func TestUsageBlock(t *testing.T) {
	b := Execute(Usage, productA(), nil)
	assert.Equal(t, "usage", b.Type)
	assert.Equal(t, "Apply 2-3 drops in the morning.", b.Content["instructions"])
}

func TestIngredientsBlockDefaultsConcentration(t *testing.T) {
	p := productA()
	p.Concentration = ""
	b := Execute(Ingredients, p, nil)
	assert.Equal(t, "Not specified", b.Content["concentration"])

	b = Execute(Ingredients, productA(), nil)
	assert.Equal(t, "10%", b.Content["concentration"])
}

func TestSafetyBlockDefaultsSideEffects(t *testing.T) {
	p := productA()
	p.SideEffects = ""
	b := Execute(Safety, p, nil)
	assert.Equal(t, "No known side effects", b.Content["side_effects"])
}

func TestSkinTypeBlock(t *testing.T) {
	b := Execute(SkinType, productA(), nil)
	assert.Equal(t, "skin_type", b.Type)
	assert.Contains(t, b.Content["description"], "oily, combination")
}

func TestCompareIngredientsBlock(t *testing.T) {
	b := Execute(CompareIngredients, productA(), productB())
	require.Equal(t, "ingredient_comparison", b.Type)

	assert.Equal(t, []string{"Vitamin C"}, b.Content["common_ingredients"])
	pa := b.Content["product_a"].(map[string]any)
	pb := b.Content["product_b"].(map[string]any)
	assert.Equal(t, []string{"Hyaluronic Acid"}, pa["unique"])
	assert.Equal(t, []string{"Niacinamide"}, pb["unique"])
}

func TestCompareBenefitsBlock(t *testing.T) {
	b := Execute(CompareBenefits, productA(), productB())
	assert.Equal(t, []string{"brightening"}, b.Content["common_benefits"])
}

func TestComparePriceBlock(t *testing.T) {
	b := Execute(ComparePrice, productA(), productB())
	assert.Contains(t, b.Content["analysis"], "₹699")
	assert.Contains(t, b.Content["analysis"], "₹899")
}

func TestSetSplitReturnsEmptySlicesNotNil(t *testing.T) {
	common, ua, ub := setSplit([]string{"x"}, []string{"x"})
	assert.Equal(t, []string{"x"}, common)
	assert.NotNil(t, ua)
	assert.NotNil(t, ub)
	assert.Empty(t, ua)
	assert.Empty(t, ub)
}

func TestSetSplitPreservesOrder(t *testing.T) {
	common, ua, ub := setSplit(
		[]string{"a", "b", "c", "d"},
		[]string{"d", "b", "e"},
	)
	assert.Equal(t, []string{"b", "d"}, common)
	assert.Equal(t, []string{"a", "c"}, ua)
	assert.Equal(t, []string{"e"}, ub)
}

func TestBlockKindString(t *testing.T) {
	assert.Equal(t, "price_comparison", ComparePrice.String())
	assert.Equal(t, "block(42)", BlockKind(42).String())
}
