package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() map[string]any {
	return map[string]any{
		"product_name":       "GlowBoost Vitamin C Serum",
		"concentration":      "10%",
		"skin_type":          []any{"oily", "combination"},
		"key_ingredients":    []any{"Vitamin C", "Hyaluronic Acid"},
		"benefits":           []any{"brightening", "hydration"},
		"usage_instructions": "Apply 2-3 drops in the morning.",
		"side_effects":       "Mild tingling for first-time users.",
		"price":              "₹699",
	}
}

func TestParseProduct(t *testing.T) {
	p, err := ParseProduct(validRaw())
	require.NoError(t, err)

	assert.Equal(t, "GlowBoost Vitamin C Serum", p.ProductName)
	assert.Equal(t, []string{"oily", "combination"}, p.SkinType)
	assert.Equal(t, []string{"Vitamin C", "Hyaluronic Acid"}, p.KeyIngredients)
	assert.Equal(t, "₹699", p.Price)
}

func TestParseProductCommaSeparatedLists(t *testing.T) {
	raw := validRaw()
	raw["skin_type"] = "oily, combination , normal"
	raw["benefits"] = "brightening,, hydration"

	p, err := ParseProduct(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"oily", "combination", "normal"}, p.SkinType)
	assert.Equal(t, []string{"brightening", "hydration"}, p.Benefits)
}

func TestParseProductLegacyHowToUseKey(t *testing.T) {
	raw := validRaw()
	delete(raw, "usage_instructions")
	raw["how_to_use"] = "Use at night only."

	p, err := ParseProduct(raw)
	require.NoError(t, err)
	assert.Equal(t, "Use at night only.", p.UsageInstructions)
}

func TestParseProductUsageInstructionsWinOverLegacy(t *testing.T) {
	raw := validRaw()
	raw["how_to_use"] = "old text"

	p, err := ParseProduct(raw)
	require.NoError(t, err)
	assert.Equal(t, "Apply 2-3 drops in the morning.", p.UsageInstructions)
}

func TestParseProductTrimsWhitespace(t *testing.T) {
	raw := validRaw()
	raw["product_name"] = "  GlowBoost  "
	raw["skin_type"] = []any{" oily ", ""}

	p, err := ParseProduct(raw)
	require.NoError(t, err)
	assert.Equal(t, "GlowBoost", p.ProductName)
	assert.Equal(t, []string{"oily"}, p.SkinType)
}

func TestParseProductMissingRequiredFields(t *testing.T) {
	for _, key := range []string{"product_name", "skin_type", "key_ingredients", "benefits", "usage_instructions", "price"} {
		raw := validRaw()
		delete(raw, key)
		_, err := ParseProduct(raw)
		assert.Error(t, err, "missing %s must fail validation", key)
	}
}

func TestParseProductNilRecord(t *testing.T) {
	_, err := ParseProduct(nil)
	require.Error(t, err)
}

func TestParseProductNonStringValuesIgnored(t *testing.T) {
	raw := validRaw()
	raw["price"] = 699 // wrong type reads as empty, then fails validation
	_, err := ParseProduct(raw)
	assert.Error(t, err)
}

func TestQuestionValidate(t *testing.T) {
	q := Question{Question: "Is it safe?", Category: "Safety"}
	assert.NoError(t, q.Validate())

	q = Question{Question: "Is it safe?", Category: "Gossip"}
	assert.Error(t, q.Validate())

	q = Question{Category: "Safety"}
	assert.Error(t, q.Validate())
}
