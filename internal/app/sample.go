package app

// sampleProduct is the embedded demo record used when no product file is
// given, matching the reference dataset the service ships with.
func sampleProduct() map[string]any {
	return map[string]any{
		"product_name":    "GlowBoost Vitamin C Serum",
		"concentration":   "10% Vitamin C",
		"skin_type":       "Oily, Combination",
		"key_ingredients": "Vitamin C, Hyaluronic Acid",
		"benefits":        "Brightening, Fades dark spots",
		"how_to_use":      "Apply 2–3 drops in the morning before sunscreen",
		"side_effects":    "Mild tingling for sensitive skin",
		"price":           "₹699",
	}
}
