// Package prompts is the single home for every prompt sent to the remote
// model, keeping wording out of the pipeline stages that use it.
package prompts

import (
	"fmt"
	"strings"

	"github.com/kasparro/pagegen/internal/schema"
)

// System personas, one per call site.
const (
	SystemQuestionGeneration = "You are an expert at generating user questions about skincare products. " +
		"Generate diverse, realistic questions that users would ask. You MUST generate at least 15 questions."
	SystemProductGeneration = "You are an expert at creating realistic fictional skincare products. " +
		"Generate a competitor product that is similar but distinct from the reference product."
	SystemFAQAnswering = "You are a helpful skincare product expert. " +
		"Answer questions based only on the provided product information."
	SystemRecommendation = "You are a skincare expert providing product recommendations."
)

// productInfo renders the shared product block used by several prompts.
func productInfo(p *schema.ProductData) string {
	return fmt.Sprintf(`Product Information:
- Name: %s
- Concentration: %s
- Skin Types: %s
- Key Ingredients: %s
- Benefits: %s
- Usage: %s
- Side Effects: %s
- Price: %s`,
		p.ProductName,
		p.Concentration,
		strings.Join(p.SkinType, ", "),
		strings.Join(p.KeyIngredients, ", "),
		strings.Join(p.Benefits, ", "),
		p.UsageInstructions,
		p.SideEffects,
		p.Price,
	)
}

// QuestionGeneration asks for categorized user questions as JSON.
func QuestionGeneration(p *schema.ProductData) string {
	categories := strings.Join(schema.QuestionCategories, ", ")
	return fmt.Sprintf(`Generate at least 15 diverse user questions about the following skincare product.
Questions must be categorized into these categories: %s.
Ensure at least %d questions per category.

%s

Return a JSON object with this structure:
{
  "questions": [
    {"question": "...", "category": "Informational"},
    {"question": "...", "category": "Safety"},
    ...
  ]
}

Categories must be one of: %s
`, categories, schema.MinQuestionsPerCategory, productInfo(p), categories)
}

// CompetitorProduct asks for a fictional competitor record as JSON matching
// the ProductData layout.
func CompetitorProduct(reference *schema.ProductData) string {
	return fmt.Sprintf(`Generate a realistic fictional competitor skincare product based on the reference product below.

The competitor product should:
1. Have a DIFFERENT product name (creative and realistic)
2. Target DIFFERENT or overlapping skin types
3. Use DIFFERENT key ingredients (but in the same category - e.g., if reference uses Vitamin C, competitor might use Niacinamide)
4. Offer similar but distinct benefits
5. Have competitive pricing (within 20%% of reference price)
6. Be a realistic product that could exist in the market

Reference %s

Generate a competitor product in this EXACT JSON structure:
{
  "product_name": "...",
  "concentration": "...",
  "skin_type": ["...", "..."],
  "key_ingredients": ["...", "...", "..."],
  "benefits": ["...", "...", "..."],
  "usage_instructions": "...",
  "side_effects": "...",
  "price": "..."
}

IMPORTANT: Return ONLY valid JSON matching the structure above. Ensure all fields are present and properly formatted.
`, productInfo(reference))
}

// FAQAnswering asks for one answer per question, batched in a single call.
// Each returned pair echoes its question so answers can be reconciled even
// when the service reorders them.
func FAQAnswering(p *schema.ProductData, questions []schema.Question) string {
	var list strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&list, "%d. %s\n", i+1, q.Question)
	}

	return fmt.Sprintf(`Answer ALL of the following questions about the product based ONLY on the provided product information.
Do not add any information not present in the product data.

%s

Questions:
%s
Provide answers in JSON format with this structure:
{
  "qa_pairs": [
    {
      "question": "Original question text",
      "answer": "Answer to the question (2-3 sentences)"
    },
    ...
  ]
}

Ensure you provide answers for ALL %d questions.`, productInfo(p), list.String(), len(questions))
}

// Recommendation asks for a short comparison verdict in plain text.
func Recommendation(a, b *schema.ProductData) string {
	side := func(label string, p *schema.ProductData) string {
		return fmt.Sprintf(`Product %s: %s
- Ingredients: %s
- Benefits: %s
- Skin Types: %s
- Price: %s`,
			label, p.ProductName,
			strings.Join(p.KeyIngredients, ", "),
			strings.Join(p.Benefits, ", "),
			strings.Join(p.SkinType, ", "),
			p.Price,
		)
	}
	return fmt.Sprintf(`Compare these two skincare products and provide a brief recommendation (2-3 sentences)
about which product might be better for different use cases or skin types.

%s

%s`, side("A", a), side("B", b))
}
