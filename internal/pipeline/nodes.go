package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/kasparro/pagegen/internal/align"
	"github.com/kasparro/pagegen/internal/content"
	"github.com/kasparro/pagegen/internal/ctxlog"
	"github.com/kasparro/pagegen/internal/llm"
	"github.com/kasparro/pagegen/internal/prompts"
	"github.com/kasparro/pagegen/internal/runstate"
	"github.com/kasparro/pagegen/internal/schema"
)

// parseProduct normalizes and validates the caller-seeded raw record.
func (p *Pipeline) parseProduct(ctx context.Context, state *runstate.State) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	v, err := state.Read(ctx, KeyRawProduct)
	if err != nil {
		return nil, err
	}
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("state key %q holds %T, expected raw product record", KeyRawProduct, v)
	}

	product, err := schema.ParseProduct(raw)
	if err != nil {
		return nil, err
	}
	logger.Info("Parsed product record.", "product", product.ProductName)
	return map[string]any{KeyProductA: product}, nil
}

// generateCompetitor synthesizes a fictional competitor record via the
// remote model and validates it through the same product schema.
func (p *Pipeline) generateCompetitor(ctx context.Context, state *runstate.State) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	productA, err := readProduct(ctx, state, KeyProductA)
	if err != nil {
		return nil, err
	}

	raw, outcome, err := p.generate(ctx, llm.Request{
		System:      prompts.SystemProductGeneration,
		Prompt:      prompts.CompetitorProduct(productA),
		Temperature: 0.8,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var productB schema.ProductData
	if err := llm.DecodeJSON(raw, &productB); err != nil {
		return nil, err
	}
	if err := productB.Validate(); err != nil {
		// A structurally broken product is a response defect, not a
		// network hiccup, so it is not worth another attempt.
		return nil, llm.Fatal(err)
	}

	logger.Info("Generated competitor product.", "product", productB.ProductName, "attempts", outcome.Attempts)
	return map[string]any{KeyProductB: &productB}, nil
}

// questionsResponse is the wire shape of the question-generation call.
type questionsResponse struct {
	Questions []schema.Question `json:"questions"`
}

// generateQuestions produces the categorized question list for the FAQ.
func (p *Pipeline) generateQuestions(ctx context.Context, state *runstate.State) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	productA, err := readProduct(ctx, state, KeyProductA)
	if err != nil {
		return nil, err
	}

	raw, outcome, err := p.generate(ctx, llm.Request{
		System:      prompts.SystemQuestionGeneration,
		Prompt:      prompts.QuestionGeneration(productA),
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var resp questionsResponse
	if err := llm.DecodeJSON(raw, &resp); err != nil {
		return nil, err
	}

	questions := make([]schema.Question, 0, len(resp.Questions))
	for _, q := range resp.Questions {
		if err := q.Validate(); err != nil {
			logger.Warn("Dropping malformed generated question.", "question", q.Question, "error", err)
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, llm.Fatal(fmt.Errorf("question generation returned no usable questions"))
	}

	want := len(schema.QuestionCategories) * schema.MinQuestionsPerCategory
	if len(questions) < want {
		logger.Warn("Generated fewer questions than requested.", "got", len(questions), "want", want)
	}
	logger.Info("Generated questions.", "count", len(questions), "attempts", outcome.Attempts)
	return map[string]any{KeyQuestions: questions}, nil
}

// qaPairsResponse is the wire shape of the batched answer call. The echoed
// question text is what the aligner matches on.
type qaPairsResponse struct {
	QAPairs []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"qa_pairs"`
}

// assembleFAQ answers every question in one batched remote call, then binds
// each returned answer back to its originating question by similarity. A
// question left unmatched is a diagnostic warning, never a failure: the
// page ships with whatever matched.
func (p *Pipeline) assembleFAQ(ctx context.Context, state *runstate.State) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	productA, err := readProduct(ctx, state, KeyProductA)
	if err != nil {
		return nil, err
	}
	qv, err := state.Read(ctx, KeyQuestions)
	if err != nil {
		return nil, err
	}
	questions, ok := qv.([]schema.Question)
	if !ok {
		return nil, fmt.Errorf("state key %q holds %T, expected question list", KeyQuestions, qv)
	}

	raw, outcome, err := p.generate(ctx, llm.Request{
		System:      prompts.SystemFAQAnswering,
		Prompt:      prompts.FAQAnswering(productA, questions),
		Temperature: 0.5,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Generated FAQ answers.", "attempts", outcome.Attempts)

	var resp qaPairsResponse
	if err := llm.DecodeJSON(raw, &resp); err != nil {
		return nil, err
	}
	candidates := make([]align.Candidate, len(resp.QAPairs))
	for i, pair := range resp.QAPairs {
		candidates[i] = align.Candidate{Question: pair.Question, Answer: pair.Answer}
	}

	result := align.Align(questions, candidates, p.matchThreshold)
	state.AddWarnings(result.Warnings...)
	for _, w := range result.Warnings {
		logger.Warn("Question left unanswered after alignment.", "question", w.Question.Question, "reason", w.Reason)
	}

	items := make([]schema.FAQItem, len(result.Matches))
	for i, m := range result.Matches {
		if m.Fallback {
			logger.Warn("Answer bound below confidence threshold.", "question", m.Question.Question, "score", m.Score)
		}
		items[i] = schema.FAQItem{
			Question: m.Question.Question,
			Answer:   m.Answer,
			Category: m.Question.Category,
		}
	}

	page := &schema.FAQPage{
		PageType:       "faq",
		ProductName:    productA.ProductName,
		FAQItems:       items,
		TotalQuestions: len(items),
	}
	logger.Info("Assembled FAQ page.", "items", len(items), "unmatched", len(result.Warnings))
	return map[string]any{KeyFAQPage: page}, nil
}

// assembleProduct renders the product page from pure content blocks.
func (p *Pipeline) assembleProduct(ctx context.Context, state *runstate.State) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	productA, err := readProduct(ctx, state, KeyProductA)
	if err != nil {
		return nil, err
	}

	page := &schema.ProductPage{
		PageType:    "product",
		ProductName: productA.ProductName,
		Sections: map[string]any{
			"overview": map[string]any{
				"product_name":  productA.ProductName,
				"concentration": productA.Concentration,
				"price":         productA.Price,
				"description":   fmt.Sprintf("Premium skincare solution for %s skin types.", joinList(productA.SkinType)),
			},
			"benefits":    content.Execute(content.Benefits, productA, nil).Content,
			"ingredients": content.Execute(content.Ingredients, productA, nil).Content,
			"usage":       content.Execute(content.Usage, productA, nil).Content,
			"safety":      content.Execute(content.Safety, productA, nil).Content,
			"skin_type":   content.Execute(content.SkinType, productA, nil).Content,
		},
	}

	logger.Info("Assembled product page.")
	return map[string]any{KeyProductPage: page}, nil
}

// assembleComparison renders the comparison page from the two product
// records plus a remote-generated recommendation.
func (p *Pipeline) assembleComparison(ctx context.Context, state *runstate.State) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	productA, err := readProduct(ctx, state, KeyProductA)
	if err != nil {
		return nil, err
	}
	productB, err := readProduct(ctx, state, KeyProductB)
	if err != nil {
		return nil, err
	}

	recommendation, outcome, err := p.generate(ctx, llm.Request{
		System:      prompts.SystemRecommendation,
		Prompt:      prompts.Recommendation(productA, productB),
		Temperature: 0.6,
		MaxTokens:   200,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Generated comparison recommendation.", "attempts", outcome.Attempts)

	page := &schema.ComparisonPage{
		PageType: "comparison",
		Products: map[string]schema.ComparisonEntry{
			"product_a": comparisonEntry(productA),
			"product_b": comparisonEntry(productB),
		},
		Comparisons: map[string]any{
			"ingredients": content.Execute(content.CompareIngredients, productA, productB).Content,
			"benefits":    content.Execute(content.CompareBenefits, productA, productB).Content,
			"price":       content.Execute(content.ComparePrice, productA, productB).Content,
			"skin_types": map[string]any{
				"product_a": productA.SkinType,
				"product_b": productB.SkinType,
				"analysis": fmt.Sprintf("%s suits %s skin, while %s suits %s skin.",
					productA.ProductName, joinList(productA.SkinType),
					productB.ProductName, joinList(productB.SkinType)),
			},
		},
		Recommendation: recommendation,
	}

	logger.Info("Assembled comparison page.", "product_a", productA.ProductName, "product_b", productB.ProductName)
	return map[string]any{KeyComparisonPage: page}, nil
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}

func comparisonEntry(p *schema.ProductData) schema.ComparisonEntry {
	return schema.ComparisonEntry{
		Name:        p.ProductName,
		Ingredients: p.KeyIngredients,
		Benefits:    p.Benefits,
		Price:       p.Price,
		SkinType:    p.SkinType,
	}
}
