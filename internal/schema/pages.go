package schema

// QuestionCategories is the closed set of categories a generated question
// may carry, in presentation order.
var QuestionCategories = []string{
	"Informational",
	"Safety",
	"Usage",
	"Purchase",
	"Comparison",
}

// MinQuestionsPerCategory is the number of questions requested per category.
const MinQuestionsPerCategory = 3

// Question is one authored prompt for the FAQ page, immutable once generated.
type Question struct {
	Question string `json:"question" validate:"required"`
	Category string `json:"category" validate:"required,oneof=Informational Safety Usage Purchase Comparison"`
}

// Validate checks the question against its field constraints.
func (q *Question) Validate() error {
	return validate.Struct(q)
}

// FAQItem is a question bound to its generated answer.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// FAQPage is the persisted FAQ artifact layout.
type FAQPage struct {
	PageType       string    `json:"page_type"`
	ProductName    string    `json:"product_name"`
	FAQItems       []FAQItem `json:"faq_items"`
	TotalQuestions int       `json:"total_questions"`
}

// ProductPage is the persisted product artifact layout. Section values are
// the content blocks produced by internal/content.
type ProductPage struct {
	PageType    string         `json:"page_type"`
	ProductName string         `json:"product_name"`
	Sections    map[string]any `json:"sections"`
}

// ComparisonEntry is one side of the comparison page's products map.
type ComparisonEntry struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Benefits    []string `json:"benefits"`
	Price       string   `json:"price"`
	SkinType    []string `json:"skin_type"`
}

// ComparisonPage is the persisted comparison artifact layout.
type ComparisonPage struct {
	PageType       string                     `json:"page_type"`
	Products       map[string]ComparisonEntry `json:"products"`
	Comparisons    map[string]any             `json:"comparisons"`
	Recommendation string                     `json:"recommendation"`
}
