package pipeline

// Run-state keys. Each is written by exactly one node, except KeyRawProduct
// which the caller seeds before the run starts.
const (
	KeyRawProduct     = "raw_product"
	KeyProductA       = "product_a"
	KeyProductB       = "product_b"
	KeyQuestions      = "questions"
	KeyFAQPage        = "faq_page"
	KeyProductPage    = "product_page"
	KeyComparisonPage = "comparison_page"
)

// Node IDs.
const (
	NodeParseProduct       = "parse_product"
	NodeGenerateCompetitor = "generate_competitor"
	NodeGenerateQuestions  = "generate_questions"
	NodeAssembleFAQ        = "assemble_faq"
	NodeAssembleProduct    = "assemble_product"
	NodeAssembleComparison = "assemble_comparison"
)
