package uitext

// ElementType is the structural kind of a matched node, as opposed to its
// inferred purpose.
type ElementType string

const (
	TypeLabel             ElementType = "label"
	TypePlaceholder       ElementType = "placeholder"
	TypeHelpText          ElementType = "help_text"
	TypeErrorMessage      ElementType = "error_message"
	TypeInstruction       ElementType = "instruction"
	TypeButton            ElementType = "button"
	TypeHeading           ElementType = "heading"
	TypeDescription       ElementType = "description"
	TypeValidationMessage ElementType = "validation_message"
)

// Category is the inferred purpose bucket of a UI text element. The set is
// closed; classification is a total function and never yields an empty
// category.
type Category string

const (
	CategoryInput       Category = "input"
	CategoryNavigation  Category = "navigation"
	CategoryAction      Category = "action"
	CategoryValidation  Category = "validation"
	CategoryInformation Category = "information"
	CategoryFeedback    Category = "feedback"
	CategoryHelp        Category = "help"
	CategoryGrouping    Category = "grouping"
	CategoryUnknown     Category = "unknown"
)

// Language is the page-level language verdict.
type Language string

const (
	LangSwedish Language = "swedish"
	LangEnglish Language = "english"
	LangMixed   Language = "mixed"
	LangUnknown Language = "unknown"
)

// Rect is a bounding rectangle snapshot captured at analysis time. For
// parsed (non-live) documents all fields are zero.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Functionality describes what a piece of UI text is for.
type Functionality struct {
	Category      Category `json:"category"`
	Action        string   `json:"action,omitempty"` // set only for action category
	Purpose       string   `json:"purpose"`
	Keywords      []string `json:"keywords"`
	RelatedFields []string `json:"related_fields,omitempty"`
}

// UIElement is the per-node analysis record. The source element is held as a
// read-only view; the analyzer never mutates the tree it was given.
type UIElement struct {
	Source        Element           `json:"-"`
	Text          string            `json:"text"`
	ElementType   ElementType       `json:"element_type"`
	Functionality Functionality     `json:"functionality"`
	Confidence    float64           `json:"confidence"` // additive heuristic in [0,1], not a probability
	Position      Rect              `json:"position"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// Summary aggregates page-level statistics.
type Summary struct {
	TotalElements  int              `json:"total_elements"`
	CategoryCounts map[Category]int `json:"category_counts"`
	Confidence     float64          `json:"confidence"` // mean over elements
	Language       Language         `json:"language"`
}

// AnalysisResult is the page-level aggregate. Elements appear in DOM query
// order, which is per-selector and therefore not document order across
// selector clauses.
type AnalysisResult struct {
	Elements []*UIElement `json:"elements"`
	Summary  Summary      `json:"summary"`
	Insights []string     `json:"insights"`
}
