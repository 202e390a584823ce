// Package guidance holds the search domain types, request validation and the
// service that resolves a query into suggestions.
package guidance

// Category is one of the fixed search types.
type Category string

const (
	CategoryJobApps        Category = "job_apps"
	CategoryRelatedCareers Category = "related_careers"
	CategorySuggestMajor   Category = "suggest_major"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryJobApps,
	CategoryRelatedCareers,
	CategorySuggestMajor,
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of [Categories].
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// SearchQuery is a validated search request.
type SearchQuery struct {
	Type  Category `json:"type"`
	Query string   `json:"query"`
}

// Suggestion is a single result item. Link is only set for job applications.
type Suggestion struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Link        string `json:"link,omitempty"`
}

// SuggestionResponse is the payload returned to callers.
type SuggestionResponse struct {
	Results []Suggestion `json:"results" validate:"required,min=1,dive"`
}

// Source names the resolver that produced a response.
type Source string

const (
	SourceRemote    Source = "remote"
	SourceHeuristic Source = "heuristic"
)
