// Package heuristic resolves guidance searches from a fixed keyword table.
package heuristic

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alan-mat/careerpath/internal/guidance"
)

// PlaceholderLink is attached to synthesized job applications.
const PlaceholderLink = "#"

// Rule matches when any of its keywords is a substring of the lower-cased query.
type Rule struct {
	Keywords    []string
	Suggestions []guidance.Suggestion
}

func (r Rule) matches(query string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(query, k) {
			return true
		}
	}
	return false
}

// Strategy resolves a single category. Rules are tried in order and the
// first match wins; Default answers when nothing matches.
type Strategy struct {
	Rules   []Rule
	Default func(query string) []guidance.Suggestion
}

func (s Strategy) resolve(query string) []guidance.Suggestion {
	lower := strings.ToLower(query)
	for _, r := range s.Rules {
		if r.matches(lower) {
			return slices.Clone(r.Suggestions)
		}
	}
	if s.Default == nil {
		return []guidance.Suggestion{}
	}
	return s.Default(query)
}

// Resolver is safe for concurrent use; its table is never modified after construction.
type Resolver struct {
	strategies map[guidance.Category]Strategy
}

// New returns a Resolver using [DefaultStrategies], with any given
// strategies replacing the default for their category.
func New(overrides map[guidance.Category]Strategy) *Resolver {
	strategies := DefaultStrategies()
	for c, s := range overrides {
		strategies[c] = s
	}
	return &Resolver{strategies: strategies}
}

// Resolve always returns a response, empty only for an unknown category.
func (r *Resolver) Resolve(q guidance.SearchQuery) guidance.SuggestionResponse {
	s, ok := r.strategies[q.Type]
	if !ok {
		return guidance.SuggestionResponse{Results: []guidance.Suggestion{}}
	}
	return guidance.SuggestionResponse{Results: s.resolve(q.Query)}
}

// DefaultStrategies returns a fresh copy of the built-in keyword table.
func DefaultStrategies() map[guidance.Category]Strategy {
	return map[guidance.Category]Strategy{
		guidance.CategoryJobApps: {
			Default: jobApplications,
		},
		guidance.CategoryRelatedCareers: {
			Rules: []Rule{
				{
					Keywords: []string{"computer", "software"},
					Suggestions: []guidance.Suggestion{
						{Title: "Software Engineer", Description: "Design and build software applications."},
						{Title: "Data Scientist", Description: "Analyze complex data to help make decisions."},
						{Title: "Product Manager", Description: "Oversee the development of products."},
					},
				},
				{
					Keywords: []string{"art", "design"},
					Suggestions: []guidance.Suggestion{
						{Title: "UX Designer", Description: "Design user experiences for products."},
						{Title: "Graphic Designer", Description: "Create visual concepts to communicate ideas."},
						{Title: "Art Director", Description: "Manage design staff and creative vision."},
					},
				},
			},
			Default: relatedCareers,
		},
		guidance.CategorySuggestMajor: {
			Rules: []Rule{
				{
					Keywords: []string{"developer", "engineer"},
					Suggestions: []guidance.Suggestion{
						{Title: "Computer Science", Description: "Study of computation, automation, and information."},
						{Title: "Software Engineering", Description: "Systematic application of engineering to software."},
						{Title: "Mathematics", Description: "Abstract science of number, quantity, and space."},
					},
				},
				{
					Keywords: []string{"doctor", "nurse"},
					Suggestions: []guidance.Suggestion{
						{Title: "Biology", Description: "Study of life and living organisms."},
						{Title: "Chemistry", Description: "Scientific study of the properties and behavior of matter."},
						{Title: "Nursing", Description: "Profession focused on the care of individuals."},
					},
				},
			},
			Default: func(string) []guidance.Suggestion {
				return []guidance.Suggestion{
					{Title: "Business Administration", Description: "Versatile degree for many corporate roles."},
					{Title: "Communications", Description: "Focus on how messages are created and interpreted."},
					{Title: "Liberal Arts", Description: "Broad education in arts and sciences."},
				}
			},
		},
	}
}

func jobApplications(query string) []guidance.Suggestion {
	return []guidance.Suggestion{
		{
			Title:       fmt.Sprintf("Junior %s Role", query),
			Description: "Entry level position at TechCorp. Great for recent graduates.",
			Link:        PlaceholderLink,
		},
		{
			Title:       fmt.Sprintf("Senior %s Specialist", query),
			Description: "Leading industry player seeks experienced professional.",
			Link:        PlaceholderLink,
		},
		{
			Title:       fmt.Sprintf("%s Intern", query),
			Description: "Summer internship program with mentorship opportunities.",
			Link:        PlaceholderLink,
		},
	}
}

func relatedCareers(query string) []guidance.Suggestion {
	return []guidance.Suggestion{
		{Title: "Consultant", Description: fmt.Sprintf("Professional consultant in the field of %s.", query)},
		{Title: "Researcher", Description: fmt.Sprintf("Academic or industrial research in %s.", query)},
		{Title: "Teacher/Professor", Description: fmt.Sprintf("Educating others about %s.", query)},
	}
}
