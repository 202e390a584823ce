package remote

import (
	"fmt"

	"github.com/alan-mat/careerpath/internal/api"
	"github.com/alan-mat/careerpath/internal/guidance"
)

const (
	jobAppsPrompt        = `List 3 current or typical job applications/roles for the major or field: %s. Return ONLY a JSON object with a "results" array. Each item should have "title", "description", and "link" (use "#" for link).`
	relatedCareersPrompt = `List 3 related career paths for someone with a major in: %s. Return ONLY a JSON object with a "results" array. Each item should have "title" and "description".`
	suggestMajorPrompt   = `Suggest 3 suitable college majors for someone who wants to be a: %s. Return ONLY a JSON object with a "results" array. Each item should have "title" and "description".`
)

// Prompt builds the generation prompt for q.
func Prompt(q guidance.SearchQuery) string {
	switch q.Type {
	case guidance.CategoryJobApps:
		return fmt.Sprintf(jobAppsPrompt, q.Query)
	case guidance.CategoryRelatedCareers:
		return fmt.Sprintf(relatedCareersPrompt, q.Query)
	default:
		return fmt.Sprintf(suggestMajorPrompt, q.Query)
	}
}

// ResponseSchema describes the document expected back for category c,
// for providers that accept a response schema.
func ResponseSchema(c guidance.Category) *api.Schema {
	item := api.ObjectSchema("title", "description")
	if c == guidance.CategoryJobApps {
		item = api.ObjectSchema("title", "description", "link")
	}

	s := api.ObjectSchema()
	s.Properties["results"] = api.ArrayOf(item)
	s.Required = []string{"results"}
	return s
}
