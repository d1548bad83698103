package permalink

import (
	"time"

	"github.com/google/uuid"
)

var (
	sampleDate = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)
	sampleID   = uuid.MustParse("3f2504e0-4f89-41d3-9a0c-0305e82c3301")
)

// PreviewResult shows what a structure produces for sample content
type PreviewResult struct {
	Structure  string           `json:"structure"`
	Post       string           `json:"post"`
	Page       string           `json:"page"`
	Category   string           `json:"category"`
	Tag        string           `json:"tag"`
	Validation ValidationResult `json:"validation"`
	SEO        *Analysis        `json:"seo,omitempty"`
}

// Preview renders sample URLs for structure using the remaining settings.
// An empty structure previews plain URLs.
func Preview(s Settings, structure string) PreviewResult {
	s.CustomStructure = ""
	s.Structure = structure
	s.EnablePrettyURLs = structure != ""

	result := PreviewResult{Structure: structure, Validation: s.Validate()}
	if !result.Validation.Valid {
		return result
	}

	post := PreviewSample()
	result.Post = Generate(s, post)
	result.Page = Generate(s, Subject{ID: sampleID, Type: SubjectPage, Slug: "about", ParentSlugs: []string{"company"}})
	result.Category = Generate(s, Subject{Type: SubjectCategory, Slug: "news"})
	result.Tag = Generate(s, Subject{Type: SubjectTag, Slug: "golang"})

	if s.EnableSEOWarnings {
		analysis := Analyze(s, result.Post, "")
		result.SEO = &analysis
	}
	return result
}
