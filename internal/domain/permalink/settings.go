// Package permalink turns content into URLs and back.
//
// A permalink structure is a path template such as "/%year%/%monthnum%/%postname%/".
// Generate substitutes tokens for a Subject, Parse matches an incoming path against
// the template, RedirectRules diffs two configurations, and Analyze scores a URL.
package permalink

import (
	"fmt"
	"regexp"
	"strings"
)

// Settings is the per-tenant permalink configuration stored in the "permalinks"
// settings section. JSON names follow the admin UI.
type Settings struct {
	Structure         string `json:"structure"`
	CategoryBase      string `json:"categoryBase"`
	TagBase           string `json:"tagBase"`
	CustomStructure   string `json:"customStructure"`
	EnablePrettyURLs  bool   `json:"enablePrettyUrls"`
	RedirectOldURLs   bool   `json:"redirectOldUrls"`
	TrailingSlash     bool   `json:"trailingSlash"`
	ForceLowercase    bool   `json:"forceLowercase"`
	RemoveStopWords   bool   `json:"removeStopWords"`
	MaxURLLength      int    `json:"maxUrlLength"`
	AutoFlushRules    bool   `json:"autoFlushRules"`
	EnableSEOWarnings bool   `json:"enableSeoWarnings"`
}

const (
	minURLLength = 20
	maxURLLength = 2048
)

var basePattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// DefaultSettings returns the configuration of a fresh tenant
func DefaultSettings() Settings {
	return Settings{
		Structure:         "/%postname%/",
		CategoryBase:      "category",
		TagBase:           "tag",
		CustomStructure:   "",
		EnablePrettyURLs:  true,
		RedirectOldURLs:   true,
		TrailingSlash:     true,
		ForceLowercase:    false,
		RemoveStopWords:   false,
		MaxURLLength:      75,
		AutoFlushRules:    true,
		EnableSEOWarnings: true,
	}
}

// EffectiveStructure is the custom structure when set, otherwise the selected one
func (s Settings) EffectiveStructure() string {
	if strings.TrimSpace(s.CustomStructure) != "" {
		return strings.TrimSpace(s.CustomStructure)
	}
	return s.Structure
}

// Validate checks the whole configuration. Structure warnings are returned
// separately and never make the settings invalid.
func (s Settings) Validate() ValidationResult {
	result := ValidationResult{Valid: true}
	if s.EnablePrettyURLs {
		result = ValidateStructure(s.EffectiveStructure())
	}

	base := func(field, value string) {
		if !basePattern.MatchString(value) {
			result.addError(fmt.Sprintf("%s must contain only lowercase letters, digits, hyphens or underscores", field))
		}
	}
	base("categoryBase", s.CategoryBase)
	base("tagBase", s.TagBase)
	if s.CategoryBase != "" && s.CategoryBase == s.TagBase {
		result.addError("categoryBase and tagBase must differ")
	}
	if s.MaxURLLength < minURLLength || s.MaxURLLength > maxURLLength {
		result.addError(fmt.Sprintf("maxUrlLength must be between %d and %d", minURLLength, maxURLLength))
	}
	if !s.EnableSEOWarnings {
		result.Warnings = nil
	}
	return result
}

// StructureChanged reports whether two configurations produce different URLs
func (s Settings) StructureChanged(other Settings) bool {
	return s.EffectiveStructure() != other.EffectiveStructure() ||
		s.CategoryBase != other.CategoryBase ||
		s.TagBase != other.TagBase ||
		s.EnablePrettyURLs != other.EnablePrettyURLs ||
		s.TrailingSlash != other.TrailingSlash ||
		s.ForceLowercase != other.ForceLowercase ||
		s.RemoveStopWords != other.RemoveStopWords ||
		s.MaxURLLength != other.MaxURLLength
}
