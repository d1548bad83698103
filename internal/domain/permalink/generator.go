package permalink

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubjectType is the kind of content a URL points to
type SubjectType string

const (
	SubjectPost     SubjectType = "post"
	SubjectPage     SubjectType = "page"
	SubjectCategory SubjectType = "category"
	SubjectTag      SubjectType = "tag"
)

// DefaultCategorySlug fills %category% for posts without a category
const DefaultCategorySlug = "uncategorized"

// DefaultAuthorSlug fills %author% when the author is unknown
const DefaultAuthorSlug = "admin"

// Subject is everything Generate needs to know about a piece of content
type Subject struct {
	ID   uuid.UUID
	Type SubjectType
	Slug string
	Date time.Time
	// CategoryPath holds the primary category slugs from root to leaf
	CategoryPath []string
	AuthorSlug   string
	// ParentSlugs holds page (or category) ancestors from root to parent
	ParentSlugs []string
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "from": {}, "how": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {}, "or": {},
	"that": {}, "the": {}, "this": {}, "to": {}, "was": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "who": {}, "why": {}, "will": {}, "with": {},
}

// IsStopWord reports whether word carries no search value
func IsStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}

// Generate builds the public path of a subject
func Generate(s Settings, subj Subject) string {
	if !s.EnablePrettyURLs {
		switch subj.Type {
		case SubjectPage:
			return "/?page_id=" + subj.ID.String()
		case SubjectCategory:
			return "/?cat=" + subj.Slug
		case SubjectTag:
			return "/?tag=" + subj.Slug
		default:
			return "/?p=" + subj.ID.String()
		}
	}

	var path string
	switch subj.Type {
	case SubjectPage:
		path = "/" + strings.Join(append(append([]string{}, subj.ParentSlugs...), subj.Slug), "/")
	case SubjectCategory:
		path = "/" + strings.Join(append(append([]string{s.CategoryBase}, subj.ParentSlugs...), subj.Slug), "/")
	case SubjectTag:
		path = "/" + s.TagBase + "/" + subj.Slug
	default:
		path = expandPost(s, subj)
	}
	return finalize(s, path)
}

func expandPost(s Settings, subj Subject) string {
	structure := s.EffectiveStructure()
	postname := subj.Slug
	if s.RemoveStopWords {
		postname = RemoveStopWords(postname)
	}

	render := func(name string) string {
		category := DefaultCategorySlug
		if len(subj.CategoryPath) > 0 {
			category = strings.Join(subj.CategoryPath, "/")
		}
		author := subj.AuthorSlug
		if author == "" {
			author = DefaultAuthorSlug
		}
		d := subj.Date
		return strings.NewReplacer(
			string(TokenYear), fmt.Sprintf("%04d", d.Year()),
			string(TokenMonthNum), fmt.Sprintf("%02d", int(d.Month())),
			string(TokenDay), fmt.Sprintf("%02d", d.Day()),
			string(TokenHour), fmt.Sprintf("%02d", d.Hour()),
			string(TokenMinute), fmt.Sprintf("%02d", d.Minute()),
			string(TokenSecond), fmt.Sprintf("%02d", d.Second()),
			string(TokenPostID), subj.ID.String(),
			string(TokenPostname), name,
			string(TokenCategory), category,
			string(TokenAuthor), author,
		).Replace(structure)
	}

	path := render(postname)
	if s.MaxURLLength > 0 && strings.Contains(structure, string(TokenPostname)) {
		if overflow := len(finalize(s, path)) - s.MaxURLLength; overflow > 0 {
			path = render(truncateSlug(postname, len(postname)-overflow))
		}
	}
	return path
}

// RemoveStopWords drops stop words from a hyphenated slug. The slug is kept
// unchanged when nothing but stop words would remain.
func RemoveStopWords(slug string) string {
	parts := strings.Split(slug, "-")
	kept := parts[:0:0]
	for _, p := range parts {
		if !IsStopWord(p) {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return slug
	}
	return strings.Join(kept, "-")
}

// truncateSlug cuts a slug to at most max bytes at a hyphen boundary,
// always keeping the first word
func truncateSlug(slug string, max int) string {
	if len(slug) <= max {
		return slug
	}
	parts := strings.Split(slug, "-")
	out := parts[0]
	for _, p := range parts[1:] {
		if len(out)+1+len(p) > max {
			break
		}
		out += "-" + p
	}
	return out
}

func finalize(s Settings, path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if s.ForceLowercase {
		path = strings.ToLower(path)
	}
	if path == "/" {
		return path
	}

	last := path[strings.LastIndex(path, "/")+1:]
	switch {
	case s.TrailingSlash && !strings.HasSuffix(path, "/") && !strings.Contains(last, "."):
		path += "/"
	case !s.TrailingSlash:
		path = strings.TrimRight(path, "/")
	}
	return path
}
