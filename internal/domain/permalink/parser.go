package permalink

import (
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// MatchKind tells what a parsed path refers to
type MatchKind string

const (
	MatchPost     MatchKind = "post"
	MatchPage     MatchKind = "page"
	MatchCategory MatchKind = "category"
	MatchTag      MatchKind = "tag"
	MatchPlain    MatchKind = "plain"
)

// Match is the result of parsing a request path
type Match struct {
	Kind MatchKind `json:"kind"`
	// Slug is the postname, page slug or term slug
	Slug   string            `json:"slug,omitempty"`
	PostID string            `json:"postId,omitempty"`
	Values map[string]string `json:"values,omitempty"`
	// Segments are the cleaned path segments, for page hierarchy lookups
	Segments []string `json:"segments,omitempty"`
}

var compiled sync.Map // structure string -> *regexp.Regexp

// Parse resolves a request path (optionally with query string) against the
// settings. It reports false when the path cannot refer to any content.
func Parse(s Settings, rawPath string) (Match, bool) {
	u, err := url.Parse(rawPath)
	if err != nil {
		return Match{}, false
	}

	q := u.Query()
	if slug := q.Get("cat"); slug != "" {
		return Match{Kind: MatchCategory, Slug: slug, Segments: []string{slug}}, true
	}
	if slug := q.Get("tag"); slug != "" {
		return Match{Kind: MatchTag, Slug: slug, Segments: []string{slug}}, true
	}
	if q.Get("p") != "" || q.Get("page_id") != "" {
		m := Match{Kind: MatchPlain, PostID: q.Get("p")}
		if id := q.Get("page_id"); id != "" {
			m.PostID = id
			m.Kind = MatchPage
		}
		return m, true
	}

	path := "/" + strings.Trim(u.Path, "/")
	if path == "/" {
		return Match{}, false
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")

	if len(segments) >= 2 && segments[0] == s.CategoryBase {
		return Match{Kind: MatchCategory, Slug: segments[len(segments)-1], Segments: segments[1:]}, true
	}
	if len(segments) == 2 && segments[0] == s.TagBase {
		return Match{Kind: MatchTag, Slug: segments[1], Segments: segments[1:]}, true
	}

	if s.EnablePrettyURLs {
		if m, ok := matchStructure(s.EffectiveStructure(), path); ok {
			m.Segments = segments
			return m, true
		}
	}

	return Match{Kind: MatchPage, Slug: segments[len(segments)-1], Segments: segments}, true
}

func matchStructure(structure, path string) (Match, bool) {
	var re *regexp.Regexp
	if cached, ok := compiled.Load(structure); ok {
		re = cached.(*regexp.Regexp)
	} else {
		c, err := compile(structure)
		if err != nil {
			return Match{}, false
		}
		compiled.Store(structure, c)
		re = c
	}

	sub := re.FindStringSubmatch(path)
	if sub == nil {
		return Match{}, false
	}
	values := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i > 0 && name != "" {
			values[name] = sub[i]
		}
	}
	return Match{
		Kind:   MatchPost,
		Slug:   values[TokenPostname.name()],
		PostID: values[TokenPostID.name()],
		Values: values,
	}, true
}
