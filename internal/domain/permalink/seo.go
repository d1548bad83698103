package permalink

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// Severity grades an SEO issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single finding of the SEO analysis
type Issue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Penalty  int      `json:"penalty"`
}

// Analysis is the SEO score of a URL
type Analysis struct {
	URL    string  `json:"url"`
	Length int     `json:"length"`
	Score  int     `json:"score"`
	Grade  string  `json:"grade"`
	Issues []Issue `json:"issues"`
}

const (
	GradeGood = "good"
	GradeOK   = "ok"
	GradePoor = "poor"

	maxSlugWords = 8
	maxDepth     = 3
)

var (
	uuidRe    = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	numericRe = regexp.MustCompile(`^[0-9]+$`)
)

// Analyze scores a path from 100 down. keyword is the optional focus keyword
// the slug should contain.
func Analyze(s Settings, rawURL, keyword string) Analysis {
	a := Analysis{URL: rawURL, Length: len(rawURL), Issues: []Issue{}}
	add := func(code string, sev Severity, penalty int, msg string) {
		a.Issues = append(a.Issues, Issue{Code: code, Severity: sev, Message: msg, Penalty: penalty})
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		add("URL_INVALID", SeverityError, 100, "URL cannot be parsed")
		return a.finish()
	}
	path := u.Path
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	slug := ""
	if len(segments) > 0 {
		slug = segments[len(segments)-1]
	}

	if u.RawQuery != "" {
		add("URL_NOT_PRETTY", SeverityError, 30, "Query string URLs are hard to read; enable pretty permalinks")
	}
	if s.MaxURLLength > 0 && len(rawURL) > s.MaxURLLength {
		add("URL_TOO_LONG", SeverityWarning, 15, "URL is longer than the configured maximum")
	}
	if strings.IndexFunc(path, unicode.IsUpper) >= 0 {
		add("URL_UPPERCASE", SeverityWarning, 10, "Use lowercase URLs to avoid duplicate content")
	}
	if strings.Contains(path, "_") {
		add("URL_UNDERSCORE", SeverityWarning, 10, "Use hyphens instead of underscores to separate words")
	}
	if strings.Contains(path, "--") {
		add("URL_DOUBLE_HYPHEN", SeverityInfo, 5, "Avoid repeated hyphens")
	}
	if strings.Contains(path, "%") || strings.IndexFunc(path, func(r rune) bool { return r > unicode.MaxASCII }) >= 0 {
		add("URL_SPECIAL_CHARS", SeverityWarning, 10, "URL contains encoded or non ASCII characters")
	}
	if len(segments) > maxDepth {
		add("URL_TOO_DEEP", SeverityInfo, 10, "URL has many path segments")
	}

	if slug != "" && u.RawQuery == "" {
		words := strings.Split(slug, "-")
		switch {
		case uuidRe.MatchString(slug) || numericRe.MatchString(slug):
			add("URL_NOT_DESCRIPTIVE", SeverityWarning, 15, "URL ends in an id; include descriptive words")
		case len(slug) < 3:
			add("SLUG_TOO_SHORT", SeverityInfo, 5, "Slug is very short")
		case len(words) > maxSlugWords:
			add("SLUG_TOO_MANY_WORDS", SeverityInfo, 5, "Slug has many words; keep it focused")
		}

		stops := 0
		for _, w := range words {
			if IsStopWord(w) {
				stops++
			}
		}
		if stops > 0 {
			penalty := 5 * stops
			if penalty > 15 {
				penalty = 15
			}
			add("URL_STOP_WORDS", SeverityInfo, penalty, "Slug contains stop words")
		}
	}

	if kw := strings.TrimSpace(strings.ToLower(keyword)); kw != "" {
		kwSlug := strings.Join(strings.Fields(kw), "-")
		if !strings.Contains(strings.ToLower(path), kwSlug) {
			add("KEYWORD_MISSING", SeverityWarning, 15, "Focus keyword does not appear in the URL")
		}
	}
	return a.finish()
}

func (a Analysis) finish() Analysis {
	score := 100
	for _, issue := range a.Issues {
		score -= issue.Penalty
	}
	if score < 0 {
		score = 0
	}
	a.Score = score
	switch {
	case score >= 80:
		a.Grade = GradeGood
	case score >= 50:
		a.Grade = GradeOK
	default:
		a.Grade = GradePoor
	}
	return a
}

// PreviewSample is the fixed subject used to preview structures
func PreviewSample() Subject {
	return Subject{
		ID:           sampleID,
		Type:         SubjectPost,
		Slug:         "sample-post",
		Date:         sampleDate,
		CategoryPath: []string{"news"},
		AuthorSlug:   "admin",
	}
}
