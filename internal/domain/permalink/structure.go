package permalink

import (
	"fmt"
	"regexp"
	"strings"
)

// Token is a placeholder in a permalink structure
type Token string

const (
	TokenYear     Token = "%year%"
	TokenMonthNum Token = "%monthnum%"
	TokenDay      Token = "%day%"
	TokenHour     Token = "%hour%"
	TokenMinute   Token = "%minute%"
	TokenSecond   Token = "%second%"
	TokenPostID   Token = "%post_id%"
	TokenPostname Token = "%postname%"
	TokenCategory Token = "%category%"
	TokenAuthor   Token = "%author%"
)

// MaxStructureLength bounds a structure template
const MaxStructureLength = 255

// tokenPatterns are the regular expressions a token matches when parsing
var tokenPatterns = map[Token]string{
	TokenYear:     `[0-9]{4}`,
	TokenMonthNum: `[0-9]{1,2}`,
	TokenDay:      `[0-9]{1,2}`,
	TokenHour:     `[0-9]{1,2}`,
	TokenMinute:   `[0-9]{1,2}`,
	TokenSecond:   `[0-9]{1,2}`,
	TokenPostID:   `[0-9a-fA-F-]{36}`,
	TokenPostname: `[^/]+`,
	TokenCategory: `[^/]+(?:/[^/]+)*?`,
	TokenAuthor:   `[^/]+`,
}

var (
	tokenRe        = regexp.MustCompile(`%[a-z_]+%`)
	literalCharsRe = regexp.MustCompile(`^[A-Za-z0-9/._~-]*$`)
)

// Tokens returns every supported token in display order
func Tokens() []Token {
	return []Token{TokenYear, TokenMonthNum, TokenDay, TokenHour, TokenMinute, TokenSecond, TokenPostID, TokenPostname, TokenCategory, TokenAuthor}
}

// name is the token without percent signs, used as a regexp group name
func (t Token) name() string {
	return strings.Trim(string(t), "%")
}

// Preset is a named structure offered by the settings screen
type Preset struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Structure string `json:"structure"`
}

// Presets returns the common structures
func Presets() []Preset {
	return []Preset{
		{Key: "plain", Label: "Plain", Structure: ""},
		{Key: "day_name", Label: "Day and name", Structure: "/%year%/%monthnum%/%day%/%postname%/"},
		{Key: "month_name", Label: "Month and name", Structure: "/%year%/%monthnum%/%postname%/"},
		{Key: "numeric", Label: "Numeric", Structure: "/archives/%post_id%"},
		{Key: "post_name", Label: "Post name", Structure: "/%postname%/"},
		{Key: "category", Label: "Category and name", Structure: "/%category%/%postname%/"},
	}
}

// ValidationResult collects blocking errors and advisory warnings
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *ValidationResult) addError(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

func (r *ValidationResult) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// ValidateStructure checks a structure template
func ValidateStructure(structure string) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}}
	structure = strings.TrimSpace(structure)

	if structure == "" {
		result.addError("structure cannot be empty")
		return result
	}
	if !strings.HasPrefix(structure, "/") {
		result.addError("structure must start with /")
	}
	if len(structure) > MaxStructureLength {
		result.addError(fmt.Sprintf("structure cannot exceed %d characters", MaxStructureLength))
	}
	if strings.Contains(structure, "//") {
		result.addError("structure cannot contain empty path segments")
	}

	found := tokenRe.FindAllString(structure, -1)
	seen := make(map[Token]bool, len(found))
	for _, raw := range found {
		tok := Token(raw)
		if _, ok := tokenPatterns[tok]; !ok {
			result.addError(fmt.Sprintf("unknown token %s", raw))
			continue
		}
		if seen[tok] {
			result.addError(fmt.Sprintf("token %s may appear only once", raw))
		}
		seen[tok] = true
	}

	if !literalCharsRe.MatchString(tokenRe.ReplaceAllString(structure, "")) {
		result.addError("structure contains characters that are not allowed in URLs")
	}
	if strings.Count(structure, "%")%2 != 0 {
		result.addError("structure contains an unterminated token")
	}
	if !seen[TokenPostname] && !seen[TokenPostID] {
		result.addError("structure must contain %postname% or %post_id% to identify posts")
	}

	if !result.Valid {
		return result
	}

	// advisory checks
	if seen[TokenPostID] && !seen[TokenPostname] {
		result.addWarning("URLs built only from the post id are not descriptive; add %postname%")
	}
	if seen[TokenDay] || seen[TokenHour] || seen[TokenMinute] || seen[TokenSecond] {
		result.addWarning("time based segments make URLs long and look outdated quickly")
	}
	if seen[TokenCategory] {
		result.addWarning("changing a post's category will change its URL")
	}
	if depth := len(strings.Split(strings.Trim(structure, "/"), "/")); depth > 3 {
		result.addWarning(fmt.Sprintf("structure is %d segments deep; shallower URLs rank better", depth))
	}
	return result
}

// compile builds the parsing regexp for a structure
func compile(structure string) (*regexp.Regexp, error) {
	trimmed := strings.TrimRight(structure, "/")
	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, loc := range tokenRe.FindAllStringIndex(trimmed, -1) {
		b.WriteString(regexp.QuoteMeta(trimmed[last:loc[0]]))
		tok := Token(trimmed[loc[0]:loc[1]])
		pattern, ok := tokenPatterns[tok]
		if !ok {
			return nil, fmt.Errorf("unknown token %s", tok)
		}
		fmt.Fprintf(&b, "(?P<%s>%s)", tok.name(), pattern)
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(trimmed[last:]))
	b.WriteString("/?$")
	return regexp.Compile(b.String())
}
