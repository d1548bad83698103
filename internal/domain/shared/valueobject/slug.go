package valueobject

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength bounds generated and supplied slugs
const MaxSlugLength = 200

var (
	ErrEmptySlug   = errors.New("slug cannot be empty")
	ErrInvalidSlug = errors.New("slug may only contain lowercase letters, digits and single hyphens")
	ErrSlugTooLong = errors.New("slug exceeds maximum length")

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slug is the URL-safe identifier of a post, page, category or tag
type Slug string

// ParseSlug validates a caller supplied slug
func ParseSlug(value string) (Slug, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrEmptySlug
	}
	if len(value) > MaxSlugLength {
		return "", ErrSlugTooLong
	}
	if !slugPattern.MatchString(value) {
		return "", ErrInvalidSlug
	}
	return Slug(value), nil
}

// Slugify derives a slug from free text. Accents are folded to their base
// letter, anything that is not a letter or digit becomes a hyphen.
// It returns "" when nothing usable remains.
func Slugify(text string) Slug {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if len(out) > MaxSlugLength {
		out = strings.TrimRight(out[:MaxSlugLength], "-")
	}
	return Slug(out)
}

// WithSuffix returns the slug with a numeric suffix, used to resolve collisions
// between generated slugs ("hello-world" -> "hello-world-2").
func (s Slug) WithSuffix(n int) Slug {
	suffix := "-" + strconv.Itoa(n)
	base := string(s)
	if len(base)+len(suffix) > MaxSlugLength {
		base = strings.TrimRight(base[:MaxSlugLength-len(suffix)], "-")
	}
	return Slug(base + suffix)
}

func (s Slug) String() string { return string(s) }

// IsZero reports whether the slug is empty
func (s Slug) IsZero() bool { return s == "" }
