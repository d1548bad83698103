// Package render turns stored post bodies into safe HTML and plain text excerpts.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// DefaultExcerptWords is used when no excerpt length is configured
const DefaultExcerptWords = 55

const excerptMore = "..."

// Renderer converts post content. It is safe for concurrent use.
type Renderer struct {
	markdown     goldmark.Markdown
	policy       *bluemonday.Policy
	strip        *bluemonday.Policy
	excerptWords int
}

// New creates a renderer producing excerpts of excerptWords words
func New(excerptWords int) *Renderer {
	if excerptWords <= 0 {
		excerptWords = DefaultExcerptWords
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")

	return &Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote, extension.Typographer),
			goldmark.WithRendererOptions(gmhtml.WithXHTML()),
		),
		policy:       policy,
		strip:        bluemonday.StrictPolicy(),
		excerptWords: excerptWords,
	}
}

// HTML returns the sanitized HTML of a body in the given format
func (r *Renderer) HTML(format content.ContentFormat, body string) (string, error) {
	switch format {
	case content.FormatMarkdown:
		var buf bytes.Buffer
		if err := r.markdown.Convert([]byte(body), &buf); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		return string(r.policy.SanitizeBytes(buf.Bytes())), nil
	case content.FormatHTML:
		return r.policy.Sanitize(body), nil
	default:
		return "", fmt.Errorf("unsupported content format %q", format)
	}
}

// PlainText strips all markup and collapses whitespace
func (r *Renderer) PlainText(format content.ContentFormat, body string) string {
	rendered, err := r.HTML(format, body)
	if err != nil {
		rendered = body
	}
	// Block boundaries become spaces before tags are dropped
	rendered = strings.NewReplacer("</p>", "</p> ", "<br/>", " ", "<br>", " ", "</li>", "</li> ",
		"</h1>", "</h1> ", "</h2>", "</h2> ", "</h3>", "</h3> ").Replace(rendered)
	text := html.UnescapeString(r.strip.Sanitize(rendered))
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt returns the first words of the body as plain text, with an ellipsis
// when the body was cut
func (r *Renderer) Excerpt(format content.ContentFormat, body string) string {
	return truncateWords(r.PlainText(format, body), r.excerptWords)
}

// ExcerptWords returns the configured excerpt length
func (r *Renderer) ExcerptWords() int {
	return r.excerptWords
}

func truncateWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	out := strings.Join(words[:n], " ")
	return strings.TrimRight(out, ",;:.-") + excerptMore
}
