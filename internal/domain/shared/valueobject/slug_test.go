package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Slug
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation collapses", "Go:  Tips & Tricks!!", "go-tips-tricks"},
		{"accents folded", "Crème brûlée à la carte", "creme-brulee-a-la-carte"},
		{"edges trimmed", "  --Launch day--  ", "launch-day"},
		{"digits kept", "Top 10 Tools 2024", "top-10-tools-2024"},
		{"nothing usable", "!!!", ""},
		{"non latin dropped", "日本 guide", "guide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_TruncatesLongInput(t *testing.T) {
	s := Slugify(strings.Repeat("word ", 100))
	assert.LessOrEqual(t, len(s), MaxSlugLength)
	assert.False(t, strings.HasSuffix(string(s), "-"))
}

func TestParseSlug(t *testing.T) {
	s, err := ParseSlug("my-first-post")
	require.NoError(t, err)
	assert.Equal(t, Slug("my-first-post"), s)

	_, err = ParseSlug("")
	assert.ErrorIs(t, err, ErrEmptySlug)

	_, err = ParseSlug("Bad Slug")
	assert.ErrorIs(t, err, ErrInvalidSlug)

	_, err = ParseSlug("double--dash")
	assert.ErrorIs(t, err, ErrInvalidSlug)

	_, err = ParseSlug(strings.Repeat("a", MaxSlugLength+1))
	assert.ErrorIs(t, err, ErrSlugTooLong)
}

func TestSlug_WithSuffix(t *testing.T) {
	assert.Equal(t, Slug("hello-world-2"), Slug("hello-world").WithSuffix(2))

	long := Slug(strings.Repeat("a", MaxSlugLength))
	assert.LessOrEqual(t, len(long.WithSuffix(12)), MaxSlugLength)
}
