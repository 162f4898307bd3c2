package analyzer

import (
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World Example", "hello-world-example"},
		{"punctuation stripped", "What's New? (2024 Edition!)", "whats-new-2024-edition"},
		{"thai preserved", "ผ้าม่าน สวยงาม", "ผ้าม่าน-สวยงาม"},
		{"runs collapse", "too   many --- separators", "too-many-separators"},
		{"trimmed", "  - edge case -  ", "edge-case"},
		{"emoji dropped", "ราคาผ้าม่าน 2024 🎉", "ราคาผ้าม่าน-2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.title, cfg))
		})
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	titles := []string{
		"Hello World Example",
		"ผ้าม่านกันแสง UV สำหรับห้องนอน",
		strings.Repeat("very long title segment ", 10),
	}
	for _, title := range titles {
		slug := GenerateSlug(title, cfg)
		assert.Equal(t, slug, GenerateSlug(slug, cfg))
	}
}

func TestGenerateSlugTruncation(t *testing.T) {
	cfg := DefaultConfig()

	slug := GenerateSlug(strings.Repeat("curtain style guide ", 10), cfg)
	assert.LessOrEqual(t, utf8.RuneCountInString(slug), cfg.SlugMaxLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
	// The cut lands on a hyphen boundary, not mid-word.
	assert.True(t, IsSlugOptimal(slug, cfg))

	// A single unbroken run has no boundary to prefer and is cut hard.
	hard := GenerateSlug(strings.Repeat("x", 100), cfg)
	assert.Equal(t, cfg.SlugMaxLength, utf8.RuneCountInString(hard))
}

func TestIsSlugOptimal(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, IsSlugOptimal("curtain-buying-guide", cfg))
	assert.True(t, IsSlugOptimal("ผ้าม่าน-2024", cfg))

	assert.False(t, IsSlugOptimal("", cfg))
	assert.False(t, IsSlugOptimal("Upper-Case", cfg))
	assert.False(t, IsSlugOptimal("double--hyphen", cfg))
	assert.False(t, IsSlugOptimal("-leading", cfg))
	assert.False(t, IsSlugOptimal("trailing-", cfg))
	assert.False(t, IsSlugOptimal("has space", cfg))
	assert.False(t, IsSlugOptimal(strings.Repeat("a", cfg.SlugMaxLength+1), cfg))
}

func TestGeneratedSlugIsOptimal(t *testing.T) {
	cfg := DefaultConfig()
	for _, title := range []string{
		"A Perfectly Normal Title",
		"ม่านม้วนมอเตอร์ไฟฟ้า ราคาพิเศษ!",
		"123 mixed ภาษา title",
	} {
		slug := GenerateSlug(title, cfg)
		require.NotEmpty(t, slug)
		assert.True(t, IsSlugOptimal(slug, cfg), "slug %q from title %q", slug, title)
	}
}

func TestAvailableSlug(t *testing.T) {
	cfg := DefaultConfig()

	// Free candidate comes back untouched: AvailableSlug of a fresh
	// GenerateSlug equals the generated slug.
	base := GenerateSlug("Curtain Buying Guide", cfg)
	assert.Equal(t, base, AvailableSlug(base, map[string]bool{}, cfg))

	used := map[string]bool{base: true}
	assert.Equal(t, base+"-1", AvailableSlug(base, used, cfg))

	used[base+"-1"] = true
	assert.Equal(t, base+"-2", AvailableSlug(base, used, cfg))

	// Exhaust the numeric suffixes; the fallback still derives from
	// the candidate.
	for i := 1; i <= maxSlugSuffixAttempts; i++ {
		used[base+"-"+strconv.Itoa(i)] = true
	}
	fallback := AvailableSlug(base, used, cfg)
	assert.True(t, strings.HasPrefix(fallback, base+"-"))
	assert.NotEqual(t, base, fallback)
}

func TestValidateMetaField(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		value   string
		status  string
		optimal bool
	}{
		{"empty", "", MetaStatusEmpty, false},
		{"whitespace is empty", "   ", MetaStatusEmpty, false},
		{"too short", strings.Repeat("a", 10), MetaStatusTooShort, false},
		{"optimal lower bound", strings.Repeat("a", 30), MetaStatusOptimal, true},
		{"optimal upper bound", strings.Repeat("a", 60), MetaStatusOptimal, true},
		{"acceptable but long", strings.Repeat("a", 65), MetaStatusLong, false},
		{"will be truncated", strings.Repeat("a", 80), MetaStatusTruncated, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateMetaField(tt.value, cfg.TitleMinLength, cfg.TitleOptimalLength, cfg.TitleMaxLength)
			assert.Equal(t, tt.status, v.Status)
			assert.Equal(t, tt.optimal, v.Optimal)
		})
	}
}

func TestValidateMetaFieldCountsRunes(t *testing.T) {
	cfg := DefaultConfig()
	// 35 Thai characters are 35 runes, far more bytes.
	v := ValidateMetaField(strings.Repeat("ม", 35), cfg.TitleMinLength, cfg.TitleOptimalLength, cfg.TitleMaxLength)
	assert.Equal(t, 35, v.Length)
	assert.True(t, v.Optimal)
}

func TestGenerateMetaTitle(t *testing.T) {
	cfg := DefaultConfig()

	record := ContentRecord{Title: "Plain Title", MetaTitle: "SEO Title"}
	assert.Equal(t, "SEO Title", GenerateMetaTitle(record, cfg))

	record.MetaTitle = ""
	assert.Equal(t, "Plain Title", GenerateMetaTitle(record, cfg))

	record.Title = strings.Repeat("long ", 30)
	assert.Equal(t, cfg.TitleMaxLength, utf8.RuneCountInString(GenerateMetaTitle(record, cfg)))
}

func TestGenerateMetaDescription(t *testing.T) {
	cfg := DefaultConfig()

	record := ContentRecord{
		Body:            "# Heading\n\nBody text with a [link](/page) and ![image](/img.jpg) inside.",
		Excerpt:         "The excerpt.",
		MetaDescription: "Explicit description.",
	}
	assert.Equal(t, "Explicit description.", GenerateMetaDescription(record, cfg))

	record.MetaDescription = ""
	assert.Equal(t, "The excerpt.", GenerateMetaDescription(record, cfg))

	// Falls back to the body stripped of markup.
	record.Excerpt = ""
	desc := GenerateMetaDescription(record, cfg)
	assert.Equal(t, "Heading Body text with a link and inside.", desc)
	assert.NotContains(t, desc, "![")
	assert.NotContains(t, desc, "](")
}

func TestValidateMeta(t *testing.T) {
	cfg := DefaultConfig()
	v := ValidateMeta(strings.Repeat("t", 45), strings.Repeat("d", 140), "good-slug", cfg)
	assert.True(t, v.Title.Optimal)
	assert.True(t, v.Description.Optimal)
	assert.True(t, v.SlugOptimal)
}
