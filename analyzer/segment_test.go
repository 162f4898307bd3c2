package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"english", "hello world again", 3},
		{"punctuation only", "... !!!", 0},
		{"digits count", "top 10 curtains", 3},
		// ผ้าม่าน is 7 runes: ceil(7/3.5) = 2 estimated words.
		{"thai run estimate", "ผ้าม่าน", 2},
		{"mixed scripts", "ผ้าม่าน for modern homes", 5},
		// Two separate Thai runs estimate independently.
		{"thai runs split by space", "ผ้าม่าน ผ้าม่าน", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.text))
		})
	}
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n  ", 0},
		{"three sentences", "One two. Three four! Five six?", 3},
		{"newlines split", "line one\nline two", 2},
		{"no terminator floors to one", "a sentence without punctuation", 1},
		{"trailing punctuation collapses", "Done...", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSentences(tt.text))
		})
	}
}

func TestExtractHeadings(t *testing.T) {
	body := "# Main Title\n\nsome text\n\n## Section One\ntext\n### Deep\n\nplain line"
	assert.Equal(t,
		[]string{"H1: Main Title", "H2: Section One", "H3: Deep"},
		ExtractHeadings(body))

	assert.Empty(t, ExtractHeadings("no headings here"))
}

func TestCountLinks(t *testing.T) {
	body := strings.Join([]string{
		"See [styles](/styles) and [the anchor](#faq).",
		"Also [docs](guides/install) and [google](https://google.com).",
		"Own site: [home](https://example.com/about).",
		"Image is not a link: ![alt](/img/a.jpg).",
	}, "\n")

	internal, external := CountLinks(body, "example.com")
	assert.Equal(t, 4, internal)
	assert.Equal(t, 1, external)

	// Without a site domain, absolute links to the site are external.
	internal, external = CountLinks(body, "")
	assert.Equal(t, 3, internal)
	assert.Equal(t, 2, external)
}

func TestCountImages(t *testing.T) {
	body := "![curtain photo](/a.jpg) text ![](/b.jpg) more ![  ](/c.jpg)"
	total, withAlt := CountImages(body)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, withAlt)
}

func TestKeywordDensity(t *testing.T) {
	// Exactly 10 words, one match.
	body := "curtain one two three four five six seven eight nine"
	assert.InDelta(t, 10.0, KeywordDensity(body, "curtain"), 0.001)

	// Flexible whitespace inside multi-word keywords.
	assert.InDelta(t, 10.0, KeywordDensity("window  curtain three four five six seven eight nine ten", "window curtain"), 0.001)

	assert.Zero(t, KeywordDensity("", "curtain"))
	assert.Zero(t, KeywordDensity(body, ""))
}

func TestReadability(t *testing.T) {
	// Three sentences of 20 words each: average in the ideal band.
	sentence := strings.TrimSpace(strings.Repeat("word ", 20)) + "."
	body := strings.Join([]string{sentence, sentence, sentence}, " ")
	words, sentences := CountWords(body), CountSentences(body)
	assert.Equal(t, 60, words)
	assert.Equal(t, 3, sentences)
	assert.InDelta(t, 100.0, Readability(words, sentences), 0.001)

	// Too long: avg 40 words per sentence costs 2 per word over 30.
	assert.InDelta(t, 80.0, Readability(40, 1), 0.001)
	// Choppy: avg 2 costs 3 per word under 5.
	assert.InDelta(t, 91.0, Readability(2, 1), 0.001)
	// Slightly long: avg 25 costs 1 per word over 20.
	assert.InDelta(t, 95.0, Readability(25, 1), 0.001)
	// Degenerate input bottoms out at zero.
	assert.Zero(t, Readability(0, 0))
	assert.Zero(t, Readability(0, 5))
}

func TestAnalyzeContentEmpty(t *testing.T) {
	metrics := AnalyzeContent("   ", []string{"curtain"}, DefaultConfig())
	assert.Zero(t, metrics.WordCount)
	assert.Zero(t, metrics.SentenceCount)
	assert.Empty(t, metrics.Headings)
	assert.Zero(t, metrics.ReadabilityScore)
	assert.Empty(t, metrics.KeywordDensity)
}

func TestAnalyzeContent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SiteDomain = "example.com"

	body := `# Curtain guide

A curtain softens a room. Read about [styles](/styles) and [fabric](/fabric).

More detail on [pricing](https://example.com/pricing) and [reviews](https://other.site/reviews).

![living room](/img/room.jpg)`

	metrics := AnalyzeContent(body, []string{"curtain"}, cfg)
	assert.Equal(t, []string{"H1: Curtain guide"}, metrics.Headings)
	assert.Equal(t, 3, metrics.InternalLinks)
	assert.Equal(t, 1, metrics.ExternalLinks)
	assert.Equal(t, 1, metrics.TotalImages)
	assert.Equal(t, 1, metrics.ImagesWithAlt)
	assert.Equal(t, 4, metrics.ParagraphCount) // heading block, two paragraphs, image line
	assert.Positive(t, metrics.WordCount)
	assert.Positive(t, metrics.KeywordDensity["curtain"])
}
