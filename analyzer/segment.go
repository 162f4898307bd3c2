package analyzer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	latinWordPattern = regexp.MustCompile(`[A-Za-z0-9]+`)
	thaiRunPattern   = regexp.MustCompile(`[\x{0E00}-\x{0E7F}]+`)
	headingPattern   = regexp.MustCompile(`(?m)^(#{1,6})[ \t]*(.+?)[ \t]*$`)
	imagePattern     = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)
	linkPattern      = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	paragraphSplit   = regexp.MustCompile(`\n[ \t]*\n`)
)

// thaiAvgWordRunes is the assumed average length, in runes, of a Thai
// word. Thai has no inter-word spacing, so word counts for Thai runs
// are an estimate: ceil(runes / 3.5) per run. This is an empirical
// average, not a linguistic segmentation.
const thaiAvgWordRunes = 3.5

// CountWords counts Latin words literally and estimates Thai words
// from run lengths.
func CountWords(text string) int {
	count := len(latinWordPattern.FindAllString(text, -1))
	for _, run := range thaiRunPattern.FindAllString(text, -1) {
		count += int(math.Ceil(float64(utf8.RuneCountInString(run)) / thaiAvgWordRunes))
	}
	return count
}

// CountSentences splits on sentence punctuation and newlines. Any
// non-empty text counts as at least one sentence.
func CountSentences(text string) int {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	count := 0
	for _, f := range fragments {
		if strings.TrimSpace(f) != "" {
			count++
		}
	}
	if count == 0 && strings.TrimSpace(text) != "" {
		return 1
	}
	return count
}

func countParagraphs(text string) int {
	count := 0
	for _, p := range paragraphSplit.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}

// ExtractHeadings returns the markup headings of the body in order,
// formatted as "H<level>: <text>".
func ExtractHeadings(text string) []string {
	matches := headingPattern.FindAllStringSubmatch(text, -1)
	headings := make([]string, 0, len(matches))
	for _, m := range matches {
		level := len(m[1])
		headings = append(headings, "H"+strconv.Itoa(level)+": "+m[2])
	}
	return headings
}

// CountLinks counts inline links, classifying each as internal or
// external. Relative URLs, in-page anchors and links to siteDomain are
// internal; absolute http(s) URLs elsewhere are external.
func CountLinks(text, siteDomain string) (internal, external int) {
	// Image syntax shares the bracket form, drop it first.
	text = imagePattern.ReplaceAllString(text, "")
	for _, m := range linkPattern.FindAllStringSubmatch(text, -1) {
		url := strings.TrimSpace(m[2])
		switch {
		case url == "":
			continue
		case strings.HasPrefix(url, "http"):
			if siteDomain != "" && strings.Contains(url, siteDomain) {
				internal++
			} else {
				external++
			}
		case strings.HasPrefix(url, "/") || strings.HasPrefix(url, "#"):
			internal++
		case !strings.Contains(url, ":"):
			// Bare relative path.
			internal++
		}
	}
	return internal, external
}

// CountImages counts inline images and how many carry alt text.
func CountImages(text string) (total, withAlt int) {
	for _, m := range imagePattern.FindAllStringSubmatch(text, -1) {
		total++
		if strings.TrimSpace(m[1]) != "" {
			withAlt++
		}
	}
	return total, withAlt
}

// keywordPattern builds a case-insensitive matcher for the keyword in
// which internal whitespace matches any whitespace run.
func keywordPattern(keyword string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(strings.TrimSpace(keyword))
	flexible := regexp.MustCompile(`\s+`).ReplaceAllString(quoted, `\s+`)
	return regexp.MustCompile(`(?i)` + flexible)
}

func countOccurrences(content, keyword string) int {
	if strings.TrimSpace(keyword) == "" || content == "" {
		return 0
	}
	return len(keywordPattern(keyword).FindAllStringIndex(content, -1))
}

// KeywordDensity computes occurrences of the keyword as a percentage
// of the total word count, rounded to two decimals.
func KeywordDensity(content, keyword string) float64 {
	words := CountWords(content)
	if words == 0 {
		return 0
	}
	density := float64(countOccurrences(content, keyword)) / float64(words) * 100
	return math.Round(density*100) / 100
}

// Readability scores average sentence length against an ideal band of
// 15 to 20 words per sentence, on a 0 to 100 scale.
func Readability(wordCount, sentenceCount int) float64 {
	if wordCount == 0 || sentenceCount == 0 {
		return 0
	}
	avg := float64(wordCount) / float64(sentenceCount)
	score := 100.0
	switch {
	case avg > 30:
		score -= 2 * (avg - 30)
	case avg < 5:
		score -= 3 * (5 - avg)
	case avg > 20:
		score -= avg - 20
	}
	return math.Min(100, math.Max(0, score))
}

// AnalyzeContent derives all count-based metrics from the body. Empty
// input yields an all-zero metrics value, never an error.
func AnalyzeContent(body string, keywords []string, cfg Config) ContentMetrics {
	metrics := ContentMetrics{
		Headings:       []string{},
		KeywordDensity: make(map[string]float64, len(keywords)),
	}
	if strings.TrimSpace(body) == "" {
		return metrics
	}

	metrics.WordCount = CountWords(body)
	metrics.SentenceCount = CountSentences(body)
	metrics.ParagraphCount = countParagraphs(body)
	if metrics.SentenceCount > 0 {
		metrics.AvgWordsPerSentence = float64(metrics.WordCount) / float64(metrics.SentenceCount)
	}
	if metrics.ParagraphCount > 0 {
		metrics.AvgSentencesPerParagraph = float64(metrics.SentenceCount) / float64(metrics.ParagraphCount)
	}
	metrics.Headings = ExtractHeadings(body)
	metrics.InternalLinks, metrics.ExternalLinks = CountLinks(body, cfg.SiteDomain)
	metrics.TotalImages, metrics.ImagesWithAlt = CountImages(body)
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		metrics.KeywordDensity[kw] = KeywordDensity(body, kw)
	}
	metrics.ReadabilityScore = Readability(metrics.WordCount, metrics.SentenceCount)
	return metrics
}
