package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ExtractKeywords pulls salient terms out of free text: tokens of both
// scripts, minus stop words and very short tokens, ranked by frequency.
// The primary domain keyword is appended when none of the extracted
// tokens relates to it.
func ExtractKeywords(text string, cfg Config) []string {
	freq := make(map[string]int)
	var order []string

	record := func(token string) {
		if utf8.RuneCountInString(token) <= 2 {
			return
		}
		if thaiStopWords[token] || englishStopWords[token] {
			return
		}
		if freq[token] == 0 {
			order = append(order, token)
		}
		freq[token]++
	}

	for _, token := range latinWordPattern.FindAllString(text, -1) {
		record(strings.ToLower(token))
	}
	for _, run := range thaiRunPattern.FindAllString(text, -1) {
		record(run)
	}

	// Stable ranking: frequency desc, then first appearance.
	rank := make(map[string]int, len(order))
	for i, token := range order {
		rank[token] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if freq[order[i]] != freq[order[j]] {
			return freq[order[i]] > freq[order[j]]
		}
		return rank[order[i]] < rank[order[j]]
	})

	if len(order) > cfg.MaxExtractedKeywords {
		order = order[:cfg.MaxExtractedKeywords]
	}

	if cfg.PrimaryKeyword != "" {
		found := false
		for _, token := range order {
			if strings.Contains(strings.ToLower(cfg.PrimaryKeyword), strings.ToLower(token)) {
				found = true
				break
			}
		}
		if !found {
			order = append(order, cfg.PrimaryKeyword)
		}
	}
	if order == nil {
		return []string{}
	}
	return order
}

// AnalyzeKeyword scores the placement of one keyword inside a
// document. The first line of the content is treated as the title
// line; the first paragraph runs up to the first blank line.
func AnalyzeKeyword(content, keyword string, cfg Config) KeywordAnalysis {
	analysis := KeywordAnalysis{
		Keyword:     strings.TrimSpace(keyword),
		Suggestions: []string{},
	}
	analysis.RelatedKeywords = RelatedKeywords(analysis.Keyword)
	if strings.TrimSpace(content) == "" || analysis.Keyword == "" {
		return analysis
	}

	titleLine := content
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		titleLine = content[:idx]
	}
	firstParagraph := paragraphSplit.Split(content, 2)[0]

	analysis.InTitle = countOccurrences(titleLine, analysis.Keyword) > 0
	analysis.InFirstParagraph = countOccurrences(firstParagraph, analysis.Keyword) > 0
	for _, heading := range ExtractHeadings(content) {
		if countOccurrences(heading, analysis.Keyword) > 0 {
			analysis.HeadingCount++
		}
	}
	analysis.Occurrences = countOccurrences(content, analysis.Keyword)
	analysis.Found = analysis.Occurrences > 0
	analysis.Density = KeywordDensity(content, analysis.Keyword)
	analysis.Prominence = prominence(analysis, cfg)
	analysis.Suggestions = keywordSuggestions(analysis, cfg)
	return analysis
}

// prominence sums fixed placement weights to a 0..100 score.
func prominence(a KeywordAnalysis, cfg Config) int {
	score := 0
	if a.InTitle {
		score += 30
	}
	if a.InFirstParagraph {
		score += 20
	}
	if a.HeadingCount > 0 {
		score += min(20, 5*a.HeadingCount)
	}
	if a.Density >= cfg.OptimalKeywordDensity && a.Density <= cfg.MaxKeywordDensity {
		score += 20
	}
	// Density below half the optimal band earns nothing; a stray
	// occurrence in a long document does not register.
	if a.Density >= cfg.OptimalKeywordDensity/2 && a.Density <= cfg.MaxKeywordDensity {
		score += 10
	}
	return min(100, score)
}

func keywordSuggestions(a KeywordAnalysis, cfg Config) []string {
	suggestions := []string{}
	if !a.InTitle {
		suggestions = append(suggestions,
			fmt.Sprintf("Include the keyword %q in the title", a.Keyword))
	}
	if !a.InFirstParagraph {
		suggestions = append(suggestions,
			fmt.Sprintf("Mention the keyword %q in the first paragraph", a.Keyword))
	}
	if a.HeadingCount == 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("Use the keyword %q in at least one heading", a.Keyword))
	}
	switch {
	case a.Density == 0:
		suggestions = append(suggestions,
			fmt.Sprintf("The keyword %q does not appear in the content, add it naturally to the text", a.Keyword))
	case a.Density < cfg.OptimalKeywordDensity:
		suggestions = append(suggestions,
			fmt.Sprintf("Keyword density for %q is %.2f%%, increase it toward %.1f%%",
				a.Keyword, a.Density, cfg.OptimalKeywordDensity))
	case a.Density > cfg.MaxKeywordDensity:
		suggestions = append(suggestions,
			fmt.Sprintf("Keyword density for %q is %.2f%%, reduce it below %.1f%% to avoid keyword stuffing",
				a.Keyword, a.Density, cfg.MaxKeywordDensity))
	}
	return suggestions
}

// RelatedKeywords returns terms from the same keyword family, or an
// empty list when the keyword matches no known family.
func RelatedKeywords(keyword string) []string {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return []string{}
	}
	for _, family := range relatedKeywordFamilies {
		for _, trigger := range family.triggers {
			trigger = strings.ToLower(trigger)
			if strings.Contains(keyword, trigger) || strings.Contains(trigger, keyword) {
				related := make([]string, 0, len(family.related))
				for _, term := range family.related {
					if !strings.EqualFold(term, keyword) {
						related = append(related, term)
					}
				}
				return related
			}
		}
	}
	return []string{}
}
