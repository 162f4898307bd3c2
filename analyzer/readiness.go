package analyzer

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// DuplicateTitleFunc checks whether another record already uses this
// title. currentID identifies the record under analysis so it can be
// excluded from the comparison. The aggregator treats any error as
// "not duplicate".
type DuplicateTitleFunc func(ctx context.Context, title, currentID string) (bool, error)

// Checker runs the full readiness analysis over one content record.
// It is stateless apart from its configuration and safe for concurrent
// use.
type Checker struct {
	cfg            Config
	duplicateTitle DuplicateTitleFunc
}

// NewChecker validates the configuration once and returns a Checker
// with the default duplicate-title stub, which reports no duplicates.
func NewChecker(cfg Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analyzer config: %w", err)
	}
	return &Checker{
		cfg: cfg,
		duplicateTitle: func(context.Context, string, string) (bool, error) {
			return false, nil
		},
	}, nil
}

// SetDuplicateTitleFunc overrides the duplicate-title collaborator,
// typically with a content-store query.
func (c *Checker) SetDuplicateTitleFunc(fn DuplicateTitleFunc) {
	if fn != nil {
		c.duplicateTitle = fn
	}
}

// Config returns the thresholds the checker was built with.
func (c *Checker) Config() Config {
	return c.cfg
}

// focusKeyword is the keyword the checklist scores placement against:
// the first explicit target keyword, or the primary domain keyword.
func (c *Checker) focusKeyword(record ContentRecord) string {
	for _, kw := range record.TargetKeywords {
		if strings.TrimSpace(kw) != "" {
			return strings.TrimSpace(kw)
		}
	}
	return c.cfg.PrimaryKeyword
}

// Check produces a ReadinessReport for the record. It never fails:
// malformed or empty input degrades to zero-valued metrics and is
// surfaced as issues in the report, and a failing duplicate-title
// collaborator counts as "no duplicate".
func (c *Checker) Check(ctx context.Context, record ContentRecord) ReadinessReport {
	cfg := c.cfg

	keywords := make([]string, 0, len(record.TargetKeywords)+1)
	seen := make(map[string]bool, len(record.TargetKeywords)+1)
	for _, kw := range append([]string{cfg.PrimaryKeyword}, record.TargetKeywords...) {
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	metrics := AnalyzeContent(record.Body, keywords, cfg)

	// Placement analysis sees the title as the leading line of the
	// document; the body's opening text stays inside the first
	// paragraph window.
	document := record.Title + "\n" + record.Body
	analyses := make(map[string]KeywordAnalysis, len(keywords))
	for _, kw := range keywords {
		analyses[kw] = AnalyzeKeyword(document, kw, cfg)
	}
	focus := analyses[c.focusKeyword(record)]

	topics := AnalyzeTopicCoverage(record.Body, cfg)

	effectiveTitle := strings.TrimSpace(record.MetaTitle)
	if effectiveTitle == "" {
		effectiveTitle = strings.TrimSpace(record.Title)
	}
	effectiveDescription := strings.TrimSpace(record.MetaDescription)
	if effectiveDescription == "" {
		effectiveDescription = strings.TrimSpace(record.Excerpt)
	}
	meta := ValidateMeta(effectiveTitle, effectiveDescription, record.Slug, cfg)

	duplicate, err := c.duplicateTitle(ctx, record.Title, record.ID)
	if err != nil {
		duplicate = false
	}

	checklist := Checklist{
		TitleOptimal:            meta.Title.Optimal,
		DescriptionOptimal:      meta.Description.Optimal,
		KeywordInTitle:          focus.InTitle,
		KeywordInFirstParagraph: focus.InFirstParagraph,
		KeywordInHeadings:       focus.HeadingCount > 0,
		EnoughInternalLinks:     metrics.InternalLinks >= cfg.MinInternalLinks,
		ImagesHaveAlt:           metrics.TotalImages == 0 || metrics.ImagesWithAlt == metrics.TotalImages,
		NoDuplicateTitle:        !duplicate,
		SlugOptimal:             meta.SlugOptimal,
		ReadabilityOK:           metrics.ReadabilityScore >= float64(cfg.ReadabilityThreshold),
	}

	report := ReadinessReport{
		Checklist:      checklist,
		Score:          int(math.Round(float64(checklist.passed()) / checklistSize * 100)),
		Metrics:        metrics,
		TopicCoverage:  topics,
		Keywords:       analyses,
		Meta:           meta,
		readyThreshold: cfg.ReadyScoreThreshold,
	}
	report.CriticalIssues, report.Warnings, report.Suggestions =
		c.classify(record, checklist, metrics, focus, topics, meta, duplicate)
	return report
}

// classify sorts unmet checks into critical issues, warnings and
// suggestions, in checklist order with topic and readability advice
// appended last.
func (c *Checker) classify(
	record ContentRecord,
	checklist Checklist,
	metrics ContentMetrics,
	focus KeywordAnalysis,
	topics TopicCoverage,
	meta MetaValidation,
	duplicate bool,
) (critical, warnings, suggestions []string) {
	cfg := c.cfg
	critical = []string{}
	warnings = []string{}
	suggestions = []string{}

	// Critical: fields that must exist before anything else matters.
	if meta.Title.Status == MetaStatusEmpty {
		critical = append(critical, "Title is missing")
	}
	if meta.Description.Status == MetaStatusEmpty {
		critical = append(critical, "Meta description is missing, set one or provide an excerpt")
	}
	if strings.TrimSpace(record.Body) == "" {
		critical = append(critical, "Content body is empty")
	}
	if strings.TrimSpace(record.Slug) == "" {
		critical = append(critical, "URL slug is missing")
	}
	if duplicate {
		critical = append(critical, fmt.Sprintf("Another article already uses the title %q", record.Title))
	}
	if focus.Keyword != "" && strings.TrimSpace(record.Body) != "" && !focus.Found {
		critical = append(critical, fmt.Sprintf("The keyword %q does not appear anywhere in the content", focus.Keyword))
	}

	// Warnings: present but below par.
	if meta.Title.Status == MetaStatusTooShort {
		warnings = append(warnings, fmt.Sprintf("Title is only %d characters, aim for %d-%d",
			meta.Title.Length, cfg.TitleMinLength, cfg.TitleOptimalLength))
	}
	if meta.Title.Status == MetaStatusLong || meta.Title.Status == MetaStatusTruncated {
		warnings = append(warnings, fmt.Sprintf("Title is %d characters and will be cut off in search results after %d",
			meta.Title.Length, cfg.TitleOptimalLength))
	}
	if meta.Description.Status == MetaStatusTooShort {
		warnings = append(warnings, fmt.Sprintf("Meta description is only %d characters, aim for %d-%d",
			meta.Description.Length, cfg.DescriptionMinLength, cfg.DescriptionOptimalLength))
	}
	if meta.Description.Status == MetaStatusLong || meta.Description.Status == MetaStatusTruncated {
		warnings = append(warnings, fmt.Sprintf("Meta description is %d characters and will be truncated after %d",
			meta.Description.Length, cfg.DescriptionOptimalLength))
	}
	if metrics.WordCount > 0 && metrics.WordCount < cfg.MinWordCount {
		warnings = append(warnings, fmt.Sprintf("Content is %d words, aim for at least %d",
			metrics.WordCount, cfg.MinWordCount))
	}
	if metrics.TotalImages > 0 && metrics.ImagesWithAlt < metrics.TotalImages {
		warnings = append(warnings, fmt.Sprintf("%d of %d images are missing alt text",
			metrics.TotalImages-metrics.ImagesWithAlt, metrics.TotalImages))
	}
	if !record.HasFeaturedImage {
		warnings = append(warnings, "No featured image is set")
	}
	if !checklist.EnoughInternalLinks {
		warnings = append(warnings, fmt.Sprintf("Only %d internal links found, add at least %d",
			metrics.InternalLinks, cfg.MinInternalLinks))
	}
	if focus.Density > cfg.MaxKeywordDensity {
		warnings = append(warnings, fmt.Sprintf("Keyword density of %.2f%% for %q looks like keyword stuffing, keep it below %.1f%%",
			focus.Density, focus.Keyword, cfg.MaxKeywordDensity))
	}

	// Suggestions: keyword placement first, then readability, then
	// topic coverage.
	if focus.Found {
		suggestions = append(suggestions, focus.Suggestions...)
	}
	if strings.TrimSpace(record.Body) != "" && !checklist.ReadabilityOK {
		if metrics.AvgWordsPerSentence > 20 {
			suggestions = append(suggestions, fmt.Sprintf("Sentences average %.0f words, shorter sentences read better",
				metrics.AvgWordsPerSentence))
		} else {
			suggestions = append(suggestions, "Very short fragments hurt readability, combine them into full sentences")
		}
	}
	suggestions = append(suggestions, topics.Suggestions...)
	return critical, warnings, suggestions
}
