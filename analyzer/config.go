package analyzer

import "fmt"

// Config holds every tunable threshold used by the analysis engine.
// Zero values are not meaningful; start from DefaultConfig and override
// individual fields.
type Config struct {
	// SiteDomain classifies absolute links that point back at the site
	// itself as internal. Empty means only relative links count.
	SiteDomain string

	// PrimaryKeyword is the domain keyword every piece of content is
	// expected to target, independent of its explicit keyword list.
	PrimaryKeyword string

	MaxExtractedKeywords int

	TitleMinLength     int
	TitleOptimalLength int
	TitleMaxLength     int

	DescriptionMinLength     int
	DescriptionOptimalLength int
	DescriptionMaxLength     int

	SlugMaxLength int

	MinInternalLinks int
	MinWordCount     int

	// Keyword density thresholds, in percent of total words.
	OptimalKeywordDensity float64
	MaxKeywordDensity     float64

	// ReadabilityThreshold is the minimum readability score the
	// checklist accepts; ReadyScoreThreshold is the minimum overall
	// score for a record to be considered publishable.
	ReadabilityThreshold int
	ReadyScoreThreshold  int
}

// DefaultConfig returns the thresholds used in production.
func DefaultConfig() Config {
	return Config{
		PrimaryKeyword:           "ผ้าม่าน",
		MaxExtractedKeywords:     10,
		TitleMinLength:           30,
		TitleOptimalLength:       60,
		TitleMaxLength:           70,
		DescriptionMinLength:     120,
		DescriptionOptimalLength: 160,
		DescriptionMaxLength:     180,
		SlugMaxLength:            60,
		MinInternalLinks:         3,
		MinWordCount:             300,
		OptimalKeywordDensity:    1.0,
		MaxKeywordDensity:        3.0,
		ReadabilityThreshold:     60,
		ReadyScoreThreshold:      70,
	}
}

// Validate reports configuration mistakes such as inverted length
// bands. It is meant to be called once at construction time; the
// analysis functions themselves assume a valid configuration.
func (c Config) Validate() error {
	if c.TitleMinLength > c.TitleOptimalLength || c.TitleOptimalLength > c.TitleMaxLength {
		return fmt.Errorf("invalid title length thresholds: %d/%d/%d",
			c.TitleMinLength, c.TitleOptimalLength, c.TitleMaxLength)
	}
	if c.DescriptionMinLength > c.DescriptionOptimalLength || c.DescriptionOptimalLength > c.DescriptionMaxLength {
		return fmt.Errorf("invalid description length thresholds: %d/%d/%d",
			c.DescriptionMinLength, c.DescriptionOptimalLength, c.DescriptionMaxLength)
	}
	if c.SlugMaxLength <= 0 {
		return fmt.Errorf("slug max length must be positive, got %d", c.SlugMaxLength)
	}
	if c.OptimalKeywordDensity <= 0 || c.OptimalKeywordDensity > c.MaxKeywordDensity {
		return fmt.Errorf("invalid keyword density thresholds: optimal %.2f, max %.2f",
			c.OptimalKeywordDensity, c.MaxKeywordDensity)
	}
	if c.ReadabilityThreshold < 0 || c.ReadabilityThreshold > 100 {
		return fmt.Errorf("readability threshold out of range: %d", c.ReadabilityThreshold)
	}
	if c.ReadyScoreThreshold < 0 || c.ReadyScoreThreshold > 100 {
		return fmt.Errorf("ready score threshold out of range: %d", c.ReadyScoreThreshold)
	}
	if c.MinInternalLinks < 0 || c.MinWordCount < 0 || c.MaxExtractedKeywords <= 0 {
		return fmt.Errorf("invalid count thresholds")
	}
	return nil
}
