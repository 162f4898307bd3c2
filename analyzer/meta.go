package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^a-z0-9\x{0E00}-\x{0E7F}\s-]+`)
	slugCollapsePattern = regexp.MustCompile(`[\s-]+`)
	slugShapePattern    = regexp.MustCompile(`^[a-z0-9\x{0E00}-\x{0E7F}]+(?:-[a-z0-9\x{0E00}-\x{0E7F}]+)*$`)
)

// maxSlugSuffixAttempts bounds the numeric suffix search before
// AvailableSlug falls back to a timestamp disambiguator.
const maxSlugSuffixAttempts = 10

// GenerateSlug derives a URL-safe slug from a title. Characters
// outside the allow list (Thai, lowercase Latin letters, digits,
// space, hyphen) are stripped, runs of separators collapse to a single
// hyphen, and the result is truncated to the configured maximum,
// preferring a hyphen boundary when one falls late enough.
func GenerateSlug(title string, cfg Config) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugCollapsePattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if utf8.RuneCountInString(slug) > cfg.SlugMaxLength {
		runes := []rune(slug)[:cfg.SlugMaxLength]
		cut := string(runes)
		minCut := cfg.SlugMaxLength * 2 / 3
		if idx := strings.LastIndex(cut, "-"); idx >= 0 && utf8.RuneCountInString(cut[:idx]) >= minCut {
			cut = cut[:idx]
		}
		slug = strings.Trim(cut, "-")
	}
	return slug
}

// IsSlugOptimal reports whether the slug is non-empty, within the
// length limit and shaped exactly like a generated slug: allow-listed
// characters only, single hyphens, none leading or trailing.
func IsSlugOptimal(slug string, cfg Config) bool {
	if slug == "" || utf8.RuneCountInString(slug) > cfg.SlugMaxLength {
		return false
	}
	return slugShapePattern.MatchString(slug)
}

// AvailableSlug resolves the candidate against a caller-supplied set
// of slugs already in use. Numeric suffixes are tried first; after
// maxSlugSuffixAttempts the slug is disambiguated with a timestamp.
func AvailableSlug(candidate string, used map[string]bool, cfg Config) string {
	if !used[candidate] {
		return candidate
	}
	for i := 1; i <= maxSlugSuffixAttempts; i++ {
		next := fmt.Sprintf("%s-%d", candidate, i)
		if !used[next] {
			return next
		}
	}
	return fmt.Sprintf("%s-%d", candidate, time.Now().Unix())
}

// ValidateMetaField classifies a meta field value against its length
// band. Lengths are counted in runes. Only the middle band is optimal.
func ValidateMetaField(value string, minLen, optimalLen, maxLen int) MetaFieldValidation {
	length := utf8.RuneCountInString(strings.TrimSpace(value))
	v := MetaFieldValidation{Length: length}
	switch {
	case length == 0:
		v.Status = MetaStatusEmpty
	case length < minLen:
		v.Status = MetaStatusTooShort
	case length <= optimalLen:
		v.Status = MetaStatusOptimal
		v.Optimal = true
	case length <= maxLen:
		v.Status = MetaStatusLong
	default:
		v.Status = MetaStatusTruncated
	}
	return v
}

// GenerateMetaTitle returns the explicit SEO title when present,
// otherwise the record title, truncated to the hard maximum.
func GenerateMetaTitle(record ContentRecord, cfg Config) string {
	title := strings.TrimSpace(record.MetaTitle)
	if title == "" {
		title = strings.TrimSpace(record.Title)
	}
	return truncateRunes(title, cfg.TitleMaxLength)
}

// GenerateMetaDescription returns the explicit SEO description when
// present, falling back to the excerpt and then to the body stripped
// of markup, truncated to the hard maximum.
func GenerateMetaDescription(record ContentRecord, cfg Config) string {
	desc := strings.TrimSpace(record.MetaDescription)
	if desc == "" {
		desc = strings.TrimSpace(record.Excerpt)
	}
	if desc == "" {
		desc = plainText(record.Body)
	}
	return truncateRunes(desc, cfg.DescriptionMaxLength)
}

// plainText strips the lightweight markup from a body: images are
// dropped, links reduce to their labels, heading markers disappear.
func plainText(body string) string {
	text := imagePattern.ReplaceAllString(body, "")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = headingPattern.ReplaceAllString(text, "$2")
	return strings.Join(strings.Fields(text), " ")
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// ValidateMeta validates the effective title, description and slug of
// a record in one pass.
func ValidateMeta(title, description, slug string, cfg Config) MetaValidation {
	return MetaValidation{
		Title:       ValidateMetaField(title, cfg.TitleMinLength, cfg.TitleOptimalLength, cfg.TitleMaxLength),
		Description: ValidateMetaField(description, cfg.DescriptionMinLength, cfg.DescriptionOptimalLength, cfg.DescriptionMaxLength),
		SlugOptimal: IsSlugOptimal(slug, cfg),
	}
}
