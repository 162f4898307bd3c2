package analyzer

// ContentRecord is the caller-owned input to every analysis. The
// analyzer never mutates it.
type ContentRecord struct {
	ID               string   `json:"id,omitempty"`
	Title            string   `json:"title"`
	Body             string   `json:"body"`
	Excerpt          string   `json:"excerpt"`
	Slug             string   `json:"slug"`
	MetaTitle        string   `json:"metaTitle,omitempty"`
	MetaDescription  string   `json:"metaDescription,omitempty"`
	TargetKeywords   []string `json:"targetKeywords"`
	HasFeaturedImage bool     `json:"hasFeaturedImage"`
}

// ContentMetrics holds the count-based metrics derived from a body.
type ContentMetrics struct {
	WordCount                int                `json:"wordCount"`
	SentenceCount            int                `json:"sentenceCount"`
	ParagraphCount           int                `json:"paragraphCount"`
	AvgWordsPerSentence      float64            `json:"avgWordsPerSentence"`
	AvgSentencesPerParagraph float64            `json:"avgSentencesPerParagraph"`
	Headings                 []string           `json:"headings"`
	InternalLinks            int                `json:"internalLinks"`
	ExternalLinks            int                `json:"externalLinks"`
	TotalImages              int                `json:"totalImages"`
	ImagesWithAlt            int                `json:"imagesWithAlt"`
	KeywordDensity           map[string]float64 `json:"keywordDensity"`
	ReadabilityScore         float64            `json:"readabilityScore"`
}

// KeywordAnalysis describes how well one keyword is used in a document.
type KeywordAnalysis struct {
	Keyword          string   `json:"keyword"`
	Found            bool     `json:"found"`
	InTitle          bool     `json:"inTitle"`
	InFirstParagraph bool     `json:"inFirstParagraph"`
	HeadingCount     int      `json:"headingCount"`
	Occurrences      int      `json:"occurrences"`
	Density          float64  `json:"density"`
	Prominence       int      `json:"prominence"`
	Suggestions      []string `json:"suggestions"`
	RelatedKeywords  []string `json:"relatedKeywords"`
}

// TopicCoverage reports which of the fixed domain topics the content
// touches.
type TopicCoverage struct {
	Topics        map[string]bool `json:"topics"`
	Score         int             `json:"score"`
	MissingTopics []string        `json:"missingTopics"`
	Suggestions   []string        `json:"suggestions"`
}

// Meta field length classifications.
const (
	MetaStatusEmpty     = "empty"
	MetaStatusTooShort  = "too_short"
	MetaStatusOptimal   = "optimal"
	MetaStatusLong      = "long"
	MetaStatusTruncated = "truncated"
)

// MetaFieldValidation classifies one meta field against its length
// band.
type MetaFieldValidation struct {
	Length  int    `json:"length"`
	Status  string `json:"status"`
	Optimal bool   `json:"optimal"`
}

// MetaValidation bundles the structural validation of the SEO meta
// fields and the slug.
type MetaValidation struct {
	Title       MetaFieldValidation `json:"title"`
	Description MetaFieldValidation `json:"description"`
	SlugOptimal bool                `json:"slugOptimal"`
}

// Checklist is the fixed set of publish checks, in report order.
type Checklist struct {
	TitleOptimal            bool `json:"titleOptimal"`
	DescriptionOptimal      bool `json:"descriptionOptimal"`
	KeywordInTitle          bool `json:"keywordInTitle"`
	KeywordInFirstParagraph bool `json:"keywordInFirstParagraph"`
	KeywordInHeadings       bool `json:"keywordInHeadings"`
	EnoughInternalLinks     bool `json:"enoughInternalLinks"`
	ImagesHaveAlt           bool `json:"imagesHaveAlt"`
	NoDuplicateTitle        bool `json:"noDuplicateTitle"`
	SlugOptimal             bool `json:"slugOptimal"`
	ReadabilityOK           bool `json:"readabilityOk"`
}

const checklistSize = 10

func (c Checklist) passed() int {
	n := 0
	for _, ok := range []bool{
		c.TitleOptimal, c.DescriptionOptimal, c.KeywordInTitle,
		c.KeywordInFirstParagraph, c.KeywordInHeadings,
		c.EnoughInternalLinks, c.ImagesHaveAlt, c.NoDuplicateTitle,
		c.SlugOptimal, c.ReadabilityOK,
	} {
		if ok {
			n++
		}
	}
	return n
}

// ReadinessReport is the aggregate result of one analysis run. It is
// recomputed from scratch on every call and never mutated afterwards.
type ReadinessReport struct {
	Checklist      Checklist                  `json:"checklist"`
	Score          int                        `json:"score"`
	CriticalIssues []string                   `json:"criticalIssues"`
	Warnings       []string                   `json:"warnings"`
	Suggestions    []string                   `json:"suggestions"`
	Metrics        ContentMetrics             `json:"metrics"`
	TopicCoverage  TopicCoverage              `json:"topicCoverage"`
	Keywords       map[string]KeywordAnalysis `json:"keywords"`
	Meta           MetaValidation             `json:"meta"`

	readyThreshold int
}

// ReadyToPublish reports whether the record can go live: no critical
// issues and a score at or above the configured threshold.
func (r ReadinessReport) ReadyToPublish() bool {
	return len(r.CriticalIssues) == 0 && r.Score >= r.readyThreshold
}
