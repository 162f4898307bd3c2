package analyzer

import "math"

// topicEntry describes one required subject area for the domain. A
// topic is covered when any trigger phrase occurs in the content.
type topicEntry struct {
	Key        string
	Label      string
	Suggestion string
	Triggers   []string
}

// defaultTopicTaxonomy lists the subject areas a complete article for
// the curtain domain is expected to touch. Extending coverage means
// adding entries here; nothing else hard-codes the topic count.
var defaultTopicTaxonomy = []topicEntry{
	{
		Key:        "pricing",
		Label:      "Pricing",
		Suggestion: "Add pricing information, budget guidance or price ranges",
		Triggers:   []string{"ราคา", "บาท", "ค่าใช้จ่าย", "งบประมาณ", "ราคาถูก", "price", "cost"},
	},
	{
		Key:        "types",
		Label:      "Types and styles",
		Suggestion: "Describe the available types or styles and how they differ",
		Triggers:   []string{"ประเภท", "ชนิด", "แบบไหน", "รูปแบบ", "สไตล์", "types", "styles"},
	},
	{
		Key:        "materials",
		Label:      "Materials",
		Suggestion: "Cover the fabrics and materials options",
		Triggers:   []string{"วัสดุ", "เนื้อผ้า", "โพลีเอสเตอร์", "ลินิน", "คอตตอน", "ผ้าไหม", "fabric", "material"},
	},
	{
		Key:        "installation",
		Label:      "Installation",
		Suggestion: "Explain installation, measuring and rail or track options",
		Triggers:   []string{"ติดตั้ง", "การติด", "วัดขนาด", "ราง", "เจาะผนัง", "install"},
	},
	{
		Key:        "maintenance",
		Label:      "Care and maintenance",
		Suggestion: "Add care instructions such as washing and cleaning",
		Triggers:   []string{"ดูแลรักษา", "ทำความสะอาด", "ซัก", "การดูแล", "maintenance", "cleaning"},
	},
	{
		Key:        "pros",
		Label:      "Advantages",
		Suggestion: "List the advantages and strong points",
		Triggers:   []string{"ข้อดี", "จุดเด่น", "ประโยชน์", "เหมาะกับ", "advantages", "benefits"},
	},
	{
		Key:        "cons",
		Label:      "Disadvantages",
		Suggestion: "Mention the disadvantages or limitations for balance",
		Triggers:   []string{"ข้อเสีย", "จุดด้อย", "ข้อจำกัด", "ข้อควรระวัง", "disadvantages", "drawbacks"},
	},
	{
		Key:        "faq",
		Label:      "FAQ",
		Suggestion: "Add a frequently-asked-questions section",
		Triggers:   []string{"คำถามที่พบบ่อย", "ถาม-ตอบ", "ถามตอบ", "faq", "q&a"},
	},
}

// AnalyzeTopicCoverage checks the content against the domain topic
// taxonomy via case-insensitive substring matching.
func AnalyzeTopicCoverage(content string, cfg Config) TopicCoverage {
	coverage := TopicCoverage{
		Topics:        make(map[string]bool, len(defaultTopicTaxonomy)),
		MissingTopics: []string{},
		Suggestions:   []string{},
	}

	covered := 0
	for _, topic := range defaultTopicTaxonomy {
		hit := false
		for _, trigger := range topic.Triggers {
			if countOccurrences(content, trigger) > 0 {
				hit = true
				break
			}
		}
		coverage.Topics[topic.Key] = hit
		if hit {
			covered++
		} else {
			coverage.MissingTopics = append(coverage.MissingTopics, topic.Label)
			coverage.Suggestions = append(coverage.Suggestions, topic.Suggestion)
		}
	}

	coverage.Score = int(math.Round(float64(covered) / float64(len(defaultTopicTaxonomy)) * 100))
	if len(coverage.MissingTopics) > 0 && len(ExtractHeadings(content)) == 0 {
		coverage.Suggestions = append(coverage.Suggestions,
			"Structure the article with headings so each topic gets its own section")
	}
	return coverage
}
