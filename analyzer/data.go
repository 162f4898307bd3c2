package analyzer

// Static lookup data for the keyword analyzer. All tables are
// module-scoped constant data; swapping the domain means editing data,
// not algorithm code.

func makeSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

var thaiStopWords = makeSet(
	"ที่", "และ", "ของ", "ให้", "ได้", "ไม่", "เป็น", "มี", "ว่า",
	"การ", "ความ", "จะ", "ก็", "แต่", "หรือ", "กับ", "จาก", "ใน",
	"โดย", "เมื่อ", "แล้ว", "อย่าง", "ต้อง", "นี้", "นั้น", "ซึ่ง",
	"เพราะ", "เพื่อ", "ตาม", "ทำให้",
)

var englishStopWords = makeSet(
	"the", "and", "for", "are", "but", "not", "you", "your", "with",
	"that", "this", "from", "have", "has", "was", "were", "will",
	"can", "all", "its", "they", "them", "there", "what", "when",
	"which", "more", "also", "into", "about", "than", "then", "out",
	"our",
)

// relatedKeywordFamilies maps known keyword families to their related
// terms. A keyword belongs to a family when it contains one of the
// family triggers or a trigger contains it. This is a closed heuristic
// lookup, not a semantic model.
var relatedKeywordFamilies = []struct {
	triggers []string
	related  []string
}{
	{
		triggers: []string{"ผ้าม่าน", "ม่าน", "curtain"},
		related:  []string{"ม่านจีบ", "ม่านตาไก่", "ม่านพับ", "ม่านลอน", "ผ้าม่านกันแสง", "ผ้าม่านกัน UV"},
	},
	{
		triggers: []string{"มู่ลี่", "blind"},
		related:  []string{"มู่ลี่ไม้", "มู่ลี่อลูมิเนียม", "มู่ลี่ไม้ไผ่", "ม่านปรับแสง"},
	},
	{
		triggers: []string{"วอลเปเปอร์", "wallpaper"},
		related:  []string{"วอลเปเปอร์ติดผนัง", "วอลเปเปอร์ลายไม้", "วอลเปเปอร์กันน้ำ"},
	},
	{
		triggers: []string{"ม่านม้วน", "roller"},
		related:  []string{"ม่านม้วนกันแสง", "ม่านม้วนโปร่งแสง", "ม่านม้วนมอเตอร์"},
	},
	{
		triggers: []string{"ฉากกั้นห้อง", "partition"},
		related:  []string{"ฉากกั้นห้องญี่ปุ่น", "ฉากกั้นห้อง PVC", "ม่านกั้นห้อง"},
	},
}
