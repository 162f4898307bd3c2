package analyzer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// RecordFromHTML converts a rendered HTML page into a ContentRecord so
// published pages can be scored with the same engine as drafts.
// Headings, paragraphs, links and images are rewritten into the
// lightweight markup the analyzer understands.
func RecordFromHTML(r io.Reader, cfg Config) (ContentRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ContentRecord{}, fmt.Errorf("parse html: %w", err)
	}

	record := ContentRecord{
		Title:          strings.TrimSpace(doc.Find("title").First().Text()),
		TargetKeywords: []string{},
	}
	if record.Title == "" {
		record.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if desc, ok := doc.Find("meta[name='description']").Attr("content"); ok {
		record.MetaDescription = strings.TrimSpace(desc)
	}
	if kw, ok := doc.Find("meta[name='keywords']").Attr("content"); ok {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				record.TargetKeywords = append(record.TargetKeywords, k)
			}
		}
	}

	var blocks []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, ul, ol").Each(func(_ int, s *goquery.Selection) {
		node := goquery.NodeName(s)
		switch node {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(node[1] - '0')
			text := strings.TrimSpace(s.Text())
			if text != "" {
				blocks = append(blocks, strings.Repeat("#", level)+" "+text)
			}
		case "p":
			if text := strings.TrimSpace(renderInline(s)); text != "" {
				blocks = append(blocks, text)
			}
		case "ul", "ol":
			var lines []string
			s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				if text := strings.TrimSpace(renderInline(li)); text != "" {
					lines = append(lines, "- "+text)
				}
			})
			if len(lines) > 0 {
				blocks = append(blocks, strings.Join(lines, "\n"))
			}
		}
	})
	record.Body = strings.Join(blocks, "\n\n")
	record.Slug = GenerateSlug(record.Title, cfg)
	record.HasFeaturedImage = doc.Find("meta[property='og:image']").Length() > 0
	return record, nil
}

// renderInline flattens a block element into one line of markup,
// preserving links, images and emphasis.
func renderInline(s *goquery.Selection) string {
	var b strings.Builder
	for _, node := range s.Nodes {
		renderNode(&b, node)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func renderNode(b *strings.Builder, node *html.Node) {
	if node.Type == html.TextNode {
		b.WriteString(node.Data)
		return
	}
	if node.Type != html.ElementNode {
		return
	}
	switch node.Data {
	case "a":
		var inner strings.Builder
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			renderNode(&inner, child)
		}
		b.WriteString("[" + strings.TrimSpace(inner.String()) + "](" + attrValue(node, "href") + ")")
	case "img":
		b.WriteString("![" + attrValue(node, "alt") + "](" + attrValue(node, "src") + ")")
	case "strong", "b":
		writeWrapped(b, node, "**")
	case "em", "i":
		writeWrapped(b, node, "*")
	case "script", "style":
		// Skip non-content nodes entirely.
	default:
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			renderNode(b, child)
		}
	}
}

func writeWrapped(b *strings.Builder, node *html.Node, marker string) {
	var inner strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		renderNode(&inner, child)
	}
	if text := strings.TrimSpace(inner.String()); text != "" {
		b.WriteString(marker + text + marker)
	}
}

func attrValue(node *html.Node, name string) string {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
