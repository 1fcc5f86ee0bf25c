package goquery

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/normdoc"
)

// TitleSelectors locate the document title, most specific first.
var TitleSelectors = []string{
	"h1.doc-title",
	"h1",
	".document-title",
	".doc-header h1",
	".content h1",
	"title",
}

// StripSelectors match non-content elements removed before content isolation.
var StripSelectors = []string{
	"script",
	"style",
	"nav",
	"header",
	"footer",
	"aside",
	".navigation",
	".menu",
}

// ContentSelectors locate the main content container, most specific first.
// When none matches, the whole document is used.
var ContentSelectors = []string{
	".document-content",
	".doc-content",
	".main-content",
	".content-body",
	"main",
	".content",
	"body",
}

const (
	// MinDetailTitleLength is the length, in characters, a title candidate
	// must exceed to be accepted.
	MinDetailTitleLength = 10

	// UntitledDocument replaces a title that could not be found.
	UntitledDocument = "Документ без названия"

	// SectionExcerptBlocks is the number of sibling blocks in a section excerpt.
	SectionExcerptBlocks = 3
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// Ensure DetailExtractor implements normdoc.DetailExtractor at compile time.
var _ normdoc.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor converts a document page into a detail record.
type DetailExtractor struct {
	TitleSelectors   []string
	StripSelectors   []string
	ContentSelectors []string

	// Now returns the timestamp recorded in FetchedAt.
	Now func() time.Time
}

// NewDetailExtractor creates a DetailExtractor with the default selector lists.
func NewDetailExtractor() *DetailExtractor {
	return &DetailExtractor{
		TitleSelectors:   TitleSelectors,
		StripSelectors:   StripSelectors,
		ContentSelectors: ContentSelectors,
		Now:              time.Now,
	}
}

// ExtractDetail derives a detail record from rawHTML.
//
// Title, content container, outline and metadata each degrade to defaults
// when their markup is missing. Only blank or unparseable input fails, with
// EEXTRACT.
func (e *DetailExtractor) ExtractDetail(rawHTML string, sourceURL string) (*normdoc.DocumentDetail, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, normdoc.Errorf(normdoc.EEXTRACT, "empty document markup").WithURL(sourceURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, normdoc.Errorf(normdoc.EEXTRACT, "failed to parse document: %w", err).WithURL(sourceURL)
	}

	title := e.extractTitle(doc)
	metadata := normdoc.ExtractMetadata(renderText(doc.Nodes[0]))

	if len(e.StripSelectors) > 0 {
		doc.Find(strings.Join(e.StripSelectors, ", ")).Remove()
	}
	container := e.contentContainer(doc)
	root := container.Nodes[0]

	text := renderText(root)
	contentHTML, err := renderNodes(Sanitize(root))
	if err == nil {
		contentHTML, err = stabilize(contentHTML)
	}
	if err != nil {
		return nil, normdoc.Errorf(normdoc.EEXTRACT, "failed to render content: %w", err).WithURL(sourceURL)
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	return &normdoc.DocumentDetail{
		Title:       title,
		ContentText: text,
		ContentHTML: contentHTML,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(text)),
		Sections:    extractSections(container),
		Metadata:    metadata,
		SourceURL:   sourceURL,
		FetchedAt:   now(),
	}, nil
}

// extractTitle returns the first title candidate longer than
// MinDetailTitleLength, or UntitledDocument.
func (e *DetailExtractor) extractTitle(doc *goquery.Document) string {
	for _, selector := range e.TitleSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		if title := normalizeSpace(el.Text()); utf8.RuneCountInString(title) > MinDetailTitleLength {
			return title
		}
	}
	return UntitledDocument
}

func (e *DetailExtractor) contentContainer(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.ContentSelectors {
		if el := doc.Find(selector).First(); el.Length() > 0 {
			return el
		}
	}
	return doc.Selection
}

// extractSections lists the headings under container in document order.
func extractSections(container *goquery.Selection) []normdoc.Section {
	sections := make([]normdoc.Section, 0)
	container.Find(headingSelector).Each(func(i int, h *goquery.Selection) {
		sections = append(sections, normdoc.Section{
			Level:   headingLevel(goquery.NodeName(h)),
			Title:   normalizeSpace(h.Text()),
			ID:      fmt.Sprintf("section_%d", i),
			Content: sectionExcerpt(h),
		})
	})
	return sections
}

// sectionExcerpt joins the text of up to SectionExcerptBlocks following
// sibling elements, stopping at the next heading.
func sectionExcerpt(h *goquery.Selection) string {
	var parts []string
	h.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
		if headingLevel(goquery.NodeName(sib)) > 0 {
			return false
		}
		if t := normalizeSpace(sib.Text()); t != "" {
			parts = append(parts, t)
		}
		return len(parts) < SectionExcerptBlocks
	})
	return strings.Join(parts, "\n")
}

// headingLevel returns 1-6 for h1-h6 and 0 for any other element name.
func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}
