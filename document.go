package normdoc

import "time"

// DocType classifies a document by the section of the site it lives in.
type DocType string

// Supported document types. The set is closed; unmatched URLs are DocTypeGeneric.
const (
	DocTypeGOST       DocType = "gost"
	DocTypeFederalLaw DocType = "federal_law"
	DocTypeOrder      DocType = "order"
	DocTypeResolution DocType = "resolution"
	DocTypeSNiP       DocType = "snip"
	DocTypeSP         DocType = "sp"
	DocTypeGeneric    DocType = "generic"
)

// Label returns the human-readable name of the document type.
func (t DocType) Label() string {
	switch t {
	case DocTypeGOST:
		return "ГОСТ"
	case DocTypeFederalLaw:
		return "Федеральный закон"
	case DocTypeOrder:
		return "Приказ"
	case DocTypeResolution:
		return "Постановление"
	case DocTypeSNiP:
		return "СНиП"
	case DocTypeSP:
		return "СП"
	default:
		return "Документ"
	}
}

// Status is the legal status of a document.
type Status string

// Document statuses recognized in detail pages.
const (
	StatusActive    Status = "active"
	StatusRepealed  Status = "repealed"
	StatusExpired   Status = "expired"
	StatusSuspended Status = "suspended"
)

// Label returns the human-readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Действует"
	case StatusRepealed:
		return "Отменен"
	case StatusExpired:
		return "Утратил силу"
	case StatusSuspended:
		return "Приостановлен"
	default:
		return ""
	}
}

// DocumentSummary is the lightweight record describing a document found on
// a listing page. It is comparable; two summaries are duplicates when all
// fields are equal.
type DocumentSummary struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Type        DocType `json:"type"`
	Number      string  `json:"number,omitempty"`
	RelativeURL string  `json:"relative_url"`
}

// Section is a heading in a document's outline.
type Section struct {
	Level   int    `json:"level"`
	Title   string `json:"title"`
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Metadata holds document attributes found in free text.
// Every field is optional; an empty value means "not found".
type Metadata struct {
	Date         string `json:"date,omitempty"`
	Number       string `json:"number,omitempty"`
	Status       Status `json:"status,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// DocumentDetail is the full structured record of one document page.
type DocumentDetail struct {
	Title           string    `json:"title"`
	ContentText     string    `json:"content_text"`
	ContentHTML     string    `json:"content_html"`
	ContentMarkdown string    `json:"content_markdown,omitempty"`
	ContentHash     string    `json:"content_hash"`
	Sections        []Section `json:"sections"`
	Metadata        Metadata  `json:"metadata"`
	SourceURL       string    `json:"source_url"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// Pagination selects a page of a listing. Page is 1-based.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Default pagination values.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Normalize replaces out-of-range values with defaults.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// DocumentPage is one page of a category listing.
type DocumentPage struct {
	Documents []DocumentSummary `json:"documents"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	PerPage   int               `json:"per_page"`
	Pages     int               `json:"pages"`
}

// NewDocumentPage slices docs according to p. Pages past the end yield an
// empty slice rather than an error.
func NewDocumentPage(docs []DocumentSummary, p Pagination) *DocumentPage {
	p = p.Normalize()
	total := len(docs)

	start := (p.Page - 1) * p.PerPage
	end := start + p.PerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := make([]DocumentSummary, end-start)
	copy(page, docs[start:end])

	return &DocumentPage{
		Documents: page,
		Total:     total,
		Page:      p.Page,
		PerPage:   p.PerPage,
		Pages:     (total + p.PerPage - 1) / p.PerPage,
	}
}

// SearchQuery filters summaries by a case-insensitive title substring.
// An empty Category searches every category.
type SearchQuery struct {
	Query    string `json:"query"`
	Category string `json:"type"`
}

// SearchResult holds the summaries matching a SearchQuery.
type SearchResult struct {
	Documents []DocumentSummary `json:"documents"`
	Query     string            `json:"query"`
	Category  string            `json:"type"`
	Total     int               `json:"total"`
}
